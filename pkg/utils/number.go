package utils

import "math"

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}

// FormatAmount renders a monetary amount with two decimals and thousands
// separators, e.g. 12,345.60.
func FormatAmount(f float64) string {
	negative := f < 0
	cents := int64(math.Round(math.Abs(f) * 100))
	whole := cents / 100

	digits := []byte{}
	for i := 0; ; i++ {
		if i > 0 && i%3 == 0 {
			digits = append(digits, ',')
		}
		digits = append(digits, byte('0'+whole%10))
		whole /= 10
		if whole == 0 {
			break
		}
	}
	for i, j := 0, len(digits)-1; i < j; i, j = i+1, j-1 {
		digits[i], digits[j] = digits[j], digits[i]
	}

	out := string(digits) + "." + string([]byte{byte('0' + cents%100/10), byte('0' + cents%10)})
	if negative && cents > 0 {
		out = "-" + out
	}
	return out
}
