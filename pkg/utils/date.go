package utils

import "time"

const monthLayout = "2006-01"

// ParseMonth reads a "2006-01" query value. An empty value yields nil so the
// caller can fall back to the current month.
func ParseMonth(value string, loc *time.Location) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}

	if loc == nil {
		loc = time.UTC
	}

	month, err := time.ParseInLocation(monthLayout, value, loc)
	if err != nil {
		return nil, err
	}

	return &month, nil
}

// FormatMonth renders t as "2006-01".
func FormatMonth(t time.Time) string {
	return t.Format(monthLayout)
}
