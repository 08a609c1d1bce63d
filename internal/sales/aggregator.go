// Package sales buckets flat sale records into the daily, weekly and monthly
// rollups shown on the reports page.
package sales

import (
	"fmt"
	"time"

	"github.com/vinodrajapaksha/ttms-api/internal/daterange"
	"github.com/vinodrajapaksha/ttms-api/internal/domain"
	"github.com/vinodrajapaksha/ttms-api/pkg/utils"
)

const (
	dayLabelLayout = "Jan 02"
	dayNameLayout  = "Monday"
)

// Entry is implemented by every bucket row.
type Entry interface {
	Units() int
	Revenue() float64
}

// DatedRecord is a SaleRecord whose sale_date parsed.
type DatedRecord struct {
	Day    time.Time
	Record domain.SaleRecord
}

// Partition parses every sale_date once. Rows that fail to parse are counted,
// not returned; the rollup carries on with the rest.
func Partition(records []domain.SaleRecord) ([]DatedRecord, int) {
	dated := make([]DatedRecord, 0, len(records))
	skipped := 0

	for _, r := range records {
		day, err := daterange.ParseDate(r.SaleDate)
		if err != nil {
			skipped++
			continue
		}
		dated = append(dated, DatedRecord{Day: day, Record: r})
	}

	return dated, skipped
}

// DailyBucket groups the records sold on ref's day by package, in the order
// each package first appears. Unit price is the last one seen.
func DailyBucket(records []domain.SaleRecord, ref time.Time) []domain.PackageSales {
	dated, _ := Partition(records)

	bucket := make([]domain.PackageSales, 0)
	index := make(map[string]int)

	for _, d := range dated {
		if !daterange.SameDay(d.Day, ref) {
			continue
		}

		i, ok := index[d.Record.PackageName]
		if !ok {
			i = len(bucket)
			index[d.Record.PackageName] = i
			bucket = append(bucket, domain.PackageSales{PackageName: d.Record.PackageName})
		}

		bucket[i].UnitsSold += d.Record.UnitsSold
		bucket[i].TotalSales += d.Record.TotalSales
		bucket[i].PricePerUnit = d.Record.PricePerUnit
	}

	return bucket
}

// WeeklyBucket returns the seven days, Monday first, of the week holding ref.
// Packages are combined.
func WeeklyBucket(records []domain.SaleRecord, ref time.Time) []domain.DaySales {
	byDay := sumByDay(records)
	monday := daterange.StartOfWeek(ref, time.Monday)

	bucket := make([]domain.DaySales, 7)
	for i := range bucket {
		day := monday.AddDate(0, 0, i)
		total := byDay[daterange.FormatISO(day)]
		bucket[i] = domain.DaySales{
			Date:       day,
			Label:      day.Format(dayLabelLayout),
			DayName:    day.Format(dayNameLayout),
			UnitsSold:  total.units,
			TotalSales: total.revenue,
		}
	}

	return bucket
}

// WeekSpans splits ref's month into Monday-aligned spans. The first span starts
// on the 1st and the last one ends on the month's last day.
func WeekSpans(ref time.Time) [][2]time.Time {
	first := daterange.StartOfMonth(ref)
	last := daterange.EndOfMonth(ref)

	spans := make([][2]time.Time, 0, 6)
	for cur := first; !cur.After(last); {
		end := daterange.StartOfWeek(cur, time.Monday).AddDate(0, 0, 6)
		if end.After(last) {
			end = last
		}
		spans = append(spans, [2]time.Time{cur, end})
		cur = end.AddDate(0, 0, 1)
	}

	return spans
}

// MonthlyBucket sums the records of each week span of ref's month.
func MonthlyBucket(records []domain.SaleRecord, ref time.Time) []domain.WeekSales {
	dated, _ := Partition(records)
	spans := WeekSpans(ref)

	bucket := make([]domain.WeekSales, len(spans))
	for i, span := range spans {
		bucket[i] = domain.WeekSales{
			Label:  fmt.Sprintf("Week %d", i+1),
			Period: daterange.FormatSpan(span[0], span[1]),
			Start:  span[0],
			End:    span[1],
		}
	}

	for _, d := range dated {
		for i, span := range spans {
			if daterange.IsWithinRange(d.Day, span[0], span[1]) {
				bucket[i].UnitsSold += d.Record.UnitsSold
				bucket[i].TotalSales += d.Record.TotalSales
				break
			}
		}
	}

	return bucket
}

func TotalUnits[E Entry](bucket []E) int {
	total := 0
	for _, e := range bucket {
		total += e.Units()
	}
	return total
}

func TotalRevenue[E Entry](bucket []E) float64 {
	total := 0.0
	for _, e := range bucket {
		total += e.Revenue()
	}
	return total
}

// AveragePerUnit divides revenue by units, never by less than one.
func AveragePerUnit(revenue float64, units int) float64 {
	return utils.RoundWithTwoDecimalPlace(revenue / float64(max(1, units)))
}

// Totals closes a bucket with its sums and average.
func Totals[E Entry](bucket []E) domain.ReportTotals {
	units := TotalUnits(bucket)
	revenue := TotalRevenue(bucket)
	return domain.ReportTotals{
		UnitsSold:      units,
		TotalSales:     utils.RoundWithTwoDecimalPlace(revenue),
		AveragePerUnit: AveragePerUnit(revenue, units),
	}
}

type dayTotal struct {
	units   int
	revenue float64
}

func sumByDay(records []domain.SaleRecord) map[string]dayTotal {
	dated, _ := Partition(records)

	byDay := make(map[string]dayTotal, len(dated))
	for _, d := range dated {
		key := daterange.FormatISO(d.Day)
		t := byDay[key]
		t.units += d.Record.UnitsSold
		t.revenue += d.Record.TotalSales
		byDay[key] = t
	}

	return byDay
}
