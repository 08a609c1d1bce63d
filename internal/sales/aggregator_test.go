package sales

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vinodrajapaksha/ttms-api/internal/domain"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func record(date, name string, units int, total, price float64) domain.SaleRecord {
	return domain.SaleRecord{
		SaleDate:     date,
		PackageName:  name,
		UnitsSold:    units,
		TotalSales:   total,
		PricePerUnit: price,
	}
}

func TestDailyBucket_MergesSamePackage(t *testing.T) {
	records := []domain.SaleRecord{
		record("2024-06-01", "Beach Tour", 2, 200, 100),
		record("2024-06-01", "Beach Tour", 1, 100, 100),
	}

	got := DailyBucket(records, day(2024, time.June, 1))

	require.Len(t, got, 1)
	assert.Equal(t, domain.PackageSales{
		PackageName:  "Beach Tour",
		UnitsSold:    3,
		TotalSales:   300,
		PricePerUnit: 100,
	}, got[0])
}

func TestDailyBucket(t *testing.T) {
	records := []domain.SaleRecord{
		record("2024-06-01", "Kandy Heritage", 1, 150, 150),
		record("2024-05-31", "Beach Tour", 9, 900, 100),
		record("2024-06-01T10:15:00", "Beach Tour", 2, 180, 90),
		record("not-a-date", "Beach Tour", 50, 5000, 100),
		record("2024-06-01", "Kandy Heritage", 2, 320, 160),
		record("2024-06-01", "Yala Safari", 0, 0, 250),
	}

	got := DailyBucket(records, time.Date(2024, time.June, 1, 21, 0, 0, 0, time.Local))

	require.Len(t, got, 3)

	assert.Equal(t, "Kandy Heritage", got[0].PackageName, "first occurrence order")
	assert.Equal(t, 3, got[0].UnitsSold)
	assert.Equal(t, 470.0, got[0].TotalSales)
	assert.Equal(t, 160.0, got[0].PricePerUnit, "last seen price wins")

	assert.Equal(t, "Beach Tour", got[1].PackageName)
	assert.Equal(t, 2, got[1].UnitsSold)

	assert.Equal(t, domain.PackageSales{PackageName: "Yala Safari", PricePerUnit: 250}, got[2])
}

func TestDailyBucket_ConservesTotals(t *testing.T) {
	records := []domain.SaleRecord{
		record("2024-06-01", "A", 4, 400, 100),
		record("2024-06-01", "B", 1, 75.5, 75.5),
		record("2024-06-01", "A", 6, 600, 100),
		record("2024-06-01", "C", 2, 99.99, 49.995),
	}

	got := DailyBucket(records, day(2024, time.June, 1))

	assert.Equal(t, 13, TotalUnits(got))
	assert.InDelta(t, 1175.49, TotalRevenue(got), 1e-9)
}

func TestWeeklyBucket(t *testing.T) {
	records := []domain.SaleRecord{
		record("2024-06-03", "A", 1, 100, 100),
		record("2024-06-03", "B", 2, 50, 25),
		record("2024-06-09", "A", 3, 300, 100),
		record("2024-06-10", "A", 7, 700, 100), // next week
		record("bad", "A", 7, 700, 100),
	}

	got := WeeklyBucket(records, day(2024, time.June, 6))

	require.Len(t, got, 7)
	assert.Equal(t, "Jun 03", got[0].Label)
	assert.Equal(t, "Monday", got[0].DayName)
	assert.Equal(t, 3, got[0].UnitsSold)
	assert.Equal(t, 150.0, got[0].TotalSales)

	assert.Equal(t, "Jun 09", got[6].Label)
	assert.Equal(t, "Sunday", got[6].DayName)
	assert.Equal(t, 3, got[6].UnitsSold)

	for _, d := range got[1:6] {
		assert.Zero(t, d.UnitsSold, d.Label)
	}
}

func TestWeeklyBucket_SundayBelongsToPreviousMonday(t *testing.T) {
	got := WeeklyBucket(nil, day(2024, time.June, 9))

	require.Len(t, got, 7)
	assert.Equal(t, "Jun 03", got[0].Label)
}

func TestWeeklyBucket_AlwaysSevenDays(t *testing.T) {
	for _, ref := range []time.Time{day(2024, time.January, 1), day(2024, time.December, 31), day(2025, time.March, 2)} {
		got := WeeklyBucket([]domain.SaleRecord{}, ref)
		assert.Len(t, got, 7)
		assert.Zero(t, TotalUnits(got))
	}
}

func TestWeekSpans(t *testing.T) {
	tests := []struct {
		name    string
		ref     time.Time
		periods []string
	}{
		{
			name:    "june 2024 starts on saturday",
			ref:     day(2024, time.June, 15),
			periods: []string{"Jun 01 - Jun 02", "Jun 03 - Jun 09", "Jun 10 - Jun 16", "Jun 17 - Jun 23", "Jun 24 - Jun 30"},
		},
		{
			name:    "february 2021 has four full weeks",
			ref:     day(2021, time.February, 10),
			periods: []string{"Feb 01 - Feb 07", "Feb 08 - Feb 14", "Feb 15 - Feb 21", "Feb 22 - Feb 28"},
		},
		{
			name: "march 2025 needs six spans",
			ref:  day(2025, time.March, 31),
			periods: []string{
				"Mar 01 - Mar 02", "Mar 03 - Mar 09", "Mar 10 - Mar 16",
				"Mar 17 - Mar 23", "Mar 24 - Mar 30", "Mar 31 - Mar 31",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MonthlyBucket(nil, tt.ref)

			require.Len(t, got, len(tt.periods))
			for i, w := range got {
				assert.Equal(t, tt.periods[i], w.Period)
			}
			assert.Equal(t, "Week 1", got[0].Label)
		})
	}
}

func TestMonthlyBucket(t *testing.T) {
	records := []domain.SaleRecord{
		record("2024-06-01", "A", 1, 100, 100),
		record("2024-06-02", "B", 2, 200, 100),
		record("2024-06-03", "A", 4, 400, 100),
		record("2024-06-30", "A", 5, 500, 100),
		record("2024-07-01", "A", 8, 800, 100),
		record("2024-05-31", "A", 8, 800, 100),
	}

	got := MonthlyBucket(records, day(2024, time.June, 20))

	require.Len(t, got, 5)
	assert.Equal(t, 3, got[0].UnitsSold)
	assert.Equal(t, 300.0, got[0].TotalSales)
	assert.Equal(t, 4, got[1].UnitsSold)
	assert.Equal(t, 5, got[4].UnitsSold)
	assert.Equal(t, 12, TotalUnits(got))
	assert.Equal(t, 1200.0, TotalRevenue(got))
}

func TestEmptyInputs(t *testing.T) {
	ref := day(2024, time.June, 1)

	daily := DailyBucket(nil, ref)
	assert.NotNil(t, daily)
	assert.Empty(t, daily)
	assert.Zero(t, TotalUnits(daily))
	assert.Zero(t, TotalRevenue(daily))

	assert.Len(t, WeeklyBucket(nil, ref), 7)
	assert.Len(t, MonthlyBucket(nil, ref), 5)

	assert.Equal(t, domain.ReportTotals{}, Totals([]domain.WeekSales{}))
}

func TestAveragePerUnit(t *testing.T) {
	assert.Equal(t, 0.0, AveragePerUnit(0, 0))
	assert.Equal(t, 150.0, AveragePerUnit(150, 0), "zero units divide by one")
	assert.Equal(t, 33.33, AveragePerUnit(100, 3))
}

func TestPartition(t *testing.T) {
	dated, skipped := Partition([]domain.SaleRecord{
		record("2024-06-01", "A", 1, 1, 1),
		record("", "A", 1, 1, 1),
		record("01/06/2024", "A", 1, 1, 1),
	})

	assert.Len(t, dated, 1)
	assert.Equal(t, 2, skipped)
}

func TestIdempotent(t *testing.T) {
	records := []domain.SaleRecord{
		record("2024-06-01", "A", 1, 100, 100),
		record("2024-06-04", "B", 2, 90, 45),
	}
	ref := day(2024, time.June, 4)

	assert.Equal(t, DailyBucket(records, ref), DailyBucket(records, ref))
	assert.Equal(t, WeeklyBucket(records, ref), WeeklyBucket(records, ref))
	assert.Equal(t, MonthlyBucket(records, ref), MonthlyBucket(records, ref))
}
