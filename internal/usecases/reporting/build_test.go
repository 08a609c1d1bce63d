package reporting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vinodrajapaksha/ttms-api/internal/domain"
)

func day(s string) time.Time {
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestWindow(t *testing.T) {
	tests := []struct {
		tab       domain.ReportTab
		ref       string
		wantStart string
		wantEnd   string
	}{
		{domain.ReportDaily, "2024-06-12", "2024-06-12", "2024-06-12"},
		{domain.ReportWeekly, "2024-06-12", "2024-06-10", "2024-06-16"},
		{domain.ReportWeekly, "2024-06-16", "2024-06-10", "2024-06-16"},
		{domain.ReportMonthly, "2024-02-10", "2024-02-01", "2024-02-29"},
	}

	for _, tt := range tests {
		t.Run(string(tt.tab)+" "+tt.ref, func(t *testing.T) {
			start, end := Window(tt.tab, day(tt.ref))

			assert.Equal(t, tt.wantStart, start.Format(time.DateOnly))
			assert.Equal(t, tt.wantEnd, end.Format(time.DateOnly))
		})
	}
}

func TestStep(t *testing.T) {
	tests := []struct {
		name string
		tab  domain.ReportTab
		ref  string
		n    int
		want string
	}{
		{"next day", domain.ReportDaily, "2024-06-30", 1, "2024-07-01"},
		{"prev day", domain.ReportDaily, "2024-01-01", -1, "2023-12-31"},
		{"next week", domain.ReportWeekly, "2024-06-12", 1, "2024-06-19"},
		{"prev week", domain.ReportWeekly, "2024-06-12", -1, "2024-06-05"},
		{"next month", domain.ReportMonthly, "2024-06-12", 1, "2024-07-12"},
		{"clamped to leap february", domain.ReportMonthly, "2024-01-31", 1, "2024-02-29"},
		{"prev month across year", domain.ReportMonthly, "2024-01-15", -1, "2023-12-15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Step(tt.tab, day(tt.ref), tt.n).Format(time.DateOnly))
		})
	}
}

func TestBuild(t *testing.T) {
	records := []domain.SaleRecord{
		{SaleDate: "2024-06-01", PackageName: "Beach Tour", UnitsSold: 2, TotalSales: 200, PricePerUnit: 100},
		{SaleDate: "2024-06-01", PackageName: "Beach Tour", UnitsSold: 1, TotalSales: 100, PricePerUnit: 100},
		{SaleDate: "2024-06-03", PackageName: "Hill Country", UnitsSold: 4, TotalSales: 1000, PricePerUnit: 250},
		{SaleDate: "2024-W23", PackageName: "Week 23 2024", UnitsSold: 9, TotalSales: 9000},
	}
	generated := time.Date(2024, 6, 5, 8, 0, 0, 0, time.UTC)

	t.Run("daily", func(t *testing.T) {
		got, err := Build(domain.ReportDaily, day("2024-06-01"), records, generated)

		require.NoError(t, err)
		assert.Equal(t, "Daily Sales Report", got.Title)
		assert.Equal(t, "Jun 01, 2024", got.Period)
		assert.Equal(t, "2024-06-01", got.ReferenceDate)
		assert.Equal(t, []domain.PackageSales{{PackageName: "Beach Tour", UnitsSold: 3, TotalSales: 300, PricePerUnit: 100}}, got.Daily)
		assert.Equal(t, domain.ReportTotals{UnitsSold: 3, TotalSales: 300, AveragePerUnit: 100}, got.Totals)
		assert.Equal(t, 1, got.SkippedRows)
		assert.Equal(t, generated, got.GeneratedAt)
	})

	t.Run("weekly", func(t *testing.T) {
		got, err := Build(domain.ReportWeekly, day("2024-06-04"), records, generated)

		require.NoError(t, err)
		assert.Equal(t, "Jun 03 - Jun 09, 2024", got.Period)
		require.Len(t, got.Weekly, 7)
		assert.Equal(t, 4, got.Weekly[0].UnitsSold)
		assert.Equal(t, 4, got.Totals.UnitsSold)
		assert.Empty(t, got.Daily)
	})

	t.Run("monthly", func(t *testing.T) {
		got, err := Build(domain.ReportMonthly, day("2024-06-20"), records, generated)

		require.NoError(t, err)
		assert.Equal(t, "June 2024", got.Period)
		require.Len(t, got.Monthly, 5)
		assert.Equal(t, 3, got.Monthly[0].UnitsSold)
		assert.Equal(t, 4, got.Monthly[1].UnitsSold)
		assert.Equal(t, domain.ReportTotals{UnitsSold: 7, TotalSales: 1300, AveragePerUnit: 185.71}, got.Totals)
	})

	t.Run("no records", func(t *testing.T) {
		got, err := Build(domain.ReportDaily, day("2024-06-01"), nil, generated)

		require.NoError(t, err)
		assert.Empty(t, got.Daily)
		assert.Equal(t, domain.ReportTotals{}, got.Totals)
	})

	t.Run("invalid tab", func(t *testing.T) {
		_, err := Build("yearly", day("2024-06-01"), records, generated)
		assert.ErrorIs(t, err, ErrInvalidTab)
	})
}
