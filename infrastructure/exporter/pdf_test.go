package exporter

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vinodrajapaksha/ttms-api/internal/domain"
)

func dailyReport(packages int) *domain.Report {
	r := &domain.Report{
		Tab:           domain.ReportDaily,
		ReferenceDate: "2024-06-10",
		Title:         "Jun 10, 2024",
		Period:        "Jun 10, 2024",
		GeneratedAt:   time.Date(2024, 6, 10, 9, 30, 0, 0, time.UTC),
	}
	for i := 0; i < packages; i++ {
		r.Daily = append(r.Daily, domain.PackageSales{
			PackageName:  fmt.Sprintf("Package %d", i),
			UnitsSold:    2,
			TotalSales:   500,
			PricePerUnit: 250,
		})
	}
	r.Totals = domain.ReportTotals{UnitsSold: 2 * packages, TotalSales: 500 * float64(packages), AveragePerUnit: 250}
	return r
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "tour_report_daily_2024-06-10.pdf", FileName(dailyReport(0)))
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "Rs. 1,234.50", FormatCurrency(1234.5))
}

func TestPDFExporter_Export(t *testing.T) {
	tests := []struct {
		name   string
		report *domain.Report
	}{
		{"empty daily", dailyReport(0)},
		{"daily spanning pages", dailyReport(80)},
		{"weekly", &domain.Report{
			Tab: domain.ReportWeekly, ReferenceDate: "2024-06-10", Title: "Jun 10 - Jun 16, 2024",
			Weekly: []domain.DaySales{{Label: "Jun 10", DayName: "Monday", UnitsSold: 1, TotalSales: 100}},
		}},
		{"monthly", &domain.Report{
			Tab: domain.ReportMonthly, ReferenceDate: "2024-06-01", Title: "June 2024",
			Monthly: []domain.WeekSales{{Label: "Week 1", Period: "Jun 01 - Jun 02", UnitsSold: 3, TotalSales: 900}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			err := NewPDFExporter().Export(&buf, tt.report)

			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
		})
	}
}

func TestPDFExporter_ExportPaginates(t *testing.T) {
	var short, long bytes.Buffer
	require.NoError(t, NewPDFExporter().Export(&short, dailyReport(1)))
	require.NoError(t, NewPDFExporter().Export(&long, dailyReport(80)))

	assert.Equal(t, 1, bytes.Count(short.Bytes(), []byte("/Type /Page\n")))
	assert.Greater(t, bytes.Count(long.Bytes(), []byte("/Type /Page\n")), 1)
}

func TestPDFExporter_ExportRejectsUnknownTab(t *testing.T) {
	var buf bytes.Buffer

	err := NewPDFExporter().Export(&buf, &domain.Report{Tab: "yearly"})

	assert.Error(t, err)
	assert.Zero(t, buf.Len())
	assert.Error(t, NewPDFExporter().Export(&buf, nil))
}
