package reporting

import (
	"time"

	"github.com/vinodrajapaksha/ttms-api/internal/daterange"
	"github.com/vinodrajapaksha/ttms-api/internal/domain"
	"github.com/vinodrajapaksha/ttms-api/internal/sales"
)

const monthTitleLayout = "January 2006"

var tabTitles = map[domain.ReportTab]string{
	domain.ReportDaily:   "Daily Sales Report",
	domain.ReportWeekly:  "Weekly Sales Report",
	domain.ReportMonthly: "Monthly Sales Report",
}

// Window is the first and last calendar day a tab reads for ref.
func Window(tab domain.ReportTab, ref time.Time) (time.Time, time.Time) {
	switch tab {
	case domain.ReportWeekly:
		monday := daterange.StartOfWeek(ref, time.Monday)
		return monday, monday.AddDate(0, 0, 6)
	case domain.ReportMonthly:
		return daterange.StartOfMonth(ref), daterange.EndOfMonth(ref)
	}
	day := daterange.Day(ref)
	return day, day
}

// Build aggregates records into the report of one tab.
func Build(tab domain.ReportTab, ref time.Time, records []domain.SaleRecord, generatedAt time.Time) (*domain.Report, error) {
	if !tab.Valid() {
		return nil, ErrInvalidTab
	}

	start, end := Window(tab, ref)
	_, skipped := sales.Partition(records)

	report := &domain.Report{
		Tab:           tab,
		ReferenceDate: daterange.FormatISO(ref),
		Title:         tabTitles[tab],
		SkippedRows:   skipped,
		GeneratedAt:   generatedAt,
	}

	switch tab {
	case domain.ReportDaily:
		report.Period = daterange.FormatRange(start, end)
		report.Daily = sales.DailyBucket(records, ref)
		report.Totals = sales.Totals(report.Daily)
	case domain.ReportWeekly:
		report.Period = daterange.FormatRange(start, end)
		report.Weekly = sales.WeeklyBucket(records, ref)
		report.Totals = sales.Totals(report.Weekly)
	case domain.ReportMonthly:
		report.Period = ref.Format(monthTitleLayout)
		report.Monthly = sales.MonthlyBucket(records, ref)
		report.Totals = sales.Totals(report.Monthly)
	}

	return report, nil
}

// Step moves ref by one unit of tab: a day, a week or a calendar month. Month
// steps keep the day of month, clamped to the target month's length.
func Step(tab domain.ReportTab, ref time.Time, n int) time.Time {
	switch tab {
	case domain.ReportWeekly:
		return ref.AddDate(0, 0, 7*n)
	case domain.ReportMonthly:
		first := daterange.AddMonths(ref, n)
		d := min(ref.Day(), daterange.EndOfMonth(first).Day())
		return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, ref.Location())
	}
	return ref.AddDate(0, 0, n)
}
