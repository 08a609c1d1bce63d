package domain

import "time"

type ReportTab string

const (
	ReportDaily   ReportTab = "daily"
	ReportWeekly  ReportTab = "weekly"
	ReportMonthly ReportTab = "monthly"
)

func (t ReportTab) Valid() bool {
	switch t {
	case ReportDaily, ReportWeekly, ReportMonthly:
		return true
	}
	return false
}

// PackageSales is one row of the daily report.
type PackageSales struct {
	PackageName  string  `json:"package_name"`
	UnitsSold    int     `json:"units_sold"`
	TotalSales   float64 `json:"total_sales"`
	PricePerUnit float64 `json:"price_per_unit"`
}

func (p PackageSales) Units() int       { return p.UnitsSold }
func (p PackageSales) Revenue() float64 { return p.TotalSales }

// DaySales is one day of the weekly report.
type DaySales struct {
	Date       time.Time `json:"-"`
	Label      string    `json:"date"`
	DayName    string    `json:"day_name"`
	UnitsSold  int       `json:"units_sold"`
	TotalSales float64   `json:"total_sales"`
}

func (d DaySales) Units() int       { return d.UnitsSold }
func (d DaySales) Revenue() float64 { return d.TotalSales }

// WeekSales is one Monday-aligned span of the monthly report.
type WeekSales struct {
	Label      string    `json:"week"`
	Period     string    `json:"period"`
	Start      time.Time `json:"-"`
	End        time.Time `json:"-"`
	UnitsSold  int       `json:"units_sold"`
	TotalSales float64   `json:"total_sales"`
}

func (w WeekSales) Units() int       { return w.UnitsSold }
func (w WeekSales) Revenue() float64 { return w.TotalSales }

// ReportTotals closes every report.
type ReportTotals struct {
	UnitsSold      int     `json:"units_sold"`
	TotalSales     float64 `json:"total_sales"`
	AveragePerUnit float64 `json:"average_per_unit"`
}

// Report is the rendered state of one reporting tab. Exactly one of Daily,
// Weekly or Monthly is filled, matching Tab.
type Report struct {
	Tab           ReportTab      `json:"tab"`
	ReferenceDate string         `json:"reference_date"`
	Title         string         `json:"title"`
	Period        string         `json:"period"`
	Daily         []PackageSales `json:"daily,omitempty"`
	Weekly        []DaySales     `json:"weekly,omitempty"`
	Monthly       []WeekSales    `json:"monthly,omitempty"`
	Totals        ReportTotals   `json:"totals"`
	SkippedRows   int            `json:"skipped_rows,omitempty"`
	GeneratedAt   time.Time      `json:"generated_at"`
}

// ReportRow is a normalized upstream trend row.
type ReportRow struct {
	Period       string  `json:"period"`
	Label        string  `json:"label"`
	UnitsSold    int     `json:"units_sold"`
	TotalSales   float64 `json:"total_sales"`
	PricePerUnit float64 `json:"price_per_unit"`
}
