package domain

import "time"

// SaleRecord is one row of a sales snapshot as the aggregator consumes it.
// SaleDate is kept as received; rows whose date does not parse are skipped
// during aggregation.
type SaleRecord struct {
	SaleDate     string  `json:"sale_date"`
	PackageName  string  `json:"package_name"`
	UnitsSold    int     `json:"units_sold"`
	TotalSales   float64 `json:"total_sales"`
	PricePerUnit float64 `json:"price_per_unit"`
}

// SaleRecordEntry is a SaleRecord as stored in the snapshot cache.
type SaleRecordEntry struct {
	ID          int64
	SaleDate    time.Time
	PackageName string
	UnitsSold   int
	TotalSales  float64
	PricePer    float64
	SyncedAt    time.Time
}

func (e *SaleRecordEntry) Record() SaleRecord {
	return SaleRecord{
		SaleDate:     e.SaleDate.Format(time.DateOnly),
		PackageName:  e.PackageName,
		UnitsSold:    e.UnitsSold,
		TotalSales:   e.TotalSales,
		PricePerUnit: e.PricePer,
	}
}

// SalesSummary is a row of the upstream daily/weekly/monthly report endpoints.
type SalesSummary struct {
	Period       string  `json:"period"`
	Label        string  `json:"label"`
	TotalUnits   int     `json:"totalUnits"`
	TotalSales   float64 `json:"totalSales"`
	PricePerUnit float64 `json:"pricePerUnit"`
}

// Record remaps a summary row into the shape the aggregator reads.
func (s SalesSummary) Record() SaleRecord {
	return SaleRecord{
		SaleDate:     s.Period,
		PackageName:  s.Label,
		UnitsSold:    s.TotalUnits,
		TotalSales:   s.TotalSales,
		PricePerUnit: s.PricePerUnit,
	}
}
