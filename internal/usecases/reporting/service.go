// Package reporting builds the daily, weekly and monthly sales reports and
// their PDF exports.
package reporting

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/vinodrajapaksha/ttms-api/infrastructure/exporter"
	"github.com/vinodrajapaksha/ttms-api/infrastructure/integrator/backend"
	"github.com/vinodrajapaksha/ttms-api/infrastructure/repository"
	"github.com/vinodrajapaksha/ttms-api/internal/config"
	"github.com/vinodrajapaksha/ttms-api/internal/daterange"
	"github.com/vinodrajapaksha/ttms-api/internal/domain"
	"github.com/vinodrajapaksha/ttms-api/pkg/log"
)

// Request mirrors the reports query string.
type Request struct {
	Tab  domain.ReportTab
	Date string
	Nav  string
}

type Reporter interface {
	Load(ctx context.Context, tab domain.ReportTab, ref time.Time) (*domain.Report, error)
	Report(ctx context.Context, req Request) (*domain.Report, error)
	Export(ctx context.Context, req Request, w io.Writer) (string, error)
	Trend(ctx context.Context, tab domain.ReportTab, count int) ([]domain.ReportRow, error)
}

type Service struct {
	cfg      *config.Config
	client   backend.Client
	repo     repository.SaleRecordRepository
	useCache bool
	exporter exporter.Exporter
	loc      *time.Location
	now      func() time.Time
}

func NewService(cfg *config.Config, client backend.Client, exp exporter.Exporter) *Service {
	loc, err := cfg.Location()
	if err != nil {
		loc = time.Local
	}

	return &Service{
		cfg:      cfg,
		client:   client,
		exporter: exp,
		loc:      loc,
		now:      time.Now,
	}
}

// WithCache reads sale records from the snapshot before asking the backend.
func (s *Service) WithCache(repo repository.SaleRecordRepository) *Service {
	s.repo = repo
	s.useCache = repo != nil
	return s
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) today() time.Time {
	return civilDay(s.now().In(s.loc))
}

func (s *Service) Load(ctx context.Context, tab domain.ReportTab, ref time.Time) (*domain.Report, error) {
	if !tab.Valid() {
		return nil, ErrInvalidTab
	}

	records, err := s.records(ctx, tab, ref)
	if err != nil {
		return nil, err
	}

	report, err := Build(tab, ref, records, s.now().In(s.loc))
	if err != nil {
		return nil, err
	}

	if report.SkippedRows > 0 {
		log.ForContext(ctx).WithFields(log.Fields{
			"tab":            tab,
			"reference_date": report.ReferenceDate,
			"skipped":        report.SkippedRows,
		}).Warn("reports: sale records with unparsable dates were left out")
	}

	return report, nil
}

// records returns the sale rows covering the tab's window. Only daily rows
// carry a calendar day, so every tab reads them; weekly and monthly upstream
// rows are served by Trend.
func (s *Service) records(ctx context.Context, tab domain.ReportTab, ref time.Time) ([]domain.SaleRecord, error) {
	start, end := Window(tab, ref)

	if s.useCache {
		entries, err := s.repo.GetByDateRange(ctx, start, end)
		if err != nil {
			log.ForContext(ctx).WithError(err).Warn("reports: snapshot unavailable, reading from backend")
		} else if len(entries) > 0 {
			records := make([]domain.SaleRecord, 0, len(entries))
			for _, e := range entries {
				records = append(records, e.Record())
			}
			return records, nil
		}
	}

	rows, err := s.client.SalesReport(ctx, domain.ReportDaily, s.daysBack(start))
	if err != nil {
		return nil, err
	}

	records := make([]domain.SaleRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.Record())
	}
	return records, nil
}

// daysBack is how many days the backend must look back to reach start,
// never fewer than the configured daily window.
func (s *Service) daysBack(start time.Time) int {
	days, err := daterange.DurationInDays(start, s.today())
	if err != nil {
		days = 0
	}
	return max(days, s.cfg.Report.DailyWindowDays)
}

// Report builds a one-shot view from the query string and refreshes it.
func (s *Service) Report(ctx context.Context, req Request) (*domain.Report, error) {
	view, err := s.view(req)
	if err != nil {
		return nil, err
	}
	return view.Refresh(ctx)
}

// Export loads the requested report and renders it to w.
func (s *Service) Export(ctx context.Context, req Request, w io.Writer) (string, error) {
	view, err := s.view(req)
	if err != nil {
		return "", err
	}
	if _, err := view.Refresh(ctx); err != nil {
		return "", err
	}

	name, err := view.Export(w)
	if err != nil {
		log.ForContext(ctx).WithError(err).WithField("tab", req.Tab).Error("reports: export failed")
		return "", err
	}
	return name, nil
}

func (s *Service) view(req Request) (*View, error) {
	ref := s.today()
	if strings.TrimSpace(req.Date) != "" {
		day, err := daterange.ParseDate(req.Date)
		if err != nil {
			return nil, err
		}
		ref = day
	}

	view, err := NewView(s, s.exporter, req.Tab, ref)
	if err != nil {
		return nil, err
	}
	if err := view.Navigate(strings.ToLower(strings.TrimSpace(req.Nav))); err != nil {
		return nil, err
	}
	return view, nil
}

// Trend passes the backend's own daily, weekly or monthly summary rows
// through. A count of 0 uses the configured window for the granularity.
func (s *Service) Trend(ctx context.Context, tab domain.ReportTab, count int) ([]domain.ReportRow, error) {
	if !tab.Valid() {
		return nil, ErrInvalidTab
	}
	if count < 0 {
		return nil, ErrInvalidTrendSize
	}
	if count == 0 {
		count = s.defaultCount(tab)
	}

	rows, err := s.client.SalesReport(ctx, tab, count)
	if err != nil {
		return nil, err
	}

	out := make([]domain.ReportRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.ReportRow{
			Period:       r.Period,
			Label:        r.Label,
			UnitsSold:    r.TotalUnits,
			TotalSales:   r.TotalSales,
			PricePerUnit: r.PricePerUnit,
		})
	}
	return out, nil
}

func (s *Service) defaultCount(tab domain.ReportTab) int {
	switch tab {
	case domain.ReportWeekly:
		return s.cfg.Report.TrendWeeks
	case domain.ReportMonthly:
		return s.cfg.Report.TrendMonths
	}
	return s.cfg.Report.DailyWindowDays
}
