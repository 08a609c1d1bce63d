package reporting

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/vinodrajapaksha/ttms-api/infrastructure/exporter"
	"github.com/vinodrajapaksha/ttms-api/internal/daterange"
	"github.com/vinodrajapaksha/ttms-api/internal/domain"
	"github.com/vinodrajapaksha/ttms-api/pkg/log"
	"github.com/vinodrajapaksha/ttms-api/pkg/utils"
)

// Loader produces the report of a tab for a reference day.
type Loader interface {
	Load(ctx context.Context, tab domain.ReportTab, ref time.Time) (*domain.Report, error)
}

// request tags a refresh with the state it was issued for.
type request struct {
	id         string
	generation uint64
	tab        domain.ReportTab
	ref        time.Time
}

// View is the reports page of one session: the active tab, its reference day
// and the last report rendered for them. Refreshes may overlap; a response is
// only applied while the view is still on the tab and day it was requested for
// and no later refresh has been issued.
type View struct {
	mu         sync.Mutex
	tab        domain.ReportTab
	ref        time.Time
	generation uint64
	report     *domain.Report

	loader   Loader
	exporter exporter.Exporter
}

func NewView(loader Loader, exp exporter.Exporter, tab domain.ReportTab, ref time.Time) (*View, error) {
	if !tab.Valid() {
		return nil, ErrInvalidTab
	}

	return &View{
		tab:      tab,
		ref:      civilDay(ref),
		loader:   loader,
		exporter: exp,
	}, nil
}

func civilDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (v *View) Tab() domain.ReportTab {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.tab
}

func (v *View) ReferenceDate() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.ref
}

// Report is the last report applied to the view, nil before the first
// successful refresh.
func (v *View) Report() *domain.Report {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.report
}

// SwitchTab keeps the reference day.
func (v *View) SwitchTab(tab domain.ReportTab) error {
	if !tab.Valid() {
		return ErrInvalidTab
	}
	v.mu.Lock()
	v.tab = tab
	v.mu.Unlock()
	return nil
}

func (v *View) Prev() {
	v.step(-1)
}

func (v *View) Next() {
	v.step(1)
}

func (v *View) step(n int) {
	v.mu.Lock()
	v.ref = Step(v.tab, v.ref, n)
	v.mu.Unlock()
}

// Navigate applies a "prev" or "next" query value; empty is a no-op.
func (v *View) Navigate(nav string) error {
	switch nav {
	case "":
	case "prev":
		v.Prev()
	case "next":
		v.Next()
	default:
		return ErrInvalidNav
	}
	return nil
}

// Refresh loads the report for the current tab and day. On a fetch failure
// the previous report stays in place and is returned with the error. A
// response overtaken by a newer refresh or by navigation is dropped with
// ErrStaleResponse.
func (v *View) Refresh(ctx context.Context) (*domain.Report, error) {
	req := v.issue()
	logger := log.ForContext(ctx).WithFields(log.Fields{
		"tab":            req.tab,
		"reference_date": daterange.FormatISO(req.ref),
		"request_id":     req.id,
	})

	report, err := v.loader.Load(ctx, req.tab, req.ref)

	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.current(req) {
		logger.Debug("reports: discarding stale response")
		return v.report, ErrStaleResponse
	}
	if err != nil {
		logger.WithError(err).Warn("reports: refresh failed, keeping previous report")
		return v.report, err
	}

	v.report = report
	return report, nil
}

func (v *View) issue() request {
	id, err := utils.GenerateID()
	if err != nil {
		id = "unknown"
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	v.generation++
	return request{id: id, generation: v.generation, tab: v.tab, ref: v.ref}
}

func (v *View) current(req request) bool {
	return req.generation == v.generation && req.tab == v.tab && req.ref.Equal(v.ref)
}

// Export renders the current report to w and returns its download name. It
// never changes the report held by the view.
func (v *View) Export(w io.Writer) (string, error) {
	v.mu.Lock()
	report := v.report
	v.mu.Unlock()

	if report == nil {
		return "", &ExportError{Tab: v.Tab(), Err: ErrNothingToExport}
	}

	if err := v.exporter.Export(w, report); err != nil {
		return "", &ExportError{Tab: report.Tab, Err: err}
	}
	return exporter.FileName(report), nil
}
