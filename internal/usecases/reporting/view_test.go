package reporting

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vinodrajapaksha/ttms-api/infrastructure/integrator/backend"
	"github.com/vinodrajapaksha/ttms-api/internal/domain"
)

type loaderFunc func(ctx context.Context, tab domain.ReportTab, ref time.Time) (*domain.Report, error)

func (f loaderFunc) Load(ctx context.Context, tab domain.ReportTab, ref time.Time) (*domain.Report, error) {
	return f(ctx, tab, ref)
}

type exporterFunc func(w io.Writer, report *domain.Report) error

func (f exporterFunc) Export(w io.Writer, report *domain.Report) error {
	return f(w, report)
}

func echoLoader() loaderFunc {
	return func(_ context.Context, tab domain.ReportTab, ref time.Time) (*domain.Report, error) {
		return &domain.Report{Tab: tab, ReferenceDate: ref.Format(time.DateOnly)}, nil
	}
}

func TestNewView_InvalidTab(t *testing.T) {
	_, err := NewView(echoLoader(), nil, "hourly", day("2024-06-10"))
	assert.ErrorIs(t, err, ErrInvalidTab)
}

func TestView_NavigationAndRefresh(t *testing.T) {
	v, err := NewView(echoLoader(), nil, domain.ReportDaily, time.Date(2024, 6, 10, 23, 30, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Nil(t, v.Report())

	v.Next()
	require.NoError(t, v.SwitchTab(domain.ReportWeekly))
	v.Next()
	require.NoError(t, v.SwitchTab(domain.ReportMonthly))
	v.Prev()

	got, err := v.Refresh(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.ReportMonthly, got.Tab)
	assert.Equal(t, "2024-05-18", got.ReferenceDate)
	assert.Same(t, got, v.Report())

	assert.ErrorIs(t, v.SwitchTab("yearly"), ErrInvalidTab)
	assert.ErrorIs(t, v.Navigate("sideways"), ErrInvalidNav)
	assert.Equal(t, domain.ReportMonthly, v.Tab())
}

func TestView_RefreshFailureKeepsPreviousReport(t *testing.T) {
	fail := false
	loader := loaderFunc(func(ctx context.Context, tab domain.ReportTab, ref time.Time) (*domain.Report, error) {
		if fail {
			return nil, &backend.FetchError{Op: "daily report", Err: errors.New("connection refused")}
		}
		return echoLoader()(ctx, tab, ref)
	})

	v, err := NewView(loader, nil, domain.ReportDaily, day("2024-06-10"))
	require.NoError(t, err)

	first, err := v.Refresh(context.Background())
	require.NoError(t, err)

	fail = true
	got, err := v.Refresh(context.Background())

	assert.ErrorIs(t, err, backend.ErrFetchFailure)
	assert.Same(t, first, got)
	assert.Same(t, first, v.Report())
}

func TestView_DiscardsStaleResponses(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})

	loader := loaderFunc(func(ctx context.Context, tab domain.ReportTab, ref time.Time) (*domain.Report, error) {
		if tab == domain.ReportDaily {
			close(started)
			<-release
		}
		return echoLoader()(ctx, tab, ref)
	})

	v, err := NewView(loader, nil, domain.ReportDaily, day("2024-06-10"))
	require.NoError(t, err)

	type result struct {
		report *domain.Report
		err    error
	}
	slow := make(chan result, 1)
	go func() {
		r, err := v.Refresh(context.Background())
		slow <- result{r, err}
	}()

	<-started
	require.NoError(t, v.SwitchTab(domain.ReportWeekly))
	fresh, err := v.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.ReportWeekly, fresh.Tab)

	close(release)
	stale := <-slow

	assert.ErrorIs(t, stale.err, ErrStaleResponse)
	assert.Same(t, fresh, stale.report, "the stale call reports what the view currently shows")
	assert.Equal(t, domain.ReportWeekly, v.Report().Tab)
}

func TestView_Export(t *testing.T) {
	var exported *domain.Report
	okExporter := exporterFunc(func(w io.Writer, report *domain.Report) error {
		exported = report
		_, err := io.WriteString(w, "%PDF-")
		return err
	})
	failing := exporterFunc(func(io.Writer, *domain.Report) error {
		return errors.New("font not found")
	})

	t.Run("nothing loaded", func(t *testing.T) {
		v, _ := NewView(echoLoader(), okExporter, domain.ReportDaily, day("2024-06-10"))

		_, err := v.Export(io.Discard)

		assert.ErrorIs(t, err, ErrExportFailure)
		assert.ErrorIs(t, err, ErrNothingToExport)
	})

	t.Run("success", func(t *testing.T) {
		v, _ := NewView(echoLoader(), okExporter, domain.ReportWeekly, day("2024-06-10"))
		report, err := v.Refresh(context.Background())
		require.NoError(t, err)

		name, err := v.Export(io.Discard)

		require.NoError(t, err)
		assert.Equal(t, "tour_report_weekly_2024-06-10.pdf", name)
		assert.Same(t, report, exported)
	})

	t.Run("renderer failure leaves report intact", func(t *testing.T) {
		v, _ := NewView(echoLoader(), failing, domain.ReportMonthly, day("2024-06-10"))
		report, err := v.Refresh(context.Background())
		require.NoError(t, err)

		_, err = v.Export(io.Discard)

		var exportErr *ExportError
		require.True(t, errors.As(err, &exportErr))
		assert.Equal(t, domain.ReportMonthly, exportErr.Tab)
		assert.ErrorContains(t, err, "font not found")
		assert.Same(t, report, v.Report())
	})
}
