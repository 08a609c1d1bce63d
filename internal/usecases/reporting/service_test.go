package reporting

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vinodrajapaksha/ttms-api/infrastructure/exporter"
	"github.com/vinodrajapaksha/ttms-api/infrastructure/integrator/backend"
	backendmocks "github.com/vinodrajapaksha/ttms-api/infrastructure/integrator/backend/mocks"
	repomocks "github.com/vinodrajapaksha/ttms-api/infrastructure/repository/mocks"
	"github.com/vinodrajapaksha/ttms-api/internal/config"
	"github.com/vinodrajapaksha/ttms-api/internal/daterange"
	"github.com/vinodrajapaksha/ttms-api/internal/domain"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)

func testConfig() *config.Config {
	return &config.Config{
		App:    config.App{Timezone: "UTC"},
		Report: config.Report{DailyWindowDays: 30, TrendWeeks: 12, TrendMonths: 6},
	}
}

func newTestService(t *testing.T) (*Service, *backendmocks.MockClient) {
	t.Helper()
	client := backendmocks.NewMockClient(gomock.NewController(t))
	svc := NewService(testConfig(), client, exporter.NewPDFExporter()).
		WithClock(func() time.Time { return fixedNow })
	return svc, client
}

var upstreamRows = []domain.SalesSummary{
	{Period: "2024-06-10", Label: "Beach Tour", TotalUnits: 2, TotalSales: 200, PricePerUnit: 100},
	{Period: "2024-06-10", Label: "Beach Tour", TotalUnits: 1, TotalSales: 100, PricePerUnit: 100},
	{Period: "2024-06-11", Label: "Hill Country", TotalUnits: 4, TotalSales: 1000, PricePerUnit: 250},
}

func TestService_Load_FromBackend(t *testing.T) {
	tests := []struct {
		name     string
		tab      domain.ReportTab
		ref      string
		wantDays int
	}{
		{"recent day uses the configured window", domain.ReportDaily, "2024-06-10", 30},
		{"older month reaches back to its first day", domain.ReportMonthly, "2024-03-10", 107},
		{"future week", domain.ReportWeekly, "2024-06-20", 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, client := newTestService(t)
			client.EXPECT().SalesReport(gomock.Any(), domain.ReportDaily, tt.wantDays).Return(upstreamRows, nil)

			got, err := svc.Load(context.Background(), tt.tab, day(tt.ref))

			require.NoError(t, err)
			assert.Equal(t, tt.tab, got.Tab)
			assert.Equal(t, tt.ref, got.ReferenceDate)
		})
	}
}

func TestService_Load_Daily(t *testing.T) {
	svc, client := newTestService(t)
	client.EXPECT().SalesReport(gomock.Any(), domain.ReportDaily, 30).Return(upstreamRows, nil)

	got, err := svc.Load(context.Background(), domain.ReportDaily, day("2024-06-10"))

	require.NoError(t, err)
	require.Len(t, got.Daily, 1)
	assert.Equal(t, 3, got.Daily[0].UnitsSold)
	assert.Equal(t, 300.0, got.Totals.TotalSales)
	assert.Equal(t, fixedNow, got.GeneratedAt)
}

func TestService_Load_FromSnapshot(t *testing.T) {
	svc, _ := newTestService(t)
	repo := repomocks.NewMockSaleRecordRepository(gomock.NewController(t))
	svc.WithCache(repo)

	start, end := Window(domain.ReportWeekly, day("2024-06-12"))
	repo.EXPECT().GetByDateRange(gomock.Any(), start, end).Return([]*domain.SaleRecordEntry{
		{SaleDate: day("2024-06-10"), PackageName: "Beach Tour", UnitsSold: 2, TotalSales: 200, PricePer: 100},
		{SaleDate: day("2024-06-16"), PackageName: "Beach Tour", UnitsSold: 1, TotalSales: 100, PricePer: 100},
	}, nil)

	got, err := svc.Load(context.Background(), domain.ReportWeekly, day("2024-06-12"))

	require.NoError(t, err)
	require.Len(t, got.Weekly, 7)
	assert.Equal(t, 2, got.Weekly[0].UnitsSold)
	assert.Equal(t, 1, got.Weekly[6].UnitsSold)
	assert.Equal(t, 3, got.Totals.UnitsSold)
}

func TestService_Load_SnapshotMissFallsBack(t *testing.T) {
	for name, snapshotErr := range map[string]error{"empty": nil, "error": errors.New("db down")} {
		t.Run(name, func(t *testing.T) {
			svc, client := newTestService(t)
			repo := repomocks.NewMockSaleRecordRepository(gomock.NewController(t))
			svc.WithCache(repo)

			repo.EXPECT().GetByDateRange(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, snapshotErr)
			client.EXPECT().SalesReport(gomock.Any(), domain.ReportDaily, 30).Return(upstreamRows, nil)

			got, err := svc.Load(context.Background(), domain.ReportDaily, day("2024-06-11"))

			require.NoError(t, err)
			assert.Equal(t, 4, got.Totals.UnitsSold)
		})
	}
}

func TestService_Report(t *testing.T) {
	svc, client := newTestService(t)
	client.EXPECT().SalesReport(gomock.Any(), domain.ReportDaily, 30).Return(upstreamRows, nil)

	got, err := svc.Report(context.Background(), Request{Tab: domain.ReportDaily, Date: "2024-06-12", Nav: "prev"})

	require.NoError(t, err)
	assert.Equal(t, "2024-06-11", got.ReferenceDate)
	require.Len(t, got.Daily, 1)
	assert.Equal(t, "Hill Country", got.Daily[0].PackageName)
}

func TestService_Report_DefaultsToToday(t *testing.T) {
	svc, client := newTestService(t)
	client.EXPECT().SalesReport(gomock.Any(), domain.ReportDaily, 30).Return(nil, nil)

	got, err := svc.Report(context.Background(), Request{Tab: domain.ReportMonthly})

	require.NoError(t, err)
	assert.Equal(t, "2024-06-15", got.ReferenceDate)
	assert.Len(t, got.Monthly, 5)
	assert.Zero(t, got.Totals.UnitsSold)
}

func TestService_Report_BadInput(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		wantErr error
	}{
		{"bad tab", Request{Tab: "hourly"}, ErrInvalidTab},
		{"bad date", Request{Tab: domain.ReportDaily, Date: "12-06-2024"}, daterange.ErrInvalidDateFormat},
		{"bad nav", Request{Tab: domain.ReportDaily, Nav: "up"}, ErrInvalidNav},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService(t)

			_, err := svc.Report(context.Background(), tt.req)

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestService_Export(t *testing.T) {
	svc, client := newTestService(t)
	client.EXPECT().SalesReport(gomock.Any(), domain.ReportDaily, 30).Return(upstreamRows, nil)

	var buf bytes.Buffer
	name, err := svc.Export(context.Background(), Request{Tab: domain.ReportDaily, Date: "2024-06-10"}, &buf)

	require.NoError(t, err)
	assert.Equal(t, "tour_report_daily_2024-06-10.pdf", name)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestService_Export_FetchFailure(t *testing.T) {
	svc, client := newTestService(t)
	client.EXPECT().SalesReport(gomock.Any(), domain.ReportDaily, 30).
		Return(nil, &backend.FetchError{Op: "daily report", Status: 503})

	var buf bytes.Buffer
	_, err := svc.Export(context.Background(), Request{Tab: domain.ReportDaily, Date: "2024-06-10"}, &buf)

	assert.ErrorIs(t, err, backend.ErrFetchFailure)
	assert.NotErrorIs(t, err, ErrExportFailure)
	assert.Zero(t, buf.Len())
}

func TestService_Trend(t *testing.T) {
	tests := []struct {
		tab       domain.ReportTab
		count     int
		wantCount int
	}{
		{domain.ReportDaily, 0, 30},
		{domain.ReportWeekly, 0, 12},
		{domain.ReportMonthly, 0, 6},
		{domain.ReportMonthly, 3, 3},
	}

	for _, tt := range tests {
		t.Run(string(tt.tab), func(t *testing.T) {
			svc, client := newTestService(t)
			client.EXPECT().SalesReport(gomock.Any(), tt.tab, tt.wantCount).Return([]domain.SalesSummary{
				{Period: "2024-06", Label: "June 2024", TotalUnits: 12, TotalSales: 3000, PricePerUnit: 250},
			}, nil)

			rows, err := svc.Trend(context.Background(), tt.tab, tt.count)

			require.NoError(t, err)
			assert.Equal(t, []domain.ReportRow{
				{Period: "2024-06", Label: "June 2024", UnitsSold: 12, TotalSales: 3000, PricePerUnit: 250},
			}, rows)
		})
	}
}

func TestService_Trend_BadInput(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Trend(context.Background(), "yearly", 1)
	assert.ErrorIs(t, err, ErrInvalidTab)

	_, err = svc.Trend(context.Background(), domain.ReportDaily, -2)
	assert.ErrorIs(t, err, ErrInvalidTrendSize)
}
