package scheduler

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vinodrajapaksha/ttms-api/infrastructure/integrator/backend"
	"github.com/vinodrajapaksha/ttms-api/infrastructure/repository"
	"github.com/vinodrajapaksha/ttms-api/internal/config"
	"github.com/vinodrajapaksha/ttms-api/internal/daterange"
	"github.com/vinodrajapaksha/ttms-api/internal/domain"
)

type SalesSyncConfig struct {
	CronSchedule      string
	LookbackDays      int
	MaxConcurrentJobs int
	RetentionDays     int
	SyncEnabled       bool
}

// SalesSyncResult counts what one run of the sales sync did.
type SalesSyncResult struct {
	Fetched int   `json:"fetched"`
	Saved   int   `json:"saved"`
	Skipped int   `json:"skipped"`
	Failed  int   `json:"failed"`
	Purged  int64 `json:"purged"`
}

// SalesSyncService copies the backend's daily sale rows into the sale
// record snapshot and prunes rows past the retention window.
type SalesSyncService struct {
	scheduler           *gocron.Scheduler
	config              SalesSyncConfig
	client              backend.Client
	saleRecordRepo      repository.SaleRecordRepository
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastResult          SalesSyncResult
}

func NewSalesSyncService(
	client backend.Client,
	saleRecordRepo repository.SaleRecordRepository,
	appConfig *config.Config,
) *SalesSyncService {
	syncConfig := SalesSyncConfig{
		CronSchedule:      appConfig.SalesSync.CronSchedule,
		LookbackDays:      appConfig.SalesSync.LookbackDays,
		MaxConcurrentJobs: appConfig.SalesSync.MaxConcurrentJobs,
		RetentionDays:     appConfig.SalesSync.RetentionDays,
		SyncEnabled:       appConfig.SalesSync.Enabled,
	}
	if syncConfig.MaxConcurrentJobs < 1 {
		syncConfig.MaxConcurrentJobs = 1
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule":       syncConfig.CronSchedule,
		"lookback_days":       syncConfig.LookbackDays,
		"max_concurrent_jobs": syncConfig.MaxConcurrentJobs,
		"retention_days":      syncConfig.RetentionDays,
		"sync_enabled":        syncConfig.SyncEnabled,
	}).Info("sales sync: configuration loaded")

	return &SalesSyncService{
		scheduler:      gocron.NewScheduler(time.Local),
		config:         syncConfig,
		client:         client,
		saleRecordRepo: saleRecordRepo,
	}
}

func (s *SalesSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("sales sync: disabled by configuration")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("sales sync: starting scheduler")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncSales(ctx)
	})
	if err != nil {
		return fmt.Errorf("schedule sales sync: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("sales sync: stopping scheduler")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *SalesSyncService) syncSales(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("sales sync: already running, skipping")
		return
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	startTime := time.Now()

	result, err := s.run(ctx)
	if err != nil {
		logrus.WithError(err).Error("sales sync: failed")
		return
	}

	s.syncMutex.Lock()
	s.lastResult = result
	s.lastSyncCompletedAt = time.Now()
	s.syncMutex.Unlock()

	logrus.WithFields(logrus.Fields{
		"duration": time.Since(startTime).String(),
		"fetched":  result.Fetched,
		"saved":    result.Saved,
		"skipped":  result.Skipped,
		"failed":   result.Failed,
		"purged":   result.Purged,
	}).Info("sales sync: completed")
}

func (s *SalesSyncService) run(ctx context.Context) (SalesSyncResult, error) {
	rows, err := s.client.SalesReport(ctx, domain.ReportDaily, s.config.LookbackDays)
	if err != nil {
		return SalesSyncResult{}, fmt.Errorf("fetch daily sales: %w", err)
	}

	entries, skipped := mergeSaleRows(rows)
	result := SalesSyncResult{
		Fetched: len(rows),
		Skipped: skipped,
	}

	saved, failed := s.saveEntries(ctx, entries)
	result.Saved = saved
	result.Failed = failed

	if s.config.RetentionDays > 0 {
		purged, err := s.saleRecordRepo.DeleteOlderThan(ctx, s.config.RetentionDays)
		if err != nil {
			logrus.WithError(err).Warn("sales sync: could not prune old sale records")
		}
		result.Purged = purged
	}

	return result, nil
}

// saveEntries stores entries with at most MaxConcurrentJobs writes in flight.
func (s *SalesSyncService) saveEntries(ctx context.Context, entries []*domain.SaleRecordEntry) (int, int) {
	semaphore := make(chan struct{}, s.config.MaxConcurrentJobs)
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		saved  int
		failed int
	)

	for _, entry := range entries {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(e *domain.SaleRecordEntry) {
			defer func() {
				<-semaphore
				wg.Done()
			}()

			err := s.saleRecordRepo.SaveOrUpdate(ctx, e)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failed++
				logrus.WithFields(logrus.Fields{
					"sale_date":    e.SaleDate.Format(time.DateOnly),
					"package_name": e.PackageName,
					"error":        err.Error(),
				}).Error("sales sync: could not save sale record")
				return
			}
			saved++
		}(entry)
	}

	wg.Wait()
	return saved, failed
}

// mergeSaleRows folds rows sharing a day and package into one entry, keeping
// the last row's unit price. Rows whose period is not a calendar day are
// counted and dropped.
func mergeSaleRows(rows []domain.SalesSummary) ([]*domain.SaleRecordEntry, int) {
	type key struct {
		day  string
		name string
	}

	merged := make(map[key]*domain.SaleRecordEntry)
	skipped := 0

	for _, row := range rows {
		day, err := daterange.ParseDate(row.Period)
		if err != nil {
			skipped++
			continue
		}

		k := key{day: daterange.FormatISO(day), name: row.Label}
		entry, ok := merged[k]
		if !ok {
			entry = &domain.SaleRecordEntry{
				SaleDate:    day,
				PackageName: row.Label,
			}
			merged[k] = entry
		}
		entry.UnitsSold += row.TotalUnits
		entry.TotalSales += row.TotalSales
		entry.PricePer = row.PricePerUnit
	}

	entries := make([]*domain.SaleRecordEntry, 0, len(merged))
	for _, e := range merged {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].SaleDate.Equal(entries[j].SaleDate) {
			return entries[i].SaleDate.Before(entries[j].SaleDate)
		}
		return entries[i].PackageName < entries[j].PackageName
	})

	return entries, skipped
}

func (s *SalesSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("sales sync: already running, ignoring manual trigger")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("sales sync: manual run requested")
	go s.syncSales(context.Background())
}

func (s *SalesSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_lookback_days":     s.config.LookbackDays,
		"sync_max_concurrent":    s.config.MaxConcurrentJobs,
		"retention_days":         s.config.RetentionDays,
		"sync_running":           s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_sync_result":       s.lastResult,
	}
}
