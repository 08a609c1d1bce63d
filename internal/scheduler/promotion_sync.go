// Package scheduler runs the jobs that keep the snapshot cache fresh.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vinodrajapaksha/ttms-api/internal/config"
	"github.com/vinodrajapaksha/ttms-api/internal/usecases/promoting"
)

type PromotionSyncConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

// PromotionSyncService replaces the promotion snapshot on a cron schedule.
type PromotionSyncService struct {
	scheduler           *gocron.Scheduler
	config              PromotionSyncConfig
	promoter            promoting.Promoter
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSyncCount       int
	lastSyncError       string
}

func NewPromotionSyncService(promoter promoting.Promoter, appConfig *config.Config) *PromotionSyncService {
	syncConfig := PromotionSyncConfig{
		CronSchedule: appConfig.PromotionSync.CronSchedule,
		SyncEnabled:  appConfig.PromotionSync.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
		"sync_enabled":  syncConfig.SyncEnabled,
	}).Info("promotion sync: configuration loaded")

	return &PromotionSyncService{
		scheduler: gocron.NewScheduler(time.Local),
		config:    syncConfig,
		promoter:  promoter,
	}
}

func (s *PromotionSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("promotion sync: disabled by configuration")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("promotion sync: starting scheduler")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncPromotions(ctx)
	})
	if err != nil {
		return fmt.Errorf("schedule promotion sync: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("promotion sync: stopping scheduler")
		s.scheduler.Stop()
	}()

	return nil
}

// syncPromotions is single-flight: a run that finds another in progress
// returns without touching the snapshot.
func (s *PromotionSyncService) syncPromotions(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("promotion sync: already running, skipping")
		return
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	startTime := time.Now()
	count, err := s.promoter.Sync(ctx)

	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()
	s.syncRunning = false

	if err != nil {
		s.lastSyncError = err.Error()
		logrus.WithError(err).Error("promotion sync: failed")
		return
	}

	s.lastSyncError = ""
	s.lastSyncCount = count
	s.lastSyncCompletedAt = time.Now()

	logrus.WithFields(logrus.Fields{
		"duration":   time.Since(startTime).String(),
		"promotions": count,
	}).Info("promotion sync: snapshot replaced")
}

func (s *PromotionSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("promotion sync: already running, ignoring manual trigger")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("promotion sync: manual run requested")
	go s.syncPromotions(context.Background())
}

func (s *PromotionSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_running":           s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_sync_promotions":   s.lastSyncCount,
		"last_sync_error":        s.lastSyncError,
	}
}
