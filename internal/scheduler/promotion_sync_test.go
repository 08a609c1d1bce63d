package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vinodrajapaksha/ttms-api/internal/config"
	"github.com/vinodrajapaksha/ttms-api/internal/usecases/promoting/mocks"
	"go.uber.org/mock/gomock"
)

func newPromotionSync(t *testing.T) (*PromotionSyncService, *mocks.MockPromoter) {
	t.Helper()
	promoter := mocks.NewMockPromoter(gomock.NewController(t))
	cfg := &config.Config{PromotionSync: config.PromotionSync{CronSchedule: "*/15 * * * *", Enabled: true}}
	return NewPromotionSyncService(promoter, cfg), promoter
}

func TestPromotionSyncService_syncPromotions(t *testing.T) {
	service, promoter := newPromotionSync(t)
	promoter.EXPECT().Sync(gomock.Any()).Return(12, nil)

	service.syncPromotions(context.Background())

	status := service.GetStatus()
	assert.Equal(t, 12, status["last_sync_promotions"])
	assert.Equal(t, "", status["last_sync_error"])
	assert.False(t, status["sync_running"].(bool))
	assert.False(t, service.lastSyncCompletedAt.IsZero())
}

func TestPromotionSyncService_syncPromotions_Failure(t *testing.T) {
	service, promoter := newPromotionSync(t)
	promoter.EXPECT().Sync(gomock.Any()).Return(0, errors.New("backend down"))

	service.syncPromotions(context.Background())

	status := service.GetStatus()
	assert.Equal(t, "backend down", status["last_sync_error"])
	assert.True(t, service.lastSyncCompletedAt.IsZero())
	assert.False(t, service.syncRunning)
}

func TestPromotionSyncService_SkipsWhileRunning(t *testing.T) {
	service, _ := newPromotionSync(t)
	service.syncRunning = true

	service.syncPromotions(context.Background())
	service.TriggerManualSync()

	assert.True(t, service.lastSyncStartedAt.IsZero())
}

func TestPromotionSyncService_StartDisabled(t *testing.T) {
	service, _ := newPromotionSync(t)
	service.config.SyncEnabled = false

	assert.NoError(t, service.Start(context.Background()))
}

func TestPromotionSyncService_StartRejectsBadCron(t *testing.T) {
	service, _ := newPromotionSync(t)
	service.config.CronSchedule = "not a cron"

	assert.Error(t, service.Start(context.Background()))
}
