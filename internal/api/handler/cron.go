package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vinodrajapaksha/ttms-api/pkg/apiErrors"
	"github.com/vinodrajapaksha/ttms-api/pkg/log"
)

const (
	CronJobTypePromotions = "promotions"
	CronJobTypeSales      = "sales"
	CronJobTypeAll        = "all"
)

// SyncJob is a scheduler that can be run on demand and report its state.
type SyncJob interface {
	TriggerManualSync()
	GetStatus() map[string]any
}

// CronJobServices holds the jobs exposed for manual runs. A nil job is
// reported as unavailable.
type CronJobServices struct {
	PromotionSync SyncJob
	SalesSync     SyncJob
}

func (s CronJobServices) jobs() map[string]SyncJob {
	jobs := make(map[string]SyncJob, 2)
	if s.PromotionSync != nil {
		jobs[CronJobTypePromotions] = s.PromotionSync
	}
	if s.SalesSync != nil {
		jobs[CronJobTypeSales] = s.SalesSync
	}
	return jobs
}

func RunCronJob(services CronJobServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		jobs := services.jobs()

		switch cronType {
		case CronJobTypeAll:
			for _, job := range jobs {
				job.TriggerManualSync()
			}
		case CronJobTypePromotions, CronJobTypeSales:
			job, ok := jobs[cronType]
			if !ok {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, cronType+" sync is not available", nil)
				return
			}
			job.TriggerManualSync()
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "unknown cron job type, expected promotions, sales or all", nil)
			return
		}

		log.ForContext(r.Context()).WithField("type", cronType).Info("cron: manual run started")

		writeJSON(w, r, http.StatusAccepted, map[string]any{
			"message": "cron job started",
			"type":    cronType,
		})
	})
}

func GetCronStatus(services CronJobServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status := make(map[string]any)
		for name, job := range services.jobs() {
			status[name] = job.GetStatus()
		}

		writeJSON(w, r, http.StatusOK, status)
	})
}
