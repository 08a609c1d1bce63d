package handler

import (
	"net/http"

	"github.com/vinodrajapaksha/ttms-api/internal/api/handler/router"
	"github.com/vinodrajapaksha/ttms-api/internal/usecases/calendaring"
	"github.com/vinodrajapaksha/ttms-api/internal/usecases/promoting"
	"github.com/vinodrajapaksha/ttms-api/internal/usecases/reporting"
	"github.com/vinodrajapaksha/ttms-api/pkg/middleware"
)

// PublicPaths are the GET endpoints served without a token.
var PublicPaths = []string{
	"/healthcheck",
	"/v1/calendar",
	"/v1/calendar/day",
	"/v1/promotions/active",
}

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Calendar(service calendaring.Calendarer) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/calendar",
			Method:  http.MethodGet,
			Handler: GetCalendarMonth(service),
		},
		{
			Path:    "/v1/calendar/day",
			Method:  http.MethodGet,
			Handler: GetCalendarDay(service),
		},
	}
}

func Promotions(service promoting.Promoter) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/promotions",
			Method:      http.MethodGet,
			Handler:     ListPromotions(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.StaffOnly()},
		},
		{
			Path:    "/v1/promotions/:id",
			Method:  http.MethodGet,
			Handler: PromotionByID(service),
		},
		{
			Path:        "/v1/promotions",
			Method:      http.MethodPost,
			Handler:     CreatePromotion(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.ManagersOnly()},
		},
		{
			Path:        "/v1/promotions/:id",
			Method:      http.MethodPut,
			Handler:     UpdatePromotion(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.ManagersOnly()},
		},
		{
			Path:        "/v1/promotions/:id/toggle",
			Method:      http.MethodPatch,
			Handler:     TogglePromotion(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.ManagersOnly()},
		},
		{
			Path:        "/v1/promotions/:id",
			Method:      http.MethodDelete,
			Handler:     DeletePromotion(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.ManagersOnly()},
		},
	}
}

func Reports(service reporting.Reporter) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/reports/:tab",
			Method:      http.MethodGet,
			Handler:     GetReport(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.ManagersOnly()},
		},
		{
			Path:        "/v1/reports/:tab/:sub",
			Method:      http.MethodGet,
			Handler:     ReportSubresource(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.ManagersOnly()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.GeneralManagerOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.GeneralManagerOnly()},
		},
	}
}
