package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vinodrajapaksha/ttms-api/internal/api/handler"
	"github.com/vinodrajapaksha/ttms-api/internal/api/handler/router"
	"github.com/vinodrajapaksha/ttms-api/internal/config"
	"github.com/vinodrajapaksha/ttms-api/internal/usecases/authenticating"
	"github.com/vinodrajapaksha/ttms-api/internal/usecases/calendaring"
	"github.com/vinodrajapaksha/ttms-api/internal/usecases/promoting"
	"github.com/vinodrajapaksha/ttms-api/internal/usecases/reporting"
	"github.com/vinodrajapaksha/ttms-api/pkg/middleware"
)

const shutdownTimeout = 15 * time.Second

type Server struct {
	httpServer *http.Server
}

// Services are the use cases the HTTP API exposes.
type Services struct {
	Promotions    promoting.Promoter
	Calendar      calendaring.Calendarer
	Reports       reporting.Reporter
	Authenticator authenticating.Authenticator
	CronJobs      handler.CronJobServices
}

// NewHandler builds the routed, middleware-wrapped API handler.
func NewHandler(cfg *config.Config, services Services) http.Handler {
	rt := router.New(
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Calendar(services.Calendar)...),
		router.WithRoutes(handler.Promotions(services.Promotions)...),
		router.WithRoutes(handler.Reports(services.Reports)...),
		router.WithRoutes(handler.CronJobs(services.CronJobs)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(cfg.Cors.AllowedOrigins),
		middleware.AuthMiddleware(services.Authenticator, middleware.PublicPaths(handler.PublicPaths...)),
	}

	return alice.New(middlewares...).Then(rt)
}

func New(cfg *config.Config, services Services) (*Server, error) {
	if services.Promotions == nil || services.Calendar == nil || services.Reports == nil || services.Authenticator == nil {
		return nil, errors.New("api: promotions, calendar, reports and authenticator services are required")
	}

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
			Handler:           NewHandler(cfg, services),
			ReadHeaderTimeout: 2 * time.Second,
		},
	}, nil
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("server starting")

		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Error("server stopped unexpectedly")
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		logrus.Info("interrupt signal received")
	case <-ctx.Done():
		logrus.Info("application context cancelled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logrus.WithFields(logrus.Fields{
		"timeout": shutdownTimeout.String(),
	}).Info("shutting down server")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("server shutdown failed")
		return err
	}

	logrus.Info("server stopped")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
