package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vinodrajapaksha/ttms-api/infrastructure/database/postgres"
	"github.com/vinodrajapaksha/ttms-api/infrastructure/exporter"
	"github.com/vinodrajapaksha/ttms-api/infrastructure/integrator/backend"
	"github.com/vinodrajapaksha/ttms-api/infrastructure/migration"
	"github.com/vinodrajapaksha/ttms-api/infrastructure/repository"
	"github.com/vinodrajapaksha/ttms-api/internal/api"
	"github.com/vinodrajapaksha/ttms-api/internal/api/handler"
	"github.com/vinodrajapaksha/ttms-api/internal/config"
	"github.com/vinodrajapaksha/ttms-api/internal/scheduler"
	"github.com/vinodrajapaksha/ttms-api/internal/usecases/authenticating"
	"github.com/vinodrajapaksha/ttms-api/internal/usecases/calendaring"
	"github.com/vinodrajapaksha/ttms-api/internal/usecases/promoting"
	"github.com/vinodrajapaksha/ttms-api/internal/usecases/reporting"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("invalid log level %q, using info", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("log level set to %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := backend.NewClient(cfg)

	promotionService := promoting.NewService(cfg, client)
	reportService := reporting.NewService(cfg, client, exporter.NewPDFExporter())
	authenticator := authenticating.NewService(cfg)

	cronJobs := handler.CronJobServices{}

	// without the cache every read goes straight to the backend and no
	// database is needed
	if cfg.Database.CacheEnabled {
		pgConn := pgconn(ctx, cfg.Database)
		defer pgConn.Close()

		applied, err := migration.Apply(ctx, pgConn)
		if err != nil {
			logrus.WithError(err).Fatal("could not migrate the snapshot cache")
		}
		logrus.WithField("applied", applied).Info("snapshot cache schema ready")

		promotionRepo := repository.NewPromotionRepository(pgConn.DB)
		saleRecordRepo := repository.NewSaleRecordRepository(pgConn.DB)

		promotionService.WithCache(promotionRepo)
		reportService.WithCache(saleRecordRepo)

		promotionSync := scheduler.NewPromotionSyncService(promotionService, cfg)
		salesSync := scheduler.NewSalesSyncService(client, saleRecordRepo, cfg)

		if err := promotionSync.Start(ctx); err != nil {
			logrus.WithError(err).Error("could not start the promotion sync scheduler")
		}
		if err := salesSync.Start(ctx); err != nil {
			logrus.WithError(err).Error("could not start the sales sync scheduler")
		}

		cronJobs.PromotionSync = promotionSync
		cronJobs.SalesSync = salesSync
	}

	calendarService := calendaring.NewService(cfg, promotionService)

	server, err := api.New(cfg, api.Services{
		Promotions:    promotionService,
		Calendar:      calendarService,
		Reports:       reportService,
		Authenticator: authenticator,
		CronJobs:      cronJobs,
	})
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	_ = os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("could not connect to PostgreSQL")
	}

	logrus.Info("connected to PostgreSQL")
	return conn
}
