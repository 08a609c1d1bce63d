package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App           App           `mapstructure:",squash"`
	Server        Server        `mapstructure:",squash"`
	Database      Database      `mapstructure:",squash"`
	Backend       Backend       `mapstructure:",squash"`
	Auth          Auth          `mapstructure:",squash"`
	Cors          Cors          `mapstructure:",squash"`
	Report        Report        `mapstructure:",squash"`
	PromotionSync PromotionSync `mapstructure:",squash"`
	SalesSync     SalesSync     `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
	Env      string `mapstructure:"app_env"`
	Timezone string `mapstructure:"timezone"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN          string `mapstructure:"-"`
	Driver       string `mapstructure:"database_driver"`
	Password     string `mapstructure:"database_password"`
	URL          string `mapstructure:"database_url"`
	User         string `mapstructure:"database_user"`
	CacheEnabled bool   `mapstructure:"cache_enabled"`
}

// Backend is the REST service that owns promotions and sales.
type Backend struct {
	URL     string        `mapstructure:"backend_url"`
	Timeout time.Duration `mapstructure:"backend_timeout"`
	Token   string        `mapstructure:"backend_token"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

type Cors struct {
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Report struct {
	DailyWindowDays int `mapstructure:"report_daily_window_days"`
	TrendWeeks      int `mapstructure:"report_trend_weeks"`
	TrendMonths     int `mapstructure:"report_trend_months"`
}

type PromotionSync struct {
	CronSchedule string `mapstructure:"promotion_sync_cron"`
	Enabled      bool   `mapstructure:"promotion_sync_enabled"`
}

type SalesSync struct {
	CronSchedule      string `mapstructure:"sales_sync_cron"`
	LookbackDays      int    `mapstructure:"sales_sync_lookback_days"`
	MaxConcurrentJobs int    `mapstructure:"sales_sync_max_concurrent_jobs"`
	RetentionDays     int    `mapstructure:"sales_sync_retention_days"`
	Enabled           bool   `mapstructure:"sales_sync_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("LOG_LEVEL", "debug")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("TIMEZONE", "Asia/Colombo")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/ttms?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("CACHE_ENABLED", false)

	viper.SetDefault("BACKEND_URL", "http://localhost:8080/api")
	viper.SetDefault("BACKEND_TIMEOUT", "15s")
	viper.SetDefault("BACKEND_TOKEN", "")

	viper.SetDefault("AUTH_SECRET", "change_me")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")

	viper.SetDefault("REPORT_DAILY_WINDOW_DAYS", 30)
	viper.SetDefault("REPORT_TREND_WEEKS", 12)
	viper.SetDefault("REPORT_TREND_MONTHS", 12)

	viper.SetDefault("PROMOTION_SYNC_CRON", "*/15 * * * *") // every 15 minutes
	viper.SetDefault("PROMOTION_SYNC_ENABLED", false)

	viper.SetDefault("SALES_SYNC_CRON", "0 2 * * *") // daily at 02:00
	viper.SetDefault("SALES_SYNC_LOOKBACK_DAYS", 30)
	viper.SetDefault("SALES_SYNC_MAX_CONCURRENT_JOBS", 3)
	viper.SetDefault("SALES_SYNC_RETENTION_DAYS", 400)
	viper.SetDefault("SALES_SYNC_ENABLED", false)
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("using variables loaded by godotenv (viper could not read .env): ", err)
	} else {
		logrus.Info(".env read by viper")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Backend.URL = strings.TrimSuffix(config.Backend.URL, "/")
	config.Cors.AllowedOrigins = compact(config.Cors.AllowedOrigins)

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate rejects settings that would only fail later, at the first request
// or the first scheduled run.
func (c *Config) Validate() error {
	if c.Backend.URL == "" {
		return errors.New("BACKEND_URL is required")
	}
	if c.Backend.Timeout <= 0 {
		return errors.Errorf("BACKEND_TIMEOUT must be positive, got %s", c.Backend.Timeout)
	}
	if _, err := c.Location(); err != nil {
		return errors.Wrapf(err, "invalid TIMEZONE %q", c.App.Timezone)
	}
	if c.Report.DailyWindowDays < 1 || c.Report.TrendWeeks < 1 || c.Report.TrendMonths < 1 {
		return errors.New("report windows must be at least 1")
	}
	if c.PromotionSync.Enabled {
		if _, err := cron.ParseStandard(c.PromotionSync.CronSchedule); err != nil {
			return errors.Wrap(err, "invalid PROMOTION_SYNC_CRON")
		}
	}
	if c.SalesSync.Enabled {
		if _, err := cron.ParseStandard(c.SalesSync.CronSchedule); err != nil {
			return errors.Wrap(err, "invalid SALES_SYNC_CRON")
		}
		if c.SalesSync.LookbackDays < 1 || c.SalesSync.MaxConcurrentJobs < 1 {
			return errors.New("SALES_SYNC_LOOKBACK_DAYS and SALES_SYNC_MAX_CONCURRENT_JOBS must be at least 1")
		}
	}
	return nil
}

// Location is the zone used to decide what "today" is.
func (c *Config) Location() (*time.Location, error) {
	if c.App.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.App.Timezone)
}

func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("could not resolve working directory: ", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		logrus.Debug("trying .env at ", location)
		if err := godotenv.Load(location); err == nil {
			logrus.Info(".env loaded from ", location)
			return
		}
	}

	logrus.Warn("no .env file found, relying on the environment")
}
