package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host string
	Port int
}

type DBConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime string
}

type AuthConfig struct {
	AccessSecret string
}

type MaintenanceConfig struct {
	UpcomingWindowDays int    // default dashboard window
	NotifyWindowDays   int    // daily check lookahead
	DailyCheckSpec     string // cron spec for the maintenance check
	WeeklyReportSpec   string // cron spec for the weekly report
}

type Config struct {
	Environment string
	HTTP        HTTPConfig
	DB          DBConfig
	Auth        AuthConfig
	Maintenance MaintenanceConfig
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AddConfigPath("./internal/config")
	v.AutomaticEnv()

	_ = v.ReadInConfig()

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: v.GetInt("HTTP_PORT"),
		},
		DB: DBConfig{
			DSN:             v.GetString("DB_DSN"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetString("DB_CONN_MAX_LIFETIME"),
		},
		Auth: AuthConfig{
			AccessSecret: v.GetString("JWT_ACCESS_SECRET"),
		},
		Maintenance: MaintenanceConfig{
			UpcomingWindowDays: v.GetInt("PMS_UPCOMING_WINDOW_DAYS"),
			NotifyWindowDays:   v.GetInt("PMS_NOTIFY_WINDOW_DAYS"),
			DailyCheckSpec:     v.GetString("PMS_DAILY_CHECK_SPEC"),
			WeeklyReportSpec:   v.GetString("PMS_WEEKLY_REPORT_SPEC"),
		},
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "0.0.0.0"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 7090
	}
	if cfg.Maintenance.UpcomingWindowDays == 0 {
		cfg.Maintenance.UpcomingWindowDays = 30
	}
	if cfg.Maintenance.NotifyWindowDays == 0 {
		cfg.Maintenance.NotifyWindowDays = 7
	}
	if cfg.Maintenance.DailyCheckSpec == "" {
		cfg.Maintenance.DailyCheckSpec = "0 9 * * *"
	}
	if cfg.Maintenance.WeeklyReportSpec == "" {
		cfg.Maintenance.WeeklyReportSpec = "0 8 * * 1"
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.DB.DSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}
	if cfg.Auth.AccessSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if cfg.Maintenance.UpcomingWindowDays < 0 {
		return fmt.Errorf("PMS_UPCOMING_WINDOW_DAYS must not be negative")
	}
	return nil
}
