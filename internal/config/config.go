package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/maxviazov/federation-analytics/internal/logger"
)

type Config struct {
	App       AppConfig           `mapstructure:"app"`
	Logger    logger.LoggerConfig `mapstructure:"logger"`
	Postgres  PostgresConfig      `mapstructure:"postgres"`
	HTTP      HTTPConfig          `mapstructure:"http"`
	Analytics AnalyticsConfig     `mapstructure:"analytics"`
}

type AppConfig struct {
	Name    string `mapstructure:"name" validate:"required"`
	Version string `mapstructure:"version"`
	Env     string `mapstructure:"env"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
}

// PostgresConfig describes the read-only connection to the portal database.
// Pool timings are in seconds.
type PostgresConfig struct {
	Host              string `mapstructure:"host" validate:"required"`
	Port              int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	User              string `mapstructure:"user" validate:"required"`
	Password          string `mapstructure:"password" validate:"required"`
	DBName            string `mapstructure:"db" validate:"required"`
	SSLMode           string `mapstructure:"sslmode" validate:"omitempty,oneof=disable allow prefer require verify-ca verify-full"`
	MaxConns          int32  `mapstructure:"max_conns" validate:"gte=0"`
	MinConns          int32  `mapstructure:"min_conns" validate:"gte=0"`
	MaxConnLifetime   int    `mapstructure:"max_conn_lifetime"`
	MaxConnIdleTime   int    `mapstructure:"max_conn_idle_time"`
	HealthCheckPeriod int    `mapstructure:"health_check_period"`
}

// DSN builds a postgres:// URL with credentials escaped.
func (p PostgresConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		Host:   fmt.Sprintf("%s:%d", p.Host, p.Port),
		Path:   p.DBName,
	}
	if p.User != "" || p.Password != "" {
		u.User = url.UserPassword(p.User, p.Password)
	}
	q := u.Query()
	if p.SSLMode != "" {
		q.Set("sslmode", p.SSLMode)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

type HTTPConfig struct {
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// AnalyticsConfig tunes the reporting engine.
type AnalyticsConfig struct {
	ActiveWindowDays int           `mapstructure:"active_window_days" validate:"gte=1"`
	TopCategories    int           `mapstructure:"top_categories" validate:"gte=1"`
	ReportTimeout    time.Duration `mapstructure:"report_timeout"`
}

// ActiveWindow is ActiveWindowDays as a duration.
func (a AnalyticsConfig) ActiveWindow() time.Duration {
	return time.Duration(a.ActiveWindowDays) * 24 * time.Hour
}

// Addr is the HTTP listen address.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.App.Port)
}
