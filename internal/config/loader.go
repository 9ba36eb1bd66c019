package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// envFile is read before the environment is consulted; real env always wins.
const envFile = ".env"

// Load reads path (YAML) and overlays APP_* environment variables, e.g.
// APP_POSTGRES_PASSWORD overrides postgres.password.
func Load(path string) (*Config, error) {
	if envMap, err := godotenv.Read(envFile); err == nil {
		for k, val := range envMap {
			if _, exists := os.LookupEnv(k); !exists {
				_ = os.Setenv(k, val)
			}
		}
	}

	v := viper.New()
	v.SetConfigFile(path)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()

	setDefaults(v)
	bindEnvs(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config file not found: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := validate(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "federation-analytics")
	v.SetDefault("app.version", "0.1.0")
	v.SetDefault("app.env", "prod")
	v.SetDefault("app.port", 8080)

	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.max_conns", 10)
	v.SetDefault("postgres.min_conns", 1)
	v.SetDefault("postgres.max_conn_lifetime", 3600)
	v.SetDefault("postgres.max_conn_idle_time", 300)
	v.SetDefault("postgres.health_check_period", 30)

	v.SetDefault("http.read_timeout", 10*time.Second)
	v.SetDefault("http.write_timeout", 30*time.Second)
	v.SetDefault("http.shutdown_timeout", 5*time.Second)

	v.SetDefault("analytics.active_window_days", 30)
	v.SetDefault("analytics.top_categories", 10)
	v.SetDefault("analytics.report_timeout", 20*time.Second)
}

// bindEnvs registers keys that may be absent from the YAML file so
// AutomaticEnv can still see them during Unmarshal.
func bindEnvs(v *viper.Viper) {
	keys := []string{
		"postgres.user",
		"postgres.password",
		"postgres.db",
		"postgres.host",
		"postgres.port",
		"app.port",
		"app.env",
		"logger.level",
	}
	for _, k := range keys {
		_ = v.BindEnv(k)
	}
}

func validate(c *Config) error {
	v := validator.New()
	if err := v.Struct(c.App); err != nil {
		return fmt.Errorf("app config validation error: %w", err)
	}
	if err := v.Struct(c.Analytics); err != nil {
		return fmt.Errorf("analytics config validation error: %w", err)
	}
	if err := v.Struct(c.Postgres); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			missing := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				missing = append(missing, strings.ToLower(fe.Field()))
			}
			return fmt.Errorf("postgres config invalid (set APP_POSTGRES_* env): %s: %w", strings.Join(missing, ", "), err)
		}
		return fmt.Errorf("postgres config validation error: %w", err)
	}
	return nil
}
