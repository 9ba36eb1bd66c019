package logger_test

import (
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	logpkg "github.com/maxviazov/federation-analytics/internal/logger"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		config      *logpkg.LoggerConfig
		expectError bool
		wantLevel   zerolog.Level
	}{
		{
			name: "production json",
			config: &logpkg.LoggerConfig{
				ServiceName: "test-service",
				Env:         "prod",
				Level:       "info",
				Format:      "json",
				TimeFormat:  time.RFC3339,
				Fields:      map[string]interface{}{"key": "value"},
			},
			wantLevel: zerolog.InfoLevel,
		},
		{
			name:        "invalid env",
			config:      &logpkg.LoggerConfig{ServiceName: "bad-service", Env: "wrong-env", Level: "debug"},
			expectError: true,
		},
		{
			name:        "invalid level",
			config:      &logpkg.LoggerConfig{Env: "prod", Level: "invalid-level"},
			expectError: true,
		},
		{
			name:      "staging warn with stacktrace",
			config:    &logpkg.LoggerConfig{Env: "staging", Level: "warn", Stacktrace: true},
			wantLevel: zerolog.WarnLevel,
		},
		{
			name:      "defaults",
			config:    &logpkg.LoggerConfig{},
			wantLevel: zerolog.InfoLevel,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := logpkg.New(test.config)
			if test.expectError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, test.wantLevel, zerolog.GlobalLevel())
		})
	}

	t.Run("debug log file creation", func(t *testing.T) {
		origWD, wdErr := os.Getwd()
		if wdErr != nil {
			t.Fatal(wdErr)
		}
		if chErr := os.Chdir(t.TempDir()); chErr != nil {
			t.Fatal(chErr)
		}
		t.Cleanup(func() { _ = os.Chdir(origWD) })
		_, err := logpkg.New(&logpkg.LoggerConfig{Env: "dev", Level: "debug"})
		assert.NoError(t, err)

		_, statErr := os.Stat("logs/debug.log")
		assert.NoError(t, statErr)
	})
}
