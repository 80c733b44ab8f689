package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/iwvelando/rental-forecast/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestInitializeLoggerLevels(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.LoggingConfig
		override string
		expected zapcore.Level
	}{
		{"default", config.LoggingConfig{}, "", zapcore.InfoLevel},
		{"config level", config.LoggingConfig{Level: "debug", Format: "console"}, "", zapcore.DebugLevel},
		{"override wins", config.LoggingConfig{Level: "debug"}, "error", zapcore.ErrorLevel},
		{"warning alias", config.LoggingConfig{Level: "WARNING"}, "", zapcore.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := initializeLogger(tt.cfg, tt.override)
			require.NoError(t, err)
			assert.True(t, logger.Core().Enabled(tt.expected))
			assert.False(t, logger.Core().Enabled(tt.expected-1))
		})
	}
}

func TestInitializeLoggerErrors(t *testing.T) {
	_, err := initializeLogger(config.LoggingConfig{Level: "loud"}, "")
	assert.Error(t, err)

	_, err = initializeLogger(config.LoggingConfig{Format: "xml"}, "")
	assert.Error(t, err)
}

func TestInitializeLoggerOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "rental.log")

	logger, err := initializeLogger(config.LoggingConfig{OutputFile: path}, "")
	require.NoError(t, err)
	logger.Info("hello")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
}
