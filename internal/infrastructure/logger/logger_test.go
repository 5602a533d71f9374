package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
	}{
		{name: "nil config falls back to defaults", cfg: nil},
		{name: "empty config falls back to defaults", cfg: &Config{}},
		{
			name: "console format",
			cfg:  &Config{Level: "debug", Format: "console", Output: "stdout"},
		},
		{
			name: "json to stderr",
			cfg:  &Config{Level: "info", Format: "json", Output: "stderr", TimeFormat: "2006-01-02T15:04:05Z07:00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := New(tt.cfg)
			require.NoError(t, err)
			assert.NotNil(t, log)
		})
	}
}

func TestNew_FileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "service.log")

	log, err := New(&Config{Level: "info", Format: "json", Output: path})
	require.NoError(t, err)

	log.Info("service starting", zap.String("component", "test"))
	require.NoError(t, Sync(log))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "service starting")
	assert.Contains(t, string(data), `"component":"test"`)
}

func TestNew_UnwritableFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "nested", "service.log")

	log, err := New(&Config{Output: path})

	assert.Error(t, err)
	assert.Nil(t, log)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"DEBUG", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"unknown", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLevel(tt.level))
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "filtered.log")

	log, err := New(&Config{Level: "warn", Format: "json", Output: path})
	require.NoError(t, err)

	log.Info("should be filtered")
	log.Warn("should be written")
	require.NoError(t, Sync(log))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(data), "should be filtered"))
	assert.True(t, strings.Contains(string(data), "should be written"))
}

func TestBuildEncoder(t *testing.T) {
	assert.NotNil(t, buildEncoder(&Config{Format: "console"}))
	assert.NotNil(t, buildEncoder(&Config{Format: "json"}))
	assert.NotNil(t, buildEncoder(&Config{}))
}

func TestOpenSink_Standard(t *testing.T) {
	for _, output := range []string{"", "stdout", "stderr", "STDOUT"} {
		sink, err := openSink(output)
		require.NoError(t, err)
		assert.NotNil(t, sink)
	}
}
