package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func withGlobalLevel(t *testing.T, level zerolog.Level) {
	t.Helper()
	previous := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(level)
	t.Cleanup(func() { zerolog.SetGlobalLevel(previous) })
}

func TestNewLogger(t *testing.T) {
	logger := NewLogger()
	assert.NotNil(t, logger)
	assert.IsType(t, &zerologLogger{}, logger)
}

func TestLevels(t *testing.T) {
	withGlobalLevel(t, zerolog.DebugLevel)

	tests := []struct {
		name  string
		log   func(Logger)
		level string
		msg   string
	}{
		{"debug", func(l Logger) { l.Debug("debug message") }, "debug", "debug message"},
		{"info", func(l Logger) { l.Info("info message") }, "info", "info message"},
		{"warn", func(l Logger) { l.Warn("warn message") }, "warn", "warn message"},
		{"error", func(l Logger) { l.Error("error message") }, "error", "error message"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(NewLoggerWithWriter(&buf))
			assert.Contains(t, buf.String(), tt.msg)
			assert.Contains(t, buf.String(), `"level":"`+tt.level+`"`)
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	withGlobalLevel(t, zerolog.ErrorLevel)

	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf)
	logger.Info("info should be filtered")
	logger.Error("error should be logged")

	assert.NotContains(t, buf.String(), "info should be filtered")
	assert.Contains(t, buf.String(), "error should be logged")
}

func TestWithField(t *testing.T) {
	withGlobalLevel(t, zerolog.InfoLevel)

	var buf bytes.Buffer
	base := NewLoggerWithWriter(&buf)
	base.WithField("session_id", "s-1").WithField("block_id", "b-1").Info("block added")

	assert.Contains(t, buf.String(), `"session_id":"s-1"`)
	assert.Contains(t, buf.String(), `"block_id":"b-1"`)

	buf.Reset()
	base.Info("plain")
	assert.NotContains(t, buf.String(), "session_id")
}

func TestWithFields(t *testing.T) {
	withGlobalLevel(t, zerolog.InfoLevel)

	var buf bytes.Buffer
	base := NewLoggerWithWriter(&buf)
	base.WithFields(map[string]interface{}{
		"template_id": "tpl-1",
		"blocks":      3,
		"parsed":      true,
	}).Info("template opened")

	assert.Contains(t, buf.String(), `"template_id":"tpl-1"`)
	assert.Contains(t, buf.String(), `"blocks":3`)
	assert.Contains(t, buf.String(), `"parsed":true`)

	buf.Reset()
	base.Info("plain")
	assert.NotContains(t, buf.String(), "template_id")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"panic", zerolog.PanicLevel},
		{"disabled", zerolog.Disabled},
		{"off", zerolog.Disabled},
		{"DEBUG", zerolog.DebugLevel},
		{"unknown", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.level))
		})
	}
}

func TestNewLoggerWithLevel(t *testing.T) {
	withGlobalLevel(t, zerolog.InfoLevel)

	logger := NewLoggerWithLevel("warn")
	assert.NotNil(t, logger)
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
}
