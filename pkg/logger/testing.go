package logger

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"testing"
)

// TestLogger forwards log lines to testing.T and keeps them for assertions
type TestLogger struct {
	T      *testing.T
	fields map[string]interface{}
	sink   *testSink
}

type testSink struct {
	mu      sync.Mutex
	entries []string
}

// NewTestLogger creates a logger that writes through t.Logf
func NewTestLogger(t *testing.T) *TestLogger {
	return &TestLogger{T: t, sink: &testSink{}}
}

func (l *TestLogger) log(level, msg string) {
	line := fmt.Sprintf("[%s] %s%s", level, msg, l.formatFields())
	l.sink.mu.Lock()
	l.sink.entries = append(l.sink.entries, line)
	l.sink.mu.Unlock()
	if l.T != nil {
		l.T.Log(line)
	}
}

func (l *TestLogger) formatFields() string {
	if len(l.fields) == 0 {
		return ""
	}
	keys := make([]string, 0, len(l.fields))
	for key := range l.fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, key := range keys {
		parts[i] = fmt.Sprintf("%s=%v", key, l.fields[key])
	}
	return " " + strings.Join(parts, " ")
}

func (l *TestLogger) Debug(msg string) { l.log("DEBUG", msg) }
func (l *TestLogger) Info(msg string)  { l.log("INFO", msg) }
func (l *TestLogger) Warn(msg string)  { l.log("WARN", msg) }
func (l *TestLogger) Error(msg string) { l.log("ERROR", msg) }
func (l *TestLogger) Fatal(msg string) { l.log("FATAL", msg) }

func (l *TestLogger) WithField(key string, value interface{}) Logger {
	return l.WithFields(map[string]interface{}{key: value})
}

func (l *TestLogger) WithFields(fields map[string]interface{}) Logger {
	merged := make(map[string]interface{}, len(l.fields)+len(fields))
	for key, value := range l.fields {
		merged[key] = value
	}
	for key, value := range fields {
		merged[key] = value
	}
	return &TestLogger{T: l.T, fields: merged, sink: l.sink}
}

// Entries returns every line logged through this logger and its derived loggers
func (l *TestLogger) Entries() []string {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	return append([]string(nil), l.sink.entries...)
}

// Contains reports whether any logged line contains substr
func (l *TestLogger) Contains(substr string) bool {
	for _, entry := range l.Entries() {
		if strings.Contains(entry, substr) {
			return true
		}
	}
	return false
}
