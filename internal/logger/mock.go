package logger

import (
	"fmt"
	"strings"
	"sync"
)

// MockLogger records log entries in memory for assertions in tests.
type MockLogger struct {
	mu      sync.Mutex
	entries []MockEntry
	level   Level
}

// MockEntry stores a single log emission.
type MockEntry struct {
	Level   Level
	Message string
}

// NewMockLogger creates a MockLogger with the lowest log level.
func NewMockLogger() *MockLogger {
	return &MockLogger{level: LevelDebug}
}

func (m *MockLogger) record(level Level, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, MockEntry{
		Level:   level,
		Message: fmt.Sprintf(format, args...),
	})
}

func (m *MockLogger) Debug(format string, args ...interface{}) {
	m.record(LevelDebug, format, args...)
}

func (m *MockLogger) Info(format string, args ...interface{}) {
	m.record(LevelInfo, format, args...)
}

func (m *MockLogger) Warn(format string, args ...interface{}) {
	m.record(LevelWarn, format, args...)
}

func (m *MockLogger) Error(format string, args ...interface{}) {
	m.record(LevelError, format, args...)
}

func (m *MockLogger) Success(format string, args ...interface{}) {
	m.record(LevelInfo, "✓ "+format, args...)
}

func (m *MockLogger) Progress(operation string) {
	m.record(LevelInfo, "▶ %s ...", operation)
}

func (m *MockLogger) ProgressDone(operation string) {
	m.record(LevelInfo, "✓ %s", operation)
}

func (m *MockLogger) With(fields ...Field) Logger {
	return m
}

func (m *MockLogger) SetLevel(level Level) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.level = level
}

func (m *MockLogger) GetLevel() Level {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.level
}

// Entries returns a copy of the recorded entries.
func (m *MockLogger) Entries() []MockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]MockEntry{}, m.entries...)
}

// Contains reports whether any recorded message contains the substring.
func (m *MockLogger) Contains(substring string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, entry := range m.entries {
		if strings.Contains(entry.Message, substring) {
			return true
		}
	}
	return false
}
