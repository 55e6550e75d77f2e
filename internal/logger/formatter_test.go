package logger

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextFormatterRendersEntry(t *testing.T) {
	f := &TextFormatter{DisableColors: true}
	entry := &Entry{
		Time:    time.Date(2026, 8, 27, 10, 30, 0, 0, time.UTC),
		Level:   LevelInfo,
		Message: "checkout updated",
		Fields:  []Field{String("dir", "/opt/x"), Int("attempt", 1)},
	}

	out, err := f.Format(entry)
	require.NoError(t, err)

	line := string(out)
	assert.Equal(t, "10:30:00 [INFO] checkout updated dir=/opt/x attempt=1\n", line)
}

func TestTextFormatterErrorLevel(t *testing.T) {
	f := &TextFormatter{DisableColors: true}
	entry := &Entry{
		Time:    time.Now(),
		Level:   LevelError,
		Message: "apt-get update failed",
	}

	out, err := f.Format(entry)
	require.NoError(t, err)
	assert.Contains(t, string(out), "[ERROR] apt-get update failed")
}

func TestColoredLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewColoredLogger(
		WithOutput(&buf),
		WithLevel(LevelWarn),
		WithFormatter(&TextFormatter{DisableColors: true}),
	)

	log.Debug("hidden")
	log.Info("hidden too")
	log.Warn("visible")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "visible")
}

func TestColoredLoggerWithFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewColoredLogger(
		WithOutput(&buf),
		WithFormatter(&TextFormatter{DisableColors: true}),
	)

	child := log.With(String("unit", "setup_gui.service"))
	child.Info("enabled")

	assert.Contains(t, buf.String(), "unit=setup_gui.service")
}

func TestFieldHelpers(t *testing.T) {
	assert.Equal(t, Field{Key: "k", Value: "v"}, String("k", "v"))
	assert.Equal(t, Field{Key: "n", Value: 3}, Int("n", 3))
	assert.Nil(t, Error(nil).Value)
}
