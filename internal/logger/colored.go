package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// ColoredLogger renders log messages using colours when supported by the output writer.
type ColoredLogger struct {
	mu        sync.Mutex
	level     Level
	output    io.Writer
	formatter Formatter
	fields    []Field
}

// Option configures a ColoredLogger during construction.
type Option func(*ColoredLogger)

// WithLevel sets the minimum Level that will be emitted by the logger.
func WithLevel(level Level) Option {
	return func(l *ColoredLogger) {
		l.level = level
	}
}

// WithOutput redirects log output to the provided writer.
func WithOutput(w io.Writer) Option {
	return func(l *ColoredLogger) {
		l.output = w
		if tf, ok := l.formatter.(*TextFormatter); ok {
			tf.Output = w
		}
	}
}

// WithFormatter overrides the formatter used to render log entries.
func WithFormatter(formatter Formatter) Option {
	return func(l *ColoredLogger) {
		l.formatter = formatter
	}
}

// NewColoredLogger returns a logger configured for colourful terminal output when possible.
func NewColoredLogger(options ...Option) *ColoredLogger {
	log := &ColoredLogger{
		level:     LevelInfo,
		output:    os.Stdout,
		formatter: &TextFormatter{Output: os.Stdout},
	}

	for _, opt := range options {
		if opt != nil {
			opt(log)
		}
	}

	if log.output == nil {
		log.output = os.Stdout
	}
	if log.formatter == nil {
		log.formatter = &TextFormatter{Output: log.output}
	}

	return log
}

// Debug emits a debug level log entry.
func (l *ColoredLogger) Debug(format string, args ...interface{}) {
	l.log(LevelDebug, format, args...)
}

// Info emits an info level log entry.
func (l *ColoredLogger) Info(format string, args ...interface{}) {
	l.log(LevelInfo, format, args...)
}

// Warn emits a warn level log entry.
func (l *ColoredLogger) Warn(format string, args ...interface{}) {
	l.log(LevelWarn, format, args...)
}

// Error emits an error level log entry.
func (l *ColoredLogger) Error(format string, args ...interface{}) {
	l.log(LevelError, format, args...)
}

// Success logs a completed operation with a consistent prefix.
func (l *ColoredLogger) Success(format string, args ...interface{}) {
	l.log(LevelInfo, "✓ "+format, args...)
}

// Progress announces the start of a long-running operation.
func (l *ColoredLogger) Progress(operation string) {
	l.log(LevelInfo, "▶ %s ...", operation)
}

// ProgressDone announces the completion of a long-running operation.
func (l *ColoredLogger) ProgressDone(operation string) {
	l.log(LevelInfo, "✓ %s", operation)
}

// With derives a new logger enriched with the provided fields.
func (l *ColoredLogger) With(fields ...Field) Logger {
	l.mu.Lock()
	defer l.mu.Unlock()

	child := &ColoredLogger{
		level:     l.level,
		output:    l.output,
		formatter: l.formatter,
		fields:    append(append([]Field{}, l.fields...), fields...),
	}
	return child
}

// SetLevel adjusts the minimum log level emitted.
func (l *ColoredLogger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// GetLevel returns the current minimum log level.
func (l *ColoredLogger) GetLevel() Level {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

func (l *ColoredLogger) log(level Level, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level {
		return
	}

	entry := &Entry{
		Time:    time.Now(),
		Level:   level,
		Message: fmt.Sprintf(format, args...),
		Fields:  append([]Field{}, l.fields...),
	}

	bytes, err := l.formatter.Format(entry)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to format log entry: %v\n", err)
		return
	}

	if _, err := l.output.Write(bytes); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write log entry: %v\n", err)
	}
}
