package logger

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Formatter converts log entries to their textual representation.
type Formatter interface {
	Format(entry *Entry) ([]byte, error)
}

// Entry represents a single log record.
type Entry struct {
	Time    time.Time
	Level   Level
	Message string
	Fields  []Field
}

// TextFormatter renders log entries as single coloured lines.
type TextFormatter struct {
	TimestampFormat string
	DisableColors   bool
	ForceColors     bool
	Output          io.Writer
}

// Format converts the Entry into a textual representation.
func (f *TextFormatter) Format(entry *Entry) ([]byte, error) {
	timestampFormat := f.TimestampFormat
	if timestampFormat == "" {
		timestampFormat = "15:04:05"
	}

	levelText := entry.Level.String()
	if f.shouldColorize() {
		levelText = colorize(levelText, entry.Level)
	}

	var buf bytes.Buffer
	buf.WriteString(entry.Time.Format(timestampFormat))
	buf.WriteString(" [")
	buf.WriteString(levelText)
	buf.WriteString("] ")
	buf.WriteString(entry.Message)

	for _, field := range entry.Fields {
		fmt.Fprintf(&buf, " %s=%v", field.Key, field.Value)
	}

	buf.WriteString("\n")
	return buf.Bytes(), nil
}

func (f *TextFormatter) shouldColorize() bool {
	if f == nil {
		return false
	}
	if f.ForceColors {
		return true
	}
	if f.DisableColors || os.Getenv("NO_COLOR") != "" {
		return false
	}

	writer := f.Output
	if writer == nil {
		writer = os.Stdout
	}
	return isTerminal(writer)
}

func colorize(text string, level Level) string {
	var c *color.Color
	switch level {
	case LevelDebug:
		c = color.New(color.FgCyan)
	case LevelInfo:
		c = color.New(color.FgBlue)
	case LevelWarn:
		c = color.New(color.FgYellow)
	case LevelError:
		c = color.New(color.FgRed)
	default:
		return text
	}
	return c.Sprint(text)
}

func isTerminal(w io.Writer) bool {
	if file, ok := w.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	return false
}
