package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

type implLogger struct {
	logger *logrus.Logger
}

// New creates a new Logger writing to stderr.
// format is "text", "json" or "" (text on a terminal, json otherwise).
func New(level, format string) Logger {
	return NewWithWriter(level, format, os.Stderr)
}

// NewWithWriter creates a Logger writing to w.
func NewWithWriter(level, format string, w io.Writer) Logger {
	base := logrus.New()
	base.SetOutput(w)
	base.SetLevel(parseLevel(level))

	if useJSON(format, w) {
		base.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
		})
	} else {
		base.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339,
		})
	}

	return &implLogger{logger: base}
}

// Discard returns a Logger that drops everything. Useful in tests.
func Discard() Logger {
	return NewWithWriter("error", "text", io.Discard)
}

func parseLevel(level string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return logrus.DebugLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

func useJSON(format string, w io.Writer) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return true
	case "text":
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())
}

func (l *implLogger) shouldLog(level string) bool {
	return l.logger.IsLevelEnabled(parseLevel(level))
}

func (l *implLogger) entry(ctx context.Context) *logrus.Entry {
	return l.logger.WithFields(fieldsFromContext(ctx))
}

func (l *implLogger) Debug(ctx context.Context, msg string, args ...interface{}) {
	l.entry(ctx).Debugf(msg, args...)
}

func (l *implLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	l.entry(ctx).Infof(msg, args...)
}

func (l *implLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	l.entry(ctx).Warnf(msg, args...)
}

func (l *implLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	l.entry(ctx).Errorf(msg, args...)
}
