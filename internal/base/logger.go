// Package base
package base

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/codebrew-airways/skybridge/internal/interfaces/global"
	"github.com/fatih/color"
)

var levelColors = map[slog.Level]*color.Color{
	slog.LevelDebug: color.New(color.FgCyan),
	slog.LevelInfo:  color.New(color.FgGreen),
	slog.LevelWarn:  color.New(color.FgYellow),
	slog.LevelError: color.New(color.FgRed),
}

type consoleHandler struct {
	level *slog.LevelVar
	attrs []slog.Attr
	mu    *sync.Mutex
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	label := record.Level.String()
	if c, ok := levelColors[record.Level]; ok {
		label = c.Sprint(label)
	}

	var sb strings.Builder
	sb.WriteString(record.Time.Format(time.DateTime))
	sb.WriteString(" [")
	sb.WriteString(label)
	sb.WriteString("] ")
	sb.WriteString(record.Message)

	appendAttr := func(attr slog.Attr) bool {
		sb.WriteString(fmt.Sprintf(" %s=%v", attr.Key, attr.Value))
		return true
	}
	for _, attr := range h.attrs {
		appendAttr(attr)
	}
	record.Attrs(appendAttr)
	sb.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := os.Stdout.WriteString(sb.String())
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &consoleHandler{level: h.level, attrs: merged, mu: h.mu}
}

func (h *consoleHandler) WithGroup(_ string) slog.Handler { return h }

type Logger struct {
	level   *slog.LevelVar
	slogger *slog.Logger
}

func NewLogger() *Logger {
	level := &slog.LevelVar{}
	handler := &consoleHandler{level: level, mu: &sync.Mutex{}}
	slogger := slog.New(handler)
	slog.SetDefault(slogger)
	return &Logger{level: level, slogger: slogger}
}

func (l *Logger) Init(debug bool) {
	if debug {
		l.level.Set(slog.LevelDebug)
	} else {
		l.level.Set(slog.LevelInfo)
	}
}

func (l *Logger) ShutdownCallback() global.Callable {
	return global.CallableFunc(func(_ context.Context) error { return nil })
}

func format(msg string, v []interface{}) string {
	if len(v) == 0 {
		return msg
	}
	return msg + " " + fmt.Sprint(v...)
}

func (l *Logger) Debug(msg string, v ...interface{}) { l.slogger.Debug(format(msg, v)) }

func (l *Logger) DebugF(msg string, v ...interface{}) { l.slogger.Debug(fmt.Sprintf(msg, v...)) }

func (l *Logger) Info(msg string, v ...interface{}) { l.slogger.Info(format(msg, v)) }

func (l *Logger) InfoF(msg string, v ...interface{}) { l.slogger.Info(fmt.Sprintf(msg, v...)) }

func (l *Logger) Warn(msg string, v ...interface{}) { l.slogger.Warn(format(msg, v)) }

func (l *Logger) WarnF(msg string, v ...interface{}) { l.slogger.Warn(fmt.Sprintf(msg, v...)) }

func (l *Logger) Error(msg string, v ...interface{}) { l.slogger.Error(format(msg, v)) }

func (l *Logger) ErrorF(msg string, v ...interface{}) { l.slogger.Error(fmt.Sprintf(msg, v...)) }

func (l *Logger) Fatal(msg string, v ...interface{}) {
	l.slogger.Error(format(msg, v))
	os.Exit(1)
}

func (l *Logger) FatalF(msg string, v ...interface{}) {
	l.slogger.Error(fmt.Sprintf(msg, v...))
	os.Exit(1)
}
