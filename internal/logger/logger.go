// Package logger is the leveled, prefixed line logger shared by the opord
// packages. Output lines look like
//
//	2020-12-18 06:00:00.000 [WARN] [opord:math.txt] skipping line 2: ...
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const timeLayout = "2006-01-02 15:04:05.000"

// Level represents a logging level
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	// LevelNone disables all logging
	LevelNone
)

var levelNames = [...]string{
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
	LevelNone:  "NONE",
}

func (l Level) String() string {
	if l < 0 || int(l) >= len(levelNames) {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// ParseLevel maps a level name, in any case, to a Level. "warning" is
// accepted for LevelWarn and unknown names map to LevelInfo.
func ParseLevel(s string) Level {
	name := strings.ToUpper(strings.TrimSpace(s))
	if name == "WARNING" {
		return LevelWarn
	}
	for l, n := range levelNames {
		if n == name {
			return Level(l)
		}
	}
	return LevelInfo
}

// Logger writes leveled lines. It is safe for concurrent use since the
// underlying log.Logger serializes writes.
type Logger struct {
	out    *log.Logger
	level  Level
	prefix string
	closer io.Closer
	now    func() time.Time
}

// New creates a logger appending to logPath, or writing to stderr when
// logPath is empty. Missing parent directories are created.
func New(level Level, logPath string, prefix string) (*Logger, error) {
	if level >= LevelNone {
		return Discard(), nil
	}
	if logPath == "" {
		return NewWriter(level, os.Stderr, prefix), nil
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	l := NewWriter(level, file, prefix)
	l.closer = file
	return l, nil
}

// NewWriter creates a logger writing to w.
func NewWriter(level Level, w io.Writer, prefix string) *Logger {
	return &Logger{
		out:    log.New(w, "", 0),
		level:  level,
		prefix: prefix,
		now:    time.Now,
	}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return NewWriter(LevelNone, io.Discard, "")
}

// WithPrefix returns a logger sharing l's output whose prefix is l's prefix
// joined to prefix with a colon. The returned logger does not own the output
// and Close on it is a no-op.
func (l *Logger) WithPrefix(prefix string) *Logger {
	if l.prefix != "" {
		prefix = l.prefix + ":" + prefix
	}
	return &Logger{
		out:    l.out,
		level:  l.level,
		prefix: prefix,
		now:    l.now,
	}
}

func (l *Logger) logf(level Level, format string, args ...interface{}) {
	if l.level >= LevelNone || level < l.level {
		return
	}

	var sb strings.Builder
	sb.WriteString(l.now().Format(timeLayout))
	fmt.Fprintf(&sb, " [%s] ", level)
	if l.prefix != "" {
		fmt.Fprintf(&sb, "[%s] ", l.prefix)
	}
	fmt.Fprintf(&sb, format, args...)
	l.out.Print(sb.String())
}

func (l *Logger) Debug(format string, args ...interface{}) {
	l.logf(LevelDebug, format, args...)
}

func (l *Logger) Info(format string, args ...interface{}) {
	l.logf(LevelInfo, format, args...)
}

func (l *Logger) Warn(format string, args ...interface{}) {
	l.logf(LevelWarn, format, args...)
}

// Close closes the log file opened by New, if any.
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	err := l.closer.Close()
	l.closer = nil
	return err
}
