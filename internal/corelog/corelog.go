// Package corelog provides the minimal structured logger the driver and
// its composition root use: leveled output, a static prefix, and
// immutable structured fields built up via WithField/WithComponent.
package corelog

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// Level is the severity of a log message.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel parses a case-insensitive level name, defaulting to Info.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger is a leveled, prefix-and-field logger safe for concurrent use.
type Logger struct {
	mu       sync.Mutex
	level    Level
	output   io.Writer
	prefix   string
	fields   map[string]any
	disabled bool
}

// Config configures a Logger.
type Config struct {
	Level  Level
	Output io.Writer
	Prefix string
}

// DefaultConfig returns the default logger configuration: Info level,
// stderr output, prefix "bufcore".
func DefaultConfig() Config {
	return Config{Level: LevelInfo, Output: os.Stderr, Prefix: "bufcore"}
}

// New builds a Logger from cfg.
func New(cfg Config) *Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	return &Logger{level: cfg.Level, output: cfg.Output, prefix: cfg.Prefix, fields: make(map[string]any)}
}

// WithField returns a new Logger with key=value added to its structured
// fields, leaving the receiver unchanged.
func (l *Logger) WithField(key string, value any) *Logger {
	nf := make(map[string]any, len(l.fields)+1)
	for k, v := range l.fields {
		nf[k] = v
	}
	nf[key] = value
	return &Logger{level: l.level, output: l.output, prefix: l.prefix, fields: nf, disabled: l.disabled}
}

// WithComponent is shorthand for WithField("component", component).
func (l *Logger) WithComponent(component string) *Logger {
	return l.WithField("component", component)
}

// SetLevel changes the minimum level this Logger emits. Safe to call
// while other goroutines are logging through it; used by the
// composition root to apply a reloaded config's log level. It affects
// only the receiver and loggers derived from it afterwards: a logger
// already returned by WithField/WithComponent keeps the level it was
// created with.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

func (l *Logger) Debug(msg string, args ...any) { l.log(LevelDebug, msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.log(LevelInfo, msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.log(LevelWarn, msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.log(LevelError, msg, args...) }

func (l *Logger) log(level Level, msg string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.disabled || level < l.level {
		return
	}

	timestamp := time.Now().Format("2006-01-02T15:04:05.000")
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}

	line := fmt.Sprintf("%s [%s] %s: %s", timestamp, level.String(), l.prefix, msg)
	if len(l.fields) > 0 {
		keys := make([]string, 0, len(l.fields))
		for k := range l.fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		line += " {"
		for i, k := range keys {
			if i > 0 {
				line += ", "
			}
			line += fmt.Sprintf("%s=%v", k, l.fields[k])
		}
		line += "}"
	}
	line += "\n"

	_, _ = l.output.Write([]byte(line))
}

// Null discards everything; code that doesn't care about logging (most
// tests) passes this instead of nil.
var Null = &Logger{disabled: true}
