// Package logging writes structured logfmt lines. The TUI owns the terminal,
// so its logger points at a file; CLI commands log to stderr.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
)

var levelNames = [...]string{Debug: "debug", Info: "info", Warn: "warn", Error: "error"}

func (l Level) String() string {
	if l < Debug || l > Error {
		return "info"
	}
	return levelNames[l]
}

// ParseLevel maps a config value to a Level. Anything unrecognised is Info.
func ParseLevel(raw string) Level {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "warning" {
		return Warn
	}
	for level, name := range levelNames {
		if name == raw {
			return Level(level)
		}
	}
	return Info
}

type Field struct {
	Key   string
	Value any
}

func F(key string, value any) Field {
	return Field{Key: key, Value: value}
}

func Err(err error) Field {
	return Field{Key: "error", Value: err}
}

type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	With(fields ...Field) Logger
	Enabled(level Level) bool
}

// New logs at level and above to out, or to stderr when out is nil.
func New(out io.Writer, level Level) Logger {
	if out == nil {
		out = os.Stderr
	}
	return newLogfmt(&sink{w: out}, level)
}

// OpenFile appends to path, creating parent directories. Close the returned
// closer when done.
func OpenFile(path string, level Level) (Logger, io.Closer, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, nil, fmt.Errorf("log path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, nil, err
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, err
	}
	return New(file, level), file, nil
}

type nopLogger struct{}

func Nop() Logger { return nopLogger{} }

func (nopLogger) Debug(string, ...Field)   {}
func (nopLogger) Info(string, ...Field)    {}
func (nopLogger) Warn(string, ...Field)    {}
func (nopLogger) Error(string, ...Field)   {}
func (n nopLogger) With(...Field) Logger   { return n }
func (nopLogger) Enabled(level Level) bool { return false }
