// Package logger provides structured logging for the command line.
//
// Logs go to stderr so that stdout stays reserved for command output such as
// rendered tables and diffs. When stderr is a terminal a human readable
// console encoder is used; otherwise each entry is a JSON object.
package logger

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

// Format represents the log output format.
type Format string

const (
	// FormatAuto picks console on a terminal and JSON otherwise.
	FormatAuto Format = "auto"
	// FormatConsole outputs human readable lines.
	FormatConsole Format = "console"
	// FormatJSON outputs logs as JSON objects.
	FormatJSON Format = "json"
)

var (
	// ErrUnknownLogLevel indicates an unrecognized log level string.
	ErrUnknownLogLevel = errors.New("unknown log level")
	// ErrUnknownLogFormat indicates an unrecognized log format string.
	ErrUnknownLogFormat = errors.New("unknown log format")
)

var levels = []string{"debug", "info", "warn", "error"}

var formats = []Format{FormatAuto, FormatConsole, FormatJSON}

// Fields is a map of field names to values attached to log entries.
type Fields map[string]any

// Logger defines the logging operations used across the application.
type Logger interface {
	Debug(msg string)
	Info(msg string)
	Warn(msg string)
	Error(msg string)

	// WithFields returns a Logger that adds fields to every entry.
	WithFields(fields Fields) Logger
}

// Config holds the logging settings, usually bound to CLI flags.
type Config struct {
	Level   string
	Format  string
	Verbose bool

	// Output defaults to os.Stderr
	Output io.Writer
}

// NewConfig returns a Config with the default level and format.
func NewConfig() *Config {
	return &Config{
		Level:  "info",
		Format: string(FormatAuto),
	}
}

// RegisterFlags adds logging flags to the given flag set.
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.Level, "log-level", c.Level,
		fmt.Sprintf("log level, one of: %s", strings.Join(levels, ", ")))
	flags.StringVar(&c.Format, "log-format", c.Format,
		fmt.Sprintf("log format, one of: %s", joinFormats()))
	flags.BoolVarP(&c.Verbose, "verbose", "v", c.Verbose, "enable debug logging (same as --log-level=debug)")
}

// New builds a Logger from c.
func (c *Config) New() (Logger, error) {
	level, err := GetLevel(c.Level)
	if err != nil {
		return nil, err
	}
	if c.Verbose {
		level = zapcore.DebugLevel
	}

	format, err := GetFormat(c.Format)
	if err != nil {
		return nil, err
	}

	out := c.Output
	if out == nil {
		out = os.Stderr
	}
	if format == FormatAuto {
		format = FormatJSON
		if isTerminal(out) {
			format = FormatConsole
		}
	}

	core := zapcore.NewCore(newEncoder(format, isTerminal(out)), zapcore.AddSync(out), level)
	return &logger{zap: zap.New(core)}, nil
}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return &logger{zap: zap.NewNop()}
}

// GetLevel parses a log level string.
func GetLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info", "":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	}
	return zapcore.InfoLevel, fmt.Errorf("%w: %q", ErrUnknownLogLevel, level)
}

// GetFormat parses a log format string.
func GetFormat(format string) (Format, error) {
	f := Format(strings.ToLower(format))
	if f == "" {
		return FormatAuto, nil
	}
	if slices.Contains(formats, f) {
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownLogFormat, format)
}

func joinFormats() string {
	s := make([]string, len(formats))
	for i, f := range formats {
		s[i] = string(f)
	}
	return strings.Join(s, ", ")
}

func newEncoder(format Format, color bool) zapcore.Encoder {
	cfg := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
	}

	if format == FormatConsole {
		// No timestamps on the console
		cfg.TimeKey = zapcore.OmitKey
		cfg.EncodeLevel = zapcore.CapitalLevelEncoder
		if color {
			cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}
		return zapcore.NewConsoleEncoder(cfg)
	}

	return zapcore.NewJSONEncoder(cfg)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

type logger struct {
	zap *zap.Logger
}

func (l *logger) Debug(msg string) {
	l.zap.Debug(msg)
}

func (l *logger) Info(msg string) {
	l.zap.Info(msg)
}

func (l *logger) Warn(msg string) {
	l.zap.Warn(msg)
}

func (l *logger) Error(msg string) {
	l.zap.Error(msg)
}

func (l *logger) WithFields(fields Fields) Logger {
	zapFields := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		zapFields = append(zapFields, zap.Any(k, v))
	}
	return &logger{zap: l.zap.With(zapFields...)}
}
