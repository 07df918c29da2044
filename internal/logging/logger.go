package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Format selects the slog handler used for output.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Option configures New.
type Option func(*options)

type options struct {
	level  slog.Level
	format Format
	output io.Writer
	path   string
}

// WithLevel sets the minimum level that reaches the handler.
func WithLevel(level slog.Level) Option {
	return func(o *options) { o.level = level }
}

// WithFormat switches between text and json output. Unknown formats are ignored.
func WithFormat(format Format) Option {
	return func(o *options) {
		switch format {
		case FormatText, FormatJSON:
			o.format = format
		}
	}
}

// WithOutput sends records to w. Nil writers are ignored.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.output = w
		}
	}
}

// WithFile appends records to the file at path instead of the configured
// writer, so a run can be inspected after the terminal is gone.
func WithFile(path string) Option {
	return func(o *options) { o.path = strings.TrimSpace(path) }
}

// Logger pairs the slog logger with the file it may own.
type Logger struct {
	*slog.Logger
	file *os.File
}

// New builds a logger. Defaults are text output on stderr at warn level.
func New(opts ...Option) (*Logger, error) {
	o := &options{
		level:  slog.LevelWarn,
		format: FormatText,
		output: os.Stderr,
	}
	for _, opt := range opts {
		opt(o)
	}

	l := &Logger{}
	out := o.output
	if o.path != "" {
		if err := os.MkdirAll(filepath.Dir(o.path), 0o755); err != nil {
			return nil, fmt.Errorf("logging: ensure log dir: %w", err)
		}
		f, err := os.OpenFile(o.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("logging: open log file: %w", err)
		}
		l.file = f
		out = f
	}

	handlerOpts := &slog.HandlerOptions{Level: o.level}
	var handler slog.Handler
	if o.format == FormatJSON {
		handler = slog.NewJSONHandler(out, handlerOpts)
	} else {
		handler = slog.NewTextHandler(out, handlerOpts)
	}
	l.Logger = slog.New(handler)
	return l, nil
}

// Close releases the log file, if any.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

// ParseLevel maps a config string onto a slog level.
func ParseLevel(value string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("logging: unknown level %q", value)
	}
}

// Discard returns a logger that drops everything. Packages use it when the
// caller did not supply one.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

// OrDiscard returns l, or Discard when l is nil.
func OrDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return Discard()
	}
	return l
}
