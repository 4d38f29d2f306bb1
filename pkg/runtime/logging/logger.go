package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

type Options struct {
	Level string
	// Format applies to Console only; the file sink is always JSON
	Format  string
	Console io.Writer
	File    string
}

// Sink is a configured logger together with the file it appends to
type Sink struct {
	Logger zerolog.Logger
	file   *os.File
}

// New builds a logger writing to the console and, when File is set, to a JSON log file
func New(opts Options) (*Sink, error) {
	level := zerolog.InfoLevel
	if opts.Level != "" {
		parsed, err := zerolog.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
		level = parsed
	}

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	if opts.Format != FormatJSON {
		console = zerolog.ConsoleWriter{Out: console, TimeFormat: time.DateTime, NoColor: !isTerminal(console)}
	}

	sink := &Sink{}
	writers := []io.Writer{console}
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		sink.file = f
		writers = append(writers, f)
	}

	// Ingest workers log from several goroutines
	out := zerolog.SyncWriter(zerolog.MultiLevelWriter(writers...))
	sink.Logger = zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Logger()
	return sink, nil
}

func (s *Sink) Close() error {
	if s.file == nil {
		return nil
	}
	return s.file.Close()
}

// WithRun tags every entry with a fresh run id and attaches the logger to ctx
func WithRun(ctx context.Context, logger zerolog.Logger) (context.Context, zerolog.Logger, string) {
	runID := uuid.NewString()
	runLogger := logger.With().
		Str("run_id", runID).
		Logger()
	return runLogger.WithContext(ctx), runLogger, runID
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
