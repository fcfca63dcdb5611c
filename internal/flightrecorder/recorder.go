// Package flightrecorder keeps a rolling runtime trace in memory and dumps it to disk when a request runs out of
// time.
package flightrecorder

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/trace"
	"sync/atomic"
	"time"

	"github.com/sdeery14/fitness-app-sub000/internal/errors"
)

const (
	defaultMinAge   = 5 * time.Minute
	defaultMaxBytes = 64 * 1024 * 1024
	defaultCooldown = 30 * time.Minute
)

// Config tunes the recorder. Zero values pick the defaults.
type Config struct {
	// Dir receives the trace files. It is created when missing.
	Dir      string
	MinAge   time.Duration
	MaxBytes uint64
	// Cooldown is the minimum time between two captures.
	Cooldown time.Duration
}

type Recorder struct {
	logger   *slog.Logger
	fr       *trace.FlightRecorder
	dir      string
	cooldown time.Duration
	now      func() time.Time
	// lastCapture is a Unix timestamp.
	lastCapture atomic.Int64
}

func New(logger *slog.Logger, cfg Config) (*Recorder, error) {
	if cfg.Dir == "" {
		return nil, errors.New("trace directory is required")
	}
	if err := os.MkdirAll(cfg.Dir, 0o700); err != nil { //nolint:mnd // owner only
		return nil, fmt.Errorf("create trace directory: %w", err)
	}
	if cfg.MinAge == 0 {
		cfg.MinAge = defaultMinAge
	}
	if cfg.MaxBytes == 0 {
		cfg.MaxBytes = defaultMaxBytes
	}
	if cfg.Cooldown == 0 {
		cfg.Cooldown = defaultCooldown
	}

	return &Recorder{
		logger:      logger,
		fr:          trace.NewFlightRecorder(trace.FlightRecorderConfig{MinAge: cfg.MinAge, MaxBytes: cfg.MaxBytes}),
		dir:         cfg.Dir,
		cooldown:    cfg.Cooldown,
		now:         time.Now,
		lastCapture: atomic.Int64{},
	}, nil
}

func (r *Recorder) Start(ctx context.Context) error {
	if err := r.fr.Start(); err != nil {
		return fmt.Errorf("start flight recorder: %w", err)
	}
	r.logger.LogAttrs(ctx, slog.LevelInfo, "flight recorder started",
		slog.String("dir", r.dir), slog.Duration("cooldown", r.cooldown))
	return nil
}

func (r *Recorder) Stop(ctx context.Context) {
	r.fr.Stop()
	r.logger.LogAttrs(ctx, slog.LevelInfo, "flight recorder stopped")
}

// Capture writes the recorded trace to <reason>-<timestamp>.trace and returns the file path.
//
// Only one capture happens per cooldown. Skipped and failed captures return an empty path.
func (r *Recorder) Capture(ctx context.Context, reason string) string {
	now := r.now()
	last := r.lastCapture.Load()
	if last > 0 && now.Sub(time.Unix(last, 0)) < r.cooldown {
		r.logger.LogAttrs(ctx, slog.LevelDebug, "skipping trace capture during cooldown",
			slog.Time("last_capture", time.Unix(last, 0)))
		return ""
	}
	if !r.lastCapture.CompareAndSwap(last, now.Unix()) {
		return ""
	}

	path := filepath.Join(r.dir, fmt.Sprintf("%s-%s.trace", reason, now.UTC().Format("20060102-150405")))
	n, err := r.writeTrace(path)
	if err != nil {
		r.logger.LogAttrs(ctx, slog.LevelError, "failed to capture trace",
			slog.String("file", path), errors.SlogError(err))
		return ""
	}
	r.logger.LogAttrs(ctx, slog.LevelWarn, "captured trace",
		slog.String("file", path), slog.String("reason", reason), slog.Int64("bytes", n))
	return path
}

func (r *Recorder) writeTrace(path string) (_ int64, err error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create trace file: %w", err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	n, err := r.fr.WriteTo(f)
	if err != nil {
		return n, fmt.Errorf("write trace: %w", err)
	}
	return n, nil
}
