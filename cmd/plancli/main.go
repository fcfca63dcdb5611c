// Command plancli validates fitness plan files and renders their schedules.
//
//	plancli summary --days 7 plan.toml
//	plancli ics plan.json > training.ics
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/sdeery14/fitness-app-sub000/internal/errors"
	"github.com/sdeery14/fitness-app-sub000/internal/logging"
)

func main() {
	ctx := context.Background()
	logger := slog.New(logging.NewContextHandler(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelWarn,
		ReplaceAttr: nil,
	})))
	if err := newRootCmd(logger, time.Now).ExecuteContext(ctx); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "plancli failed", errors.SlogError(err))
		os.Exit(1)
	}
}
