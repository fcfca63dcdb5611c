// Command smoketest checks a running deployment by uploading a plan, reading it back and clearing it.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/sdeery14/fitness-app-sub000/internal/e2etest"
	"github.com/sdeery14/fitness-app-sub000/internal/fitnessplan"
	"github.com/sdeery14/fitness-app-sub000/internal/fitnessplan/plantest"
	"github.com/sdeery14/fitness-app-sub000/internal/logging"
	"github.com/sdeery14/fitness-app-sub000/internal/testhelpers"
)

const smokeTimeout = 10 * time.Second

// smokePlan is a four week plan starting today.
func smokePlan() fitnessplan.FitnessPlan {
	today := fitnessplan.DateOf(time.Now())
	return plantest.Plan(today.String(), today.AddDays(27).String(), //nolint:mnd // four weeks
		plantest.Period("Smoke", today.String(), plantest.WeekSplit("PPL")))
}

func testPlanLifecycle(ctx context.Context, client *e2etest.Client) error {
	ctx, cancel := context.WithTimeout(ctx, smokeTimeout)
	defer cancel()

	var created struct {
		ScheduledDays int `json:"scheduled_days"`
	}
	status, err := client.JSON(ctx, http.MethodPost, "/api/plan", smokePlan(), &created)
	if err != nil {
		return fmt.Errorf("create plan: %w", err)
	}
	if status != http.StatusCreated || created.ScheduledDays != 28 { //nolint:mnd // four weeks
		return fmt.Errorf("create plan: status %d, %d scheduled days", status, created.ScheduledDays)
	}

	var summary struct {
		Summary string `json:"summary"`
	}
	if status, err = client.JSON(ctx, http.MethodGet, "/api/schedule/summary?days=7", nil, &summary); err != nil {
		return fmt.Errorf("get summary: %w", err)
	}
	if status != http.StatusOK || !strings.HasPrefix(summary.Summary, "Upcoming training:") {
		return fmt.Errorf("get summary: status %d, summary %q", status, summary.Summary)
	}

	doc, err := client.GetDoc(ctx, "/calendar")
	if err != nil {
		return fmt.Errorf("get calendar: %w", err)
	}
	if doc.Find(".event").Length() == 0 {
		return fmt.Errorf("calendar shows no events")
	}

	if status, err = client.JSON(ctx, http.MethodDelete, "/api/plan", nil, nil); err != nil {
		return fmt.Errorf("delete plan: %w", err)
	}
	if status != http.StatusNoContent {
		return fmt.Errorf("delete plan: status %d", status)
	}
	return nil
}

func main() {
	logger := testhelpers.NewLogger(os.Stdout)
	ctx := context.Background()

	if len(os.Args) != 2 { //nolint:mnd // we expect only hostname to be passed as argument.
		logger.LogAttrs(ctx, slog.LevelError, "usage: smoketest <hostname>")
		os.Exit(1)
	}

	var (
		hostname = os.Args[1]
		client   *e2etest.Client
		err      error
		start    = time.Now()
	)
	ctx = logging.WithAttrs(ctx, slog.String("hostname", hostname))
	url := "https://" + hostname
	if strings.Contains(hostname, "localhost") {
		url = "http://" + hostname
	}

	if client, err = e2etest.NewClient(url); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error creating client", slog.Any("error", err))
		os.Exit(1)
	}
	if err = client.WaitForReady(ctx, "/api/healthy"); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "server not ready in time", slog.Any("error", err))
		os.Exit(1)
	}
	if err = testPlanLifecycle(ctx, client); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error testing plan lifecycle", slog.Any("error", err))
		os.Exit(1)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "Smoke test successful 🙌", slog.Duration("duration", time.Since(start)))
}
