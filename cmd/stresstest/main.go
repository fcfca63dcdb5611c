// Command stresstest drives concurrent planning sessions against a running deployment.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/sdeery14/fitness-app-sub000/internal/e2etest"
	"github.com/sdeery14/fitness-app-sub000/internal/fitnessplan"
	"github.com/sdeery14/fitness-app-sub000/internal/fitnessplan/plantest"
	"github.com/sdeery14/fitness-app-sub000/internal/logging"
	"github.com/sdeery14/fitness-app-sub000/internal/testhelpers"
	"golang.org/x/sync/errgroup"
)

const (
	numSessions             = 25
	scenarioRounds          = 4
	setupTimeout            = 30 * time.Second
	scenarioTimeout         = 30 * time.Second
	maxConcurrentSetups     = 10
	maxConcurrentOperations = 20
	successRateThreshold    = 95.0
	expectedArgsCount       = 2
	percentageMultiplier    = 100
	planWeeks               = 12
	daysPerWeek             = 7
)

// planningSession is a client with its own session cookie and an uploaded plan.
type planningSession struct {
	Client *e2etest.Client
	Index  int
}

// stressPlan spans twelve weeks from today with a deload period in the middle.
func stressPlan() fitnessplan.FitnessPlan {
	today := fitnessplan.DateOf(time.Now())
	deload := today.AddDays(planWeeks / 2 * daysPerWeek)
	return plantest.Plan(today.String(), today.AddDays(planWeeks*daysPerWeek-1).String(),
		plantest.Period("Build", today.String(), plantest.WeekSplit("PPL")),
		plantest.Period("Deload", deload.String(), plantest.WeekSplit("Easy PPL")),
		plantest.Period("Peak", deload.AddDays(daysPerWeek).String(), plantest.WeekSplit("PPL")))
}

// newPlanningSession uploads a plan through the home page form like a browser would.
func newPlanningSession(ctx context.Context, baseURL string, index int) (*planningSession, error) {
	client, err := e2etest.NewClient(baseURL)
	if err != nil {
		return nil, fmt.Errorf("new client: %w", err)
	}
	plan, err := json.Marshal(stressPlan())
	if err != nil {
		return nil, fmt.Errorf("marshal plan: %w", err)
	}
	resp, err := client.PostForm(ctx, "/plan", url.Values{"plan": {string(plan)}})
	if err != nil {
		return nil, fmt.Errorf("post plan: %w", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("post plan: status %d", resp.StatusCode)
	}
	return &planningSession{Client: client, Index: index}, nil
}

func setupSessions(ctx context.Context, baseURL string, logger *slog.Logger) ([]*planningSession, error) {
	sessions := make([]*planningSession, numSessions)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentSetups)
	for i := range numSessions {
		g.Go(func() error {
			setupCtx, cancel := context.WithTimeout(ctx, setupTimeout)
			defer cancel()
			s, err := newPlanningSession(setupCtx, baseURL, i)
			if err != nil {
				return fmt.Errorf("session %d: %w", i, err)
			}
			sessions[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err //nolint:wrapcheck // already wrapped
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "Planning sessions created", slog.Int("sessions", len(sessions)))
	return sessions, nil
}

// calendarScenario browses the calendar the way a user checking their week would.
func calendarScenario(ctx context.Context, s *planningSession) error {
	doc, err := s.Client.GetDoc(ctx, "/calendar?view=week")
	if err != nil {
		return fmt.Errorf("get week view: %w", err)
	}
	if doc.Find(".event").Length() == 0 {
		return errors.New("week view shows no events")
	}
	if _, err = s.Client.GetDoc(ctx, "/calendar?view=month&nav=next"); err != nil {
		return fmt.Errorf("get next month: %w", err)
	}

	var events struct {
		Events []json.RawMessage `json:"events"`
	}
	status, err := s.Client.JSON(ctx, http.MethodGet, "/api/calendar/events", nil, &events)
	if err != nil {
		return fmt.Errorf("get events: %w", err)
	}
	if status != http.StatusOK || len(events.Events) != planWeeks*daysPerWeek {
		return fmt.Errorf("get events: status %d, %d events", status, len(events.Events))
	}

	resp, err := s.Client.Get(ctx, "/calendar.ics")
	if err != nil {
		return fmt.Errorf("get ics: %w", err)
	}
	_ = resp.Body.Close()
	if !strings.HasPrefix(resp.Header.Get("Content-Type"), "text/calendar") {
		return fmt.Errorf("get ics: content type %q", resp.Header.Get("Content-Type"))
	}
	return nil
}

func runLoadTest(ctx context.Context, sessions []*planningSession, logger *slog.Logger) error {
	total := len(sessions) * scenarioRounds
	logger.LogAttrs(ctx, slog.LevelInfo, "Starting load test", slog.Int("scenarios", total))

	var successCount, failureCount atomic.Int64
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentOperations)
	for range scenarioRounds {
		for _, s := range sessions {
			g.Go(func() error {
				scenarioCtx, cancel := context.WithTimeout(ctx, scenarioTimeout)
				defer cancel()
				if err := calendarScenario(scenarioCtx, s); err != nil {
					failureCount.Add(1)
					logger.LogAttrs(scenarioCtx, slog.LevelWarn, "Scenario failed",
						slog.Int("session", s.Index), slog.Any("error", err))
					return nil
				}
				successCount.Add(1)
				return nil
			})
		}
	}
	_ = g.Wait()

	successRate := float64(successCount.Load()) / float64(total) * percentageMultiplier
	logger.LogAttrs(ctx, slog.LevelInfo, "Load test completed",
		slog.Int64("successful", successCount.Load()),
		slog.Int64("failed", failureCount.Load()),
		slog.Float64("success_rate", successRate))
	if successRate < successRateThreshold {
		return fmt.Errorf("load test failed: success rate %.1f%% below threshold", successRate)
	}
	return nil
}

func main() {
	logger := testhelpers.NewLogger(os.Stdout)
	ctx := context.Background()

	if len(os.Args) != expectedArgsCount {
		logger.LogAttrs(ctx, slog.LevelError, "usage: stresstest <hostname>")
		os.Exit(1)
	}

	var (
		hostname = os.Args[1]
		start    = time.Now()
	)
	ctx = logging.WithAttrs(ctx, slog.String("hostname", hostname))
	baseURL := "https://" + hostname
	if strings.Contains(hostname, "localhost") {
		baseURL = "http://" + hostname
	}

	client, err := e2etest.NewClient(baseURL)
	if err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error creating client", slog.Any("error", err))
		os.Exit(1)
	}
	if err = client.WaitForReady(ctx, "/api/healthy"); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "server not ready in time", slog.Any("error", err))
		os.Exit(1)
	}

	sessions, err := setupSessions(ctx, baseURL, logger)
	if err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "failed to set up sessions", slog.Any("error", err))
		os.Exit(1)
	}

	loadTestStart := time.Now()
	if err = runLoadTest(ctx, sessions, logger); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "load test failed", slog.Any("error", err))
		os.Exit(1)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "Load test completed successfully 🙌",
		slog.Duration("total_duration", time.Since(start)),
		slog.Duration("load_test_duration", time.Since(loadTestStart)))
}
