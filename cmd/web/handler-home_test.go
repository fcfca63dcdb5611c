package main

import (
	"encoding/json"
	"net/http"
	neturl "net/url"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/sdeery14/fitness-app-sub000/internal/e2etest"
	"github.com/sdeery14/fitness-app-sub000/internal/fitnessplan"
	"github.com/sdeery14/fitness-app-sub000/internal/fitnessplan/plantest"
	"github.com/sdeery14/fitness-app-sub000/internal/planner"
	"github.com/sdeery14/fitness-app-sub000/internal/testhelpers"
)

func testLookupEnv(key string) (string, bool) {
	switch key {
	case "FITNESS_SQLITE_URL":
		return ":memory:", true
	case "FITNESS_ADDR":
		return "localhost:0", true
	default:
		return "", false
	}
}

// lookupEnvWith overrides testLookupEnv with env.
func lookupEnvWith(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		if v, ok := env[key]; ok {
			return v, true
		}
		return testLookupEnv(key)
	}
}

func startServer(t *testing.T, lookupEnv func(string) (string, bool)) *e2etest.Server {
	t.Helper()
	server, err := e2etest.StartServer(t, testhelpers.NewWriter(t), lookupEnv, run)
	if err != nil {
		t.Fatalf("Failed to start server: %v", err)
	}
	return server
}

func today() fitnessplan.Date {
	return fitnessplan.DateOf(time.Now())
}

// fourWeekPlan starts today and schedules 28 days of a six day split with a rest day.
func fourWeekPlan() fitnessplan.FitnessPlan {
	start := today()
	return plantest.Plan(start.String(), start.AddDays(27).String(),
		plantest.Period("Base", "", plantest.WeekSplit("PPL")))
}

func planJSON(t *testing.T, plan fitnessplan.FitnessPlan) string {
	t.Helper()
	b, err := json.Marshal(plan)
	if err != nil {
		t.Fatalf("Failed to marshal plan: %v", err)
	}
	return string(b)
}

func Test_application_home(t *testing.T) {
	var (
		ctx = t.Context()
		doc *goquery.Document
		err error
	)
	server := startServer(t, testLookupEnv)
	client := server.Client()

	t.Run("Initial state", func(t *testing.T) {
		if doc, err = client.GetDoc(ctx, "/"); err != nil {
			t.Fatalf("Failed to get document: %v", err)
		}
		empty := doc.Find(".summary .empty")
		if reason, _ := empty.Attr("data-reason"); reason != string(planner.ReasonNoPlan) {
			t.Errorf("Expected reason %q, got %q", planner.ReasonNoPlan, reason)
		}
		if got := strings.TrimSpace(empty.Text()); got != planner.MessageNoPlan {
			t.Errorf("Expected empty state message %q, got %q", planner.MessageNoPlan, got)
		}
		checkButtonPresence(t, doc, "Clear plan", 0)
		checkButtonPresence(t, doc, "Save plan", 1)
		if doc.Find(".chat").Length() != 0 {
			t.Error("Expected no chat without an API key")
		}
	})

	t.Run("Upload plan", func(t *testing.T) {
		if doc, err = client.SubmitForm(ctx, doc, "/plan", map[string]string{
			"Plan JSON": planJSON(t, fourWeekPlan()),
		}); err != nil {
			t.Fatalf("Failed to submit plan: %v", err)
		}
		if title := doc.Find(".plan h1").First().Text(); title != "Strength Block" {
			t.Errorf("Expected rendered plan title, got %q", title)
		}
		summary := doc.Find("[data-testid=summary]").Text()
		if !strings.HasPrefix(summary, "Upcoming training:") || !strings.Contains(summary, "Push") {
			t.Errorf("Expected upcoming training summary, got %q", summary)
		}
		checkButtonPresence(t, doc, "Clear plan", 1)
		if doc.Find("a[href='/calendar.ics']").Length() != 1 {
			t.Error("Expected calendar download link")
		}
	})

	t.Run("Invalid plan keeps the current plan", func(t *testing.T) {
		var resp *http.Response
		if resp, err = client.PostForm(ctx, "/plan", neturl.Values{"plan": {`{"name": "Broken"}`}}); err != nil {
			t.Fatalf("Failed to post plan form: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusUnprocessableEntity {
			t.Errorf("Expected status %d, got %d", http.StatusUnprocessableEntity, resp.StatusCode)
		}
		var errDoc *goquery.Document
		if errDoc, err = goquery.NewDocumentFromReader(resp.Body); err != nil {
			t.Fatalf("Failed to parse document: %v", err)
		}
		if msg := errDoc.Find(".upload .error").Text(); !strings.Contains(msg, "invalid plan shape") {
			t.Errorf("Expected validation error, got %q", msg)
		}
		if title := errDoc.Find(".plan h1").First().Text(); title != "Strength Block" {
			t.Errorf("Expected previous plan to remain, got %q", title)
		}
	})

	t.Run("Clear plan", func(t *testing.T) {
		if doc, err = client.GetDoc(ctx, "/"); err != nil {
			t.Fatalf("Failed to get document: %v", err)
		}
		if doc, err = client.SubmitForm(ctx, doc, "/plan/clear", nil); err != nil {
			t.Fatalf("Failed to clear plan: %v", err)
		}
		checkButtonPresence(t, doc, "Clear plan", 0)
		if reason, _ := doc.Find(".summary .empty").Attr("data-reason"); reason != string(planner.ReasonNoPlan) {
			t.Errorf("Expected reason %q after clearing, got %q", planner.ReasonNoPlan, reason)
		}
	})
}

func Test_application_securityHeaders(t *testing.T) {
	ctx := t.Context()
	server := startServer(t, testLookupEnv)

	resp, err := server.Client().Get(ctx, "/nonexistent")
	if err != nil {
		t.Fatalf("Failed to get page: %v", err)
	}
	defer resp.Body.Close()

	csp := resp.Header.Get("Content-Security-Policy")
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		t.Fatalf("Failed to parse document: %v", err)
	}
	nonce, ok := doc.Find("script").Attr("nonce")
	if !ok || nonce == "" {
		t.Fatal("Expected script with nonce")
	}
	if !strings.Contains(csp, "'nonce-"+nonce+"'") {
		t.Errorf("Expected CSP %q to allow nonce %q", csp, nonce)
	}
	if got := resp.Header.Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("Expected nosniff, got %q", got)
	}
	if got := resp.Header.Get("Cache-Control"); !strings.Contains(got, "no-store") {
		t.Errorf("Expected dynamic pages not to be cached, got %q", got)
	}
}

func Test_application_static(t *testing.T) {
	ctx := t.Context()
	server := startServer(t, testLookupEnv)

	resp, err := server.Client().Get(ctx, "/main.css")
	if err != nil {
		t.Fatalf("Failed to get stylesheet: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Cache-Control"); !strings.Contains(got, "immutable") {
		t.Errorf("Expected static files to be cached, got %q", got)
	}
	if got := resp.Header.Get("Content-Type"); !strings.HasPrefix(got, "text/css") {
		t.Errorf("Expected text/css, got %q", got)
	}
}

func Test_application_healthy(t *testing.T) {
	server := startServer(t, testLookupEnv)

	var body healthResponse
	status, err := server.Client().JSON(t.Context(), http.MethodGet, "/api/healthy", nil, &body)
	if err != nil {
		t.Fatalf("Failed to get health: %v", err)
	}
	if status != http.StatusOK || body != (healthResponse{Status: "ok", Chat: "disabled"}) {
		t.Errorf("Expected healthy response, got %d %v", status, body)
	}
}

func checkButtonPresence(t *testing.T, doc *goquery.Document, buttonText string, expectedCount int) {
	t.Helper()
	count := doc.Find("button:contains('" + buttonText + "')").Length()
	if count != expectedCount {
		t.Errorf("Expected %d %q buttons, got %d", expectedCount, buttonText, count)
	}
}
