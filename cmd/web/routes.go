package main

import (
	"fmt"
	"net/http"
	"time"
)

func (app *application) routes() (*http.ServeMux, error) {
	mux := http.NewServeMux()

	var (
		shared = func(timeout time.Duration, next http.Handler) http.Handler {
			return app.logAndTraceRequest(secureHeaders(app.crossOriginProtection(
				commonContext(app.timeout(timeout)(next)))))
		}
		noSession = func(next http.Handler) http.Handler {
			return app.recoverPanic(shared(defaultTimeout, next))
		}
		session = func(next http.Handler) http.Handler {
			return app.recoverPanic(noCache(app.sessionManager.LoadAndSave(
				app.planSession(shared(defaultTimeout, next)))))
		}
		slowSession = func(next http.Handler) http.Handler {
			return app.recoverPanic(noCache(app.sessionManager.LoadAndSave(
				app.planSession(shared(chatTimeout, next)))))
		}
	)

	mux.Handle("GET /api/healthy", noSession(http.HandlerFunc(app.healthy)))
	mux.Handle("GET /api/test/timeout", noSession(http.HandlerFunc(app.testTimeout)))
	mux.Handle("POST /api/csp-report", noSession(http.HandlerFunc(app.cspViolation)))

	mux.Handle("POST /api/plan", session(http.HandlerFunc(app.planPOST)))
	mux.Handle("GET /api/plan", session(http.HandlerFunc(app.planGET)))
	mux.Handle("DELETE /api/plan", session(http.HandlerFunc(app.planDELETE)))
	mux.Handle("GET /api/plan/history", session(http.HandlerFunc(app.planHistoryGET)))
	mux.Handle("GET /api/schedule/summary", session(http.HandlerFunc(app.scheduleSummaryGET)))
	mux.Handle("GET /api/calendar/events", session(http.HandlerFunc(app.calendarEventsGET)))
	mux.Handle("POST /api/chat", slowSession(http.HandlerFunc(app.chatPOST)))

	mux.Handle("GET /calendar", session(http.HandlerFunc(app.calendarGET)))
	mux.Handle("GET /calendar.ics", session(http.HandlerFunc(app.calendarICSGET)))
	mux.Handle("POST /plan", session(http.HandlerFunc(app.planFormPOST)))
	mux.Handle("POST /plan/clear", session(http.HandlerFunc(app.planClearPOST)))
	mux.Handle("POST /chat", slowSession(http.HandlerFunc(app.chatFormPOST)))

	// Home route (most specific)
	mux.Handle("GET /{$}", session(http.HandlerFunc(app.home)))

	// File server with custom 404 handling
	fileServerHandler, err := app.fileServerHandler(session)
	if err != nil {
		return nil, fmt.Errorf("fileServerHandler: %w", err)
	}
	mux.Handle("/", fileServerHandler)

	return mux, nil
}
