package main

import (
	"net/http"
	"strconv"
	"time"
)

type healthResponse struct {
	Status string `json:"status"`
	// Chat is "enabled" when an OpenAI API key is configured.
	Chat string `json:"chat"`
}

func (app *application) healthy(w http.ResponseWriter, r *http.Request) {
	chat := "disabled"
	if app.agent != nil {
		chat = "enabled"
	}
	app.writeJSON(w, r, http.StatusOK, healthResponse{Status: "ok", Chat: chat})
}

// testTimeout sleeps for the sleep_ms query parameter before responding. It exercises the timeout middleware.
func (app *application) testTimeout(w http.ResponseWriter, r *http.Request) {
	sleepMS := 0
	if raw := r.URL.Query().Get("sleep_ms"); raw != "" {
		var err error
		if sleepMS, err = strconv.Atoi(raw); err != nil || sleepMS < 0 {
			app.writeJSONError(w, r, http.StatusBadRequest, "sleep_ms must be a non-negative integer")
			return
		}
	}
	time.Sleep(time.Duration(sleepMS) * time.Millisecond)
	app.writeJSON(w, r, http.StatusOK, map[string]any{"status": "completed", "slept_ms": sleepMS})
}
