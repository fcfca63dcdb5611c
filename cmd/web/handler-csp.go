package main

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sdeery14/fitness-app-sub000/internal/errors"
)

// maxCSPReportBytes bounds violation reports.
const maxCSPReportBytes = 64 * 1024

type cspReport struct {
	Body struct {
		DocumentURI        string `json:"document-uri"`
		ViolatedDirective  string `json:"violated-directive"`
		EffectiveDirective string `json:"effective-directive"`
		BlockedURI         string `json:"blocked-uri"`
		SourceFile         string `json:"source-file"`
		LineNumber         int    `json:"line-number"`
		Disposition        string `json:"disposition"`
	} `json:"csp-report"`
}

// cspViolation logs Content-Security-Policy violation reports sent by browsers.
func (app *application) cspViolation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var report cspReport
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxCSPReportBytes)).Decode(&report); err != nil {
		app.logger.LogAttrs(ctx, slog.LevelWarn, "invalid CSP violation report", errors.SlogError(err))
		app.writeJSONError(w, r, http.StatusBadRequest, "invalid report")
		return
	}
	if report.Body.ViolatedDirective == "" && report.Body.EffectiveDirective == "" {
		app.writeJSONError(w, r, http.StatusBadRequest, "report without directive")
		return
	}

	app.logger.LogAttrs(ctx, slog.LevelWarn, "CSP violation",
		slog.String("document_uri", report.Body.DocumentURI),
		slog.String("violated_directive", report.Body.ViolatedDirective),
		slog.String("effective_directive", report.Body.EffectiveDirective),
		slog.String("blocked_uri", report.Body.BlockedURI),
		slog.String("source_file", report.Body.SourceFile),
		slog.Int("line_number", report.Body.LineNumber),
		slog.String("disposition", report.Body.Disposition),
		slog.String("user_agent", r.UserAgent()))
	w.WriteHeader(http.StatusNoContent)
}
