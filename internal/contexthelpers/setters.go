package contexthelpers

import (
	"context"
	"net/http"
)

func SetCurrentPath(r *http.Request, currentPath string) *http.Request {
	ctx := r.Context()
	ctx = context.WithValue(ctx, CurrentPathContextKey, currentPath)
	return r.WithContext(ctx)
}

func SetCSPNonce(r *http.Request, cspNonce string) *http.Request {
	ctx := r.Context()
	ctx = context.WithValue(ctx, CspNonceContextKey, cspNonce)
	return r.WithContext(ctx)
}

func SetPlanSessionID(r *http.Request, sessionID string) *http.Request {
	ctx := r.Context()
	ctx = context.WithValue(ctx, PlanSessionIDContextKey, sessionID)
	return r.WithContext(ctx)
}
