package contexthelpers

import (
	"context"
)

func CurrentPath(ctx context.Context) string {
	currentPath, ok := ctx.Value(CurrentPathContextKey).(string)
	if !ok {
		return ""
	}

	return currentPath
}

func CSPNonce(ctx context.Context) string {
	cspNonce, ok := ctx.Value(CspNonceContextKey).(string)
	if !ok {
		return ""
	}

	return cspNonce
}

// PlanSessionID returns the planning session of the request or "" outside the session middleware.
func PlanSessionID(ctx context.Context) string {
	sessionID, ok := ctx.Value(PlanSessionIDContextKey).(string)
	if !ok {
		return ""
	}

	return sessionID
}
