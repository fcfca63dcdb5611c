package contexthelpers

type contextKey string

const CurrentPathContextKey = contextKey("currentPath")
const CspNonceContextKey = contextKey("cspNonce")
const PlanSessionIDContextKey = contextKey("planSessionID")
