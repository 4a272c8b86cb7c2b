package httpx

import "context"

type ctxKey string

const CtxKeyUserID ctxKey = "user_id"

// UserIDFromContext returns the authenticated user's ID, or "" when the
// request was not authenticated (optional-auth routes).
func UserIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyUserID).(string); ok {
		return v
	}
	return ""
}
