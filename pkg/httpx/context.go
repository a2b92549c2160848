package httpx

import (
	"context"
	"net/http"
)

type ctxKey string

const (
	CtxKeyAdminID   ctxKey = "admin_id"
	CtxKeyAdminRole ctxKey = "admin_role"
)

// AdminIDFromContext returns the authenticated admin's ID, if any.
func AdminIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(CtxKeyAdminID).(string)
	return id, ok && id != ""
}

// adminIDKeyExtractor is used for per-admin rate limiting.
func adminIDKeyExtractor(r *http.Request) string {
	id, _ := AdminIDFromContext(r.Context())
	return id
}
