package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/NotFromFatec/Carometro-V2/pkg/slogx"
)

// TokenVerifier checks a bearer token and returns the admin identity it
// represents. Implemented by the directory's auth package; httpx stays
// agnostic of the token format.
type TokenVerifier func(token string) (adminID, role string, err error)

// AuthnMiddleware guards admin-only endpoints. It requires a valid bearer
// token and injects the admin identity into the request context.
func AuthnMiddleware(verify TokenVerifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				writeBearerError(w, "missing bearer token")
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			adminID, role, err := verify(raw)
			if err != nil {
				writeBearerError(w, "token verification failed")
				log.Warn("admin token verify failed", "err", err)
				return
			}

			ctx = context.WithValue(ctx, CtxKeyAdminID, adminID)
			ctx = context.WithValue(ctx, CtxKeyAdminRole, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RFC 6750-compliant error response for bearer auth.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	w.WriteHeader(http.StatusUnauthorized)
}
