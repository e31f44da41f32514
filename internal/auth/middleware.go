package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/Faheem2407/go-todo-app/pkg/utils"
)

type ctxKey string

const (
	ctxKeyUserID    ctxKey = "userID"
	ctxKeySessionID ctxKey = "sessionID"
)

func ContextWithSession(ctx context.Context, userID int64, sessionID string) context.Context {
	ctx = context.WithValue(ctx, ctxKeyUserID, userID)
	return context.WithValue(ctx, ctxKeySessionID, sessionID)
}

func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(ctxKeyUserID).(int64)
	return id, ok
}

func SessionIDFromContext(ctx context.Context) (string, bool) {
	jti, ok := ctx.Value(ctxKeySessionID).(string)
	return jti, ok
}

// AuthMiddleware validates the bearer token and stashes the caller's
// identity in the request context.
func AuthMiddleware(ts TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.WriteError(w, http.StatusUnauthorized, "missing Authorization header")
				return
			}

			const prefix = "Bearer "
			if !strings.HasPrefix(authHeader, prefix) {
				utils.WriteError(w, http.StatusUnauthorized, "invalid Authorization header")
				return
			}

			tokenStr := strings.TrimSpace(authHeader[len(prefix):])
			if tokenStr == "" {
				utils.WriteError(w, http.StatusUnauthorized, "empty bearer token")
				return
			}

			claims, err := ts.Validate(r.Context(), tokenStr)
			if err != nil {
				utils.WriteError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			ctx := ContextWithSession(r.Context(), claims.UserID, claims.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
