package http

import (
	"context"
	"net/http"
	"strings"

	"shiftmarket-backend/internal/logger"
	"shiftmarket-backend/internal/security"
)

type contextKey string

const callerIDKey contextKey = "caller_id"

// CallerID extracts the authenticated staff profile id from the request
// context. The second return is false when the request skipped AuthMiddleware.
func CallerID(ctx context.Context) (int32, bool) {
	id, ok := ctx.Value(callerIDKey).(int32)
	return id, ok
}

// AuthMiddleware validates the bearer token and stores the caller's profile
// id in the request context.
func AuthMiddleware(tokens security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeErrorMessage(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			claims, err := tokens.ValidateToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				writeErrorMessage(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), callerIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// LoggingMiddleware logs each request at debug level.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("http request", "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}
