package middlewares

import (
	"context"
	"encoding/json"
	"net/http"

	"messagely/internal/logger"
)

// Tokener defines the minimal token operations needed by the middleware.
type Tokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	ParseToken(ctx context.Context, tokenString string) (username string, tokenID string, err error)
}

// RevocationChecker reports whether a token has been revoked.
// A nil checker disables revocation and leaves verification purely
// signature-based.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// writeJSONError writes the same error body shape the handlers use, so
// middleware rejections look no different to clients.
func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// AuthMiddleware returns a middleware that verifies the bearer token,
// optionally checks it against the revocation store, and stores the
// authenticated username in the request context.
func AuthMiddleware(tokener Tokener, revoker RevocationChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			tokenString, err := tokener.GetTokenFromRequest(ctx, r)
			if err != nil {
				logger.Log.Errorw("authorization failed", "err", err)
				writeJSONError(w, http.StatusUnauthorized, "authorization required")
				return
			}

			username, tokenID, err := tokener.ParseToken(ctx, tokenString)
			if err != nil {
				logger.Log.Errorw("authorization failed", "err", err)
				writeJSONError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			if revoker != nil {
				revoked, err := revoker.IsRevoked(ctx, tokenID)
				if err != nil {
					logger.Log.Errorw("revocation check failed", "err", err)
					writeJSONError(w, http.StatusInternalServerError, "internal server error")
					return
				}
				if revoked {
					logger.Log.Errorw("revoked token rejected", "username", username)
					writeJSONError(w, http.StatusUnauthorized, "token revoked")
					return
				}
			}

			ctx = SetUsernameToContext(ctx, username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// usernameKey is an unexported type for the identity context key.
type usernameKey struct{}

// SetUsernameToContext stores the authenticated username in the context.
func SetUsernameToContext(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, usernameKey{}, username)
}

// GetUsernameFromContext returns the authenticated username, or the
// empty string if the request did not pass the auth middleware.
func GetUsernameFromContext(ctx context.Context) string {
	username, _ := ctx.Value(usernameKey{}).(string)
	return username
}
