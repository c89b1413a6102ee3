package handlers

import (
	"context"
	"net/http"

	"messagely/internal/logger"
)

// Logouter defines the interface that the logout service must implement.
type Logouter interface {
	Logout(ctx context.Context, tokenString string) error
}

// TokenExtractor extracts the bearer token from a request.
type TokenExtractor interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
}

// LogoutResponse represents a successful logout response
// swagger:model LogoutResponse
type LogoutResponse struct {
	// Confirmation message
	// example: logged out
	Message string `json:"message"`
}

// NewLogoutHandler returns an HTTP handler that revokes the current
// session token.
// @Summary Logout
// @Description Revokes the presented session token until its natural expiry
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} handlers.LogoutResponse "Token revoked"
// @Failure 401 {object} handlers.ErrorResponse "Missing or invalid token"
// @Router /logout [post]
func NewLogoutHandler(svc Logouter, tokens TokenExtractor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenString, err := tokens.GetTokenFromRequest(r.Context(), r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "authorization required")
			return
		}

		if err := svc.Logout(r.Context(), tokenString); err != nil {
			logger.Log.Errorw("logout failed", "err", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}

		writeJSON(w, http.StatusOK, LogoutResponse{Message: "logged out"})
	}
}
