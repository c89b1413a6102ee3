package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"messagely/internal/logger"
	"messagely/internal/models"
	"messagely/internal/services"
)

// UserGetter defines the interface that the user service must implement
// for single-profile reads.
type UserGetter interface {
	Get(ctx context.Context, username string) (*models.UserDB, error)
}

// UserDetail is the full profile exposed for a single user. The
// password hash never leaves the service layer.
type UserDetail struct {
	Username    string    `json:"username"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Phone       string    `json:"phone"`
	JoinAt      time.Time `json:"join_at"`
	LastLoginAt time.Time `json:"last_login_at"`
}

// GetUserResponse represents a single-profile response
// swagger:model GetUserResponse
type GetUserResponse struct {
	User UserDetail `json:"user"`
}

// NewGetUserHandler returns an HTTP handler for a single user profile.
// @Summary Get a user
// @Description Returns the full profile of one user
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} handlers.GetUserResponse "User returned"
// @Failure 404 {object} handlers.ErrorResponse "Unknown username"
// @Router /users/{username} [get]
func NewGetUserHandler(svc UserGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := chi.URLParam(r, "username")

		user, err := svc.Get(r.Context(), username)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUserDoesNotExist):
				writeError(w, http.StatusNotFound, "username does not exist")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "internal server error")
			}
			return
		}

		writeJSON(w, http.StatusOK, GetUserResponse{
			User: UserDetail{
				Username:    user.Username,
				FirstName:   user.FirstName,
				LastName:    user.LastName,
				Phone:       user.Phone,
				JoinAt:      user.JoinAt,
				LastLoginAt: user.LastLoginAt,
			},
		})
	}
}
