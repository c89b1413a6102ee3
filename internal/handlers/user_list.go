package handlers

import (
	"context"
	"net/http"

	"messagely/internal/logger"
	"messagely/internal/models"
)

// UsersLister defines the interface that the user service must implement
// for the user directory.
type UsersLister interface {
	List(ctx context.Context) ([]models.UserProfile, error)
}

// ListUsersResponse represents the user directory response
// swagger:model ListUsersResponse
type ListUsersResponse struct {
	Users []models.UserProfile `json:"users"`
}

// NewListUsersHandler returns an HTTP handler for the user directory.
// @Summary List users
// @Description Returns the public profiles of all registered users
// @Tags users
// @Produce json
// @Success 200 {object} handlers.ListUsersResponse "Users returned"
// @Router /users [get]
func NewListUsersHandler(svc UsersLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := svc.List(r.Context())
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		if users == nil {
			users = []models.UserProfile{}
		}

		writeJSON(w, http.StatusOK, ListUsersResponse{Users: users})
	}
}
