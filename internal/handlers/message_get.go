package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"messagely/internal/logger"
	"messagely/internal/middlewares"
	"messagely/internal/models"
	"messagely/internal/services"
)

// MessageGetter defines the interface that the message service must
// implement for message detail reads.
type MessageGetter interface {
	Get(ctx context.Context, identity string, id uuid.UUID) (*models.MessageWithUsers, error)
}

// MessageDetail is a message with both participant profiles.
type MessageDetail struct {
	ID       string             `json:"id"`
	Body     string             `json:"body"`
	SentAt   time.Time          `json:"sent_at"`
	ReadAt   *time.Time         `json:"read_at"`
	FromUser models.UserProfile `json:"from_user"`
	ToUser   models.UserProfile `json:"to_user"`
}

// GetMessageResponse represents a message detail response
// swagger:model GetMessageResponse
type GetMessageResponse struct {
	Message MessageDetail `json:"message"`
}

// NewGetMessageHandler returns an HTTP handler for message detail.
// @Summary Get a message
// @Description Returns the message if the authenticated user is its sender or recipient
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param id path string true "Message ID"
// @Success 200 {object} handlers.GetMessageResponse "Message returned"
// @Failure 400 {object} handlers.ErrorResponse "Malformed message ID"
// @Failure 401 {object} handlers.ErrorResponse "Not a participant"
// @Failure 404 {object} handlers.ErrorResponse "Unknown message"
// @Router /messages/{id} [get]
func NewGetMessageHandler(svc MessageGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := middlewares.GetUsernameFromContext(r.Context())
		if identity == "" {
			writeError(w, http.StatusUnauthorized, "authorization required")
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid message id")
			return
		}

		msg, err := svc.Get(r.Context(), identity, id)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrMessageNotFound):
				writeError(w, http.StatusNotFound, "message does not exist")
			case errors.Is(err, services.ErrAccessDenied):
				writeError(w, http.StatusUnauthorized, "access denied")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "internal server error")
			}
			return
		}

		writeJSON(w, http.StatusOK, GetMessageResponse{
			Message: MessageDetail{
				ID:       msg.MessageID.String(),
				Body:     msg.Body,
				SentAt:   msg.SentAt,
				ReadAt:   msg.ReadAt,
				FromUser: msg.From,
				ToUser:   msg.To,
			},
		})
	}
}
