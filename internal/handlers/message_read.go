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

// ReadMarker defines the interface that the message service must
// implement for marking messages read.
type ReadMarker interface {
	MarkRead(ctx context.Context, identity string, id uuid.UUID) (*models.MessageDB, error)
}

// ReadMessage carries the read receipt.
type ReadMessage struct {
	ID     string     `json:"id"`
	ReadAt *time.Time `json:"read_at"`
}

// MarkReadResponse represents a successful mark-read response
// swagger:model MarkReadResponse
type MarkReadResponse struct {
	Message ReadMessage `json:"message"`
}

// NewMarkReadHandler returns an HTTP handler for marking a message read.
// @Summary Mark a message read
// @Description Sets the read receipt; only the recipient may do this
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param id path string true "Message ID"
// @Success 200 {object} handlers.MarkReadResponse "Read receipt set"
// @Failure 400 {object} handlers.ErrorResponse "Malformed message ID"
// @Failure 401 {object} handlers.ErrorResponse "Not the recipient"
// @Failure 404 {object} handlers.ErrorResponse "Unknown message"
// @Router /messages/{id}/read [post]
func NewMarkReadHandler(svc ReadMarker) http.HandlerFunc {
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

		msg, err := svc.MarkRead(r.Context(), identity, id)
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

		writeJSON(w, http.StatusOK, MarkReadResponse{
			Message: ReadMessage{
				ID:     msg.MessageID.String(),
				ReadAt: msg.ReadAt,
			},
		})
	}
}
