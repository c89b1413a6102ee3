package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"messagely/internal/logger"
	"messagely/internal/middlewares"
	"messagely/internal/models"
	"messagely/internal/services"
)

// MessageSender defines the interface that the message service must
// implement for message creation.
type MessageSender interface {
	Send(ctx context.Context, identity, toUsername, body string) (*models.MessageDB, error)
}

// CreateMessageRequest represents the JSON body for message creation.
// The sender is derived from the authenticated session, so the payload
// carries only the recipient and the body.
// swagger:model CreateMessageRequest
type CreateMessageRequest struct {
	// Recipient username
	// required: true
	// example: bob
	ToUsername string `json:"to_username" validate:"required"`

	// Message body
	// required: true
	// example: hi
	Body string `json:"body" validate:"required"`
}

// CreatedMessage is the stored message returned after creation.
type CreatedMessage struct {
	ID           string    `json:"id"`
	FromUsername string    `json:"from_username"`
	ToUsername   string    `json:"to_username"`
	Body         string    `json:"body"`
	SentAt       time.Time `json:"sent_at"`
}

// CreateMessageResponse represents a successful message creation response
// swagger:model CreateMessageResponse
type CreateMessageResponse struct {
	Message CreatedMessage `json:"message"`
}

// NewCreateMessageHandler returns an HTTP handler for message creation.
// @Summary Send a message
// @Description Creates a message from the authenticated user to the given recipient
// @Tags messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param createMessageRequest body handlers.CreateMessageRequest true "Message creation request"
// @Success 201 {object} handlers.CreateMessageResponse "Message created"
// @Failure 400 {object} handlers.ErrorResponse "Missing fields"
// @Failure 401 {object} handlers.ErrorResponse "Missing identity"
// @Failure 404 {object} handlers.ErrorResponse "Unknown recipient"
// @Router /messages [post]
func NewCreateMessageHandler(svc MessageSender) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := middlewares.GetUsernameFromContext(r.Context())
		if identity == "" {
			writeError(w, http.StatusUnauthorized, "authorization required")
			return
		}

		var req CreateMessageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := validate.Struct(req); err != nil {
			writeError(w, http.StatusBadRequest, "to_username and body are required")
			return
		}

		msg, err := svc.Send(r.Context(), identity, req.ToUsername, req.Body)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUserDoesNotExist):
				writeError(w, http.StatusNotFound, "recipient does not exist")
			case errors.Is(err, services.ErrAccessDenied):
				writeError(w, http.StatusUnauthorized, "access denied")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "internal server error")
			}
			return
		}

		writeJSON(w, http.StatusCreated, CreateMessageResponse{
			Message: CreatedMessage{
				ID:           msg.MessageID.String(),
				FromUsername: msg.FromUsername,
				ToUsername:   msg.ToUsername,
				Body:         msg.Body,
				SentAt:       msg.SentAt,
			},
		})
	}
}
