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

// UserMessagesLister defines the interface that the user service must
// implement for per-user message listings.
type UserMessagesLister interface {
	MessagesTo(ctx context.Context, username string) ([]models.MessageListItem, error)
	MessagesFrom(ctx context.Context, username string) ([]models.MessageListItem, error)
}

// InboxMessage is one received message with the sender profile.
type InboxMessage struct {
	ID       string             `json:"id"`
	Body     string             `json:"body"`
	SentAt   time.Time          `json:"sent_at"`
	ReadAt   *time.Time         `json:"read_at"`
	FromUser models.UserProfile `json:"from_user"`
}

// OutboxMessage is one sent message with the recipient profile.
type OutboxMessage struct {
	ID     string             `json:"id"`
	Body   string             `json:"body"`
	SentAt time.Time          `json:"sent_at"`
	ReadAt *time.Time         `json:"read_at"`
	ToUser models.UserProfile `json:"to_user"`
}

// MessagesToResponse represents a user's inbox listing
// swagger:model MessagesToResponse
type MessagesToResponse struct {
	Messages []InboxMessage `json:"messages"`
}

// MessagesFromResponse represents a user's outbox listing
// swagger:model MessagesFromResponse
type MessagesFromResponse struct {
	Messages []OutboxMessage `json:"messages"`
}

// NewMessagesToHandler returns an HTTP handler for a user's inbox.
// @Summary List messages to a user
// @Description Returns the messages sent to the user, each with the sender profile
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} handlers.MessagesToResponse "Messages returned"
// @Failure 404 {object} handlers.ErrorResponse "Unknown username"
// @Router /users/{username}/to [get]
func NewMessagesToHandler(svc UserMessagesLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := chi.URLParam(r, "username")

		items, err := svc.MessagesTo(r.Context(), username)
		if err != nil {
			writeListError(w, err)
			return
		}

		messages := make([]InboxMessage, 0, len(items))
		for _, item := range items {
			messages = append(messages, InboxMessage{
				ID:       item.MessageID.String(),
				Body:     item.Body,
				SentAt:   item.SentAt,
				ReadAt:   item.ReadAt,
				FromUser: item.User,
			})
		}

		writeJSON(w, http.StatusOK, MessagesToResponse{Messages: messages})
	}
}

// NewMessagesFromHandler returns an HTTP handler for a user's outbox.
// @Summary List messages from a user
// @Description Returns the messages sent by the user, each with the recipient profile
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} handlers.MessagesFromResponse "Messages returned"
// @Failure 404 {object} handlers.ErrorResponse "Unknown username"
// @Router /users/{username}/from [get]
func NewMessagesFromHandler(svc UserMessagesLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := chi.URLParam(r, "username")

		items, err := svc.MessagesFrom(r.Context(), username)
		if err != nil {
			writeListError(w, err)
			return
		}

		messages := make([]OutboxMessage, 0, len(items))
		for _, item := range items {
			messages = append(messages, OutboxMessage{
				ID:     item.MessageID.String(),
				Body:   item.Body,
				SentAt: item.SentAt,
				ReadAt: item.ReadAt,
				ToUser: item.User,
			})
		}

		writeJSON(w, http.StatusOK, MessagesFromResponse{Messages: messages})
	}
}

func writeListError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrUserDoesNotExist):
		writeError(w, http.StatusNotFound, "username does not exist")
	default:
		logger.Log.Errorw("internal server error", "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
