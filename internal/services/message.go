package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"messagely/internal/authz"
	"messagely/internal/logger"
	"messagely/internal/models"
)

// Error variables
var (
	ErrMessageNotFound = errors.New("message does not exist")
	ErrAccessDenied    = errors.New("access denied")
)

// MessageReader defines read-only operations for messages.
type MessageReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.MessageWithUsers, error)
}

// MessageWriter defines write operations for messages.
type MessageWriter interface {
	Save(ctx context.Context, fromUsername, toUsername, body string) (*models.MessageDB, error)
	MarkRead(ctx context.Context, id uuid.UUID) (*models.MessageDB, error)
}

// EventPublisher emits message lifecycle events.
type EventPublisher interface {
	MessageSent(ctx context.Context, msg *models.MessageDB) error
	MessageRead(ctx context.Context, msg *models.MessageDB) error
}

// MessageService enforces the message access policy around the store.
type MessageService struct {
	reader MessageReader
	writer MessageWriter
	users  UserReader
	events EventPublisher // nil disables event publishing
}

// NewMessageService creates a new MessageService instance. events may
// be nil when no broker is configured.
func NewMessageService(reader MessageReader, writer MessageWriter, users UserReader, events EventPublisher) *MessageService {
	return &MessageService{
		reader: reader,
		writer: writer,
		users:  users,
		events: events,
	}
}

// Send creates a message from the authenticated identity to toUsername.
// The sender is always the verified identity; a client-supplied sender
// field is never consulted.
func (svc *MessageService) Send(ctx context.Context, identity, toUsername, body string) (*models.MessageDB, error) {
	fromUsername := identity
	if !authz.CanCreateMessage(identity, fromUsername) {
		logger.Log.Errorw("sender does not match identity", "identity", identity, "from", fromUsername)
		return nil, ErrAccessDenied
	}

	recipient, err := svc.users.GetByUsername(ctx, toUsername)
	if err != nil {
		logger.Log.Errorw("failed to check recipient", "err", err)
		return nil, err
	}
	if recipient == nil {
		logger.Log.Errorw("recipient does not exist", "to", toUsername)
		return nil, ErrUserDoesNotExist
	}

	msg, err := svc.writer.Save(ctx, fromUsername, toUsername, body)
	if err != nil {
		logger.Log.Errorw("failed to save message", "err", err)
		return nil, err
	}

	if svc.events != nil {
		if err := svc.events.MessageSent(ctx, msg); err != nil {
			logger.Log.Errorw("failed to publish message.sent", "err", err)
		}
	}

	return msg, nil
}

// Get returns the message with both participant profiles if the
// identity is the sender or the recipient.
func (svc *MessageService) Get(ctx context.Context, identity string, id uuid.UUID) (*models.MessageWithUsers, error) {
	msg, err := svc.reader.GetByID(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to get message", "err", err)
		return nil, err
	}
	if msg == nil {
		return nil, ErrMessageNotFound
	}

	if !authz.CanReadMessage(identity, msg) {
		logger.Log.Errorw("read denied", "identity", identity, "message_id", id)
		return nil, ErrAccessDenied
	}

	return msg, nil
}

// MarkRead marks the message read if the identity is the recipient.
// The transition is one-way; repeat calls keep the original timestamp.
func (svc *MessageService) MarkRead(ctx context.Context, identity string, id uuid.UUID) (*models.MessageDB, error) {
	msg, err := svc.reader.GetByID(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to get message", "err", err)
		return nil, err
	}
	if msg == nil {
		return nil, ErrMessageNotFound
	}

	if !authz.CanMarkRead(identity, msg) {
		logger.Log.Errorw("mark-read denied", "identity", identity, "message_id", id)
		return nil, ErrAccessDenied
	}

	marked, err := svc.writer.MarkRead(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to mark message read", "err", err)
		return nil, err
	}
	if marked == nil {
		return nil, ErrMessageNotFound
	}

	if svc.events != nil {
		if err := svc.events.MessageRead(ctx, marked); err != nil {
			logger.Log.Errorw("failed to publish message.read", "err", err)
		}
	}

	return marked, nil
}
