package models

import (
	"time"

	"github.com/google/uuid"
)

// MessageDB represents a message row as stored.
// ReadAt is nil until the recipient marks the message read; once set it
// is never cleared.
type MessageDB struct {
	MessageID    uuid.UUID  `db:"message_id"`
	FromUsername string     `db:"from_username"`
	ToUsername   string     `db:"to_username"`
	Body         string     `db:"body"`
	SentAt       time.Time  `db:"sent_at"`
	ReadAt       *time.Time `db:"read_at"`
}

// MessageWithUsers is a message joined with both participant profiles,
// as returned by the message detail endpoint.
type MessageWithUsers struct {
	MessageID uuid.UUID
	Body      string
	SentAt    time.Time
	ReadAt    *time.Time
	From      UserProfile
	To        UserProfile
}

// MessageListItem is one row of a per-user message listing. User holds
// the counterparty profile: the sender for an inbox listing, the
// recipient for an outbox listing.
type MessageListItem struct {
	MessageID uuid.UUID
	Body      string
	SentAt    time.Time
	ReadAt    *time.Time
	User      UserProfile
}
