// Package authz holds the per-message access predicates, evaluated after
// the identity has been established from a verified session token.
//
// Read access and mark-read access are deliberately two separate
// predicates: either participant may read a message, but only the
// recipient's read receipt is meaningful.
package authz

import "messagely/internal/models"

// CanReadMessage reports whether identity may view the message.
// True iff identity is the sender or the recipient.
func CanReadMessage(identity string, msg *models.MessageWithUsers) bool {
	return identity == msg.From.Username || identity == msg.To.Username
}

// CanMarkRead reports whether identity may mark the message read.
// True iff identity is the recipient; the sender may not mark their
// own sent message read.
func CanMarkRead(identity string, msg *models.MessageWithUsers) bool {
	return identity == msg.To.Username
}

// CanCreateMessage reports whether identity may send a message with the
// given sender field. The sender must always be derived from the
// authenticated session, never from a client-supplied payload field.
func CanCreateMessage(identity, fromUsername string) bool {
	return identity == fromUsername
}
