package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/casafind/casafind-api/internal/domain"
)

// MessageStore defines the interface for message persistence.
type MessageStore interface {
	// Create saves a message. Returns ErrUserNotFound if the receiver does
	// not exist and ErrPropertyNotFound if the listing does not exist.
	Create(ctx context.Context, message *domain.Message) error

	// GetByID retrieves a message with participant names.
	// Returns ErrMessageNotFound if it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.MessageView, error)

	// ListForUser returns one page of messages sent or received by
	// filter.UserID, newest first, and the total number of matches.
	ListForUser(ctx context.Context, filter domain.MessageFilter) ([]domain.MessageView, int, error)

	// ListConversation returns the messages exchanged between two users about
	// a listing, oldest first.
	ListConversation(ctx context.Context, propertyID, userID, otherID uuid.UUID) ([]domain.MessageView, error)

	// MarkRead flags a message addressed to receiverID as read.
	// Returns ErrMessageNotFound when no such message exists.
	MarkRead(ctx context.Context, id, receiverID uuid.UUID) error

	// Delete removes a message sent by senderID.
	// Returns ErrMessageNotFound when no such message exists.
	Delete(ctx context.Context, id, senderID uuid.UUID) error

	// WithTx returns a MessageStore bound to tx.
	WithTx(tx *sqlx.Tx) MessageStore
}
