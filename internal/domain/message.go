package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// MaxMessageLength bounds message content, in characters.
const MaxMessageLength = 5000

// Message is a note from one user to another about a property.
type Message struct {
	ID         uuid.UUID `json:"id"          db:"id"`
	SenderID   uuid.UUID `json:"sender_id"   db:"sender_id"`
	ReceiverID uuid.UUID `json:"receiver_id" db:"receiver_id"`
	PropertyID uuid.UUID `json:"property_id" db:"property_id"`
	Content    string    `json:"content"     db:"content"`
	IsRead     bool      `json:"is_read"     db:"is_read"`
	CreatedAt  time.Time `json:"created_at"  db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"  db:"updated_at"`
}

// NewMessage creates a validated, unread message.
func NewMessage(senderID, receiverID, propertyID uuid.UUID, content string) (*Message, error) {
	now := time.Now().UTC()
	m := &Message{
		ID:         uuid.New(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		PropertyID: propertyID,
		Content:    strings.TrimSpace(content),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate checks if the Message has valid data.
func (m *Message) Validate() error {
	switch {
	case m.ID == uuid.Nil:
		return NewValidationError("id", "cannot be empty", ErrInvalidID)
	case m.SenderID == uuid.Nil:
		return NewValidationError("sender_id", "cannot be empty", ErrInvalidID)
	case m.ReceiverID == uuid.Nil:
		return NewValidationError("receiver_id", "cannot be empty", ErrInvalidID)
	case m.PropertyID == uuid.Nil:
		return NewValidationError("property_id", "cannot be empty", ErrInvalidID)
	case m.SenderID == m.ReceiverID:
		return NewValidationError("receiver_id", "must differ from the sender", ErrSelfMessage)
	case m.Content == "":
		return NewValidationError("content", "cannot be empty", ErrEmptyContent)
	case utf8.RuneCountInString(m.Content) > MaxMessageLength:
		return NewValidationError("content", "must be at most 5000 characters", ErrContentTooLong)
	}
	return nil
}

// IsParticipant reports whether userID sent or received the message.
func (m *Message) IsParticipant(userID uuid.UUID) bool {
	return m.SenderID == userID || m.ReceiverID == userID
}

// MessageView is a message with display names for both parties and the
// title of the property it refers to.
type MessageView struct {
	Message
	SenderName    string `json:"sender_name"    db:"sender_name"`
	ReceiverName  string `json:"receiver_name"  db:"receiver_name"`
	PropertyTitle string `json:"property_title" db:"property_title"`
}

// MessageFilter selects a user's messages.
type MessageFilter struct {
	UserID     uuid.UUID
	UnreadOnly bool
	Page       Page
}
