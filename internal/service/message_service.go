package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/casafind/casafind-api/internal/domain"
	"github.com/casafind/casafind-api/internal/platform/logger"
	"github.com/casafind/casafind-api/internal/store"
)

// SendMessageInput is a new message from the caller.
type SendMessageInput struct {
	ReceiverID uuid.UUID
	PropertyID uuid.UUID
	Content    string
}

// MessagePage is one page of a user's messages.
type MessagePage struct {
	Messages   []domain.MessageView `json:"messages"`
	Pagination domain.Pagination    `json:"pagination"`
}

// MessageService provides messaging between users about listings.
type MessageService interface {
	// List returns the messages the user sent or received, newest first.
	List(ctx context.Context, userID uuid.UUID, unreadOnly bool, rawPage, rawLimit string) (*MessagePage, error)

	// Conversation returns the messages between userID and otherID about a
	// listing, oldest first.
	Conversation(ctx context.Context, userID, propertyID, otherID uuid.UUID) ([]domain.MessageView, error)

	// Get returns a message the user participates in. Returns
	// ErrNotParticipant for other users' messages.
	Get(ctx context.Context, userID, id uuid.UUID) (*domain.MessageView, error)

	// Send delivers a message from senderID.
	Send(ctx context.Context, senderID uuid.UUID, in SendMessageInput) (*domain.Message, error)

	// MarkRead flags a received message as read. Only the receiver may do so.
	MarkRead(ctx context.Context, userID, id uuid.UUID) error

	// Delete removes a message. Only the sender may do so.
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type messageService struct {
	messages store.MessageStore
	logger   *slog.Logger
}

// NewMessageService creates a new MessageService.
func NewMessageService(messages store.MessageStore, logger *slog.Logger) (MessageService, error) {
	if messages == nil {
		return nil, domain.NewValidationError("messages", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &messageService{
		messages: messages,
		logger:   logger.With(slog.String("component", "message_service")),
	}, nil
}

// List implements MessageService.List
func (s *messageService) List(
	ctx context.Context,
	userID uuid.UUID,
	unreadOnly bool,
	rawPage, rawLimit string,
) (*MessagePage, error) {
	filter := domain.MessageFilter{
		UserID:     userID,
		UnreadOnly: unreadOnly,
		Page:       domain.NewPage(rawPage, rawLimit),
	}

	messages, total, err := s.messages.ListForUser(ctx, filter)
	if err != nil {
		return nil, opError("message", "list", err)
	}
	if messages == nil {
		messages = []domain.MessageView{}
	}

	return &MessagePage{
		Messages:   messages,
		Pagination: domain.NewPagination(total, filter.Page),
	}, nil
}

// Conversation implements MessageService.Conversation
func (s *messageService) Conversation(
	ctx context.Context,
	userID, propertyID, otherID uuid.UUID,
) ([]domain.MessageView, error) {
	messages, err := s.messages.ListConversation(ctx, propertyID, userID, otherID)
	if err != nil {
		return nil, opError("message", "conversation", err)
	}
	if messages == nil {
		messages = []domain.MessageView{}
	}
	return messages, nil
}

// Get implements MessageService.Get
func (s *messageService) Get(ctx context.Context, userID, id uuid.UUID) (*domain.MessageView, error) {
	message, err := s.messages.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrMessageNotFound) {
			return nil, err
		}
		return nil, opError("message", "get", err)
	}
	if !message.IsParticipant(userID) {
		return nil, ErrNotParticipant
	}
	return message, nil
}

// Send implements MessageService.Send
func (s *messageService) Send(
	ctx context.Context,
	senderID uuid.UUID,
	in SendMessageInput,
) (*domain.Message, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	message, err := domain.NewMessage(senderID, in.ReceiverID, in.PropertyID, in.Content)
	if err != nil {
		return nil, err
	}

	if err := s.messages.Create(ctx, message); err != nil {
		if errors.Is(err, store.ErrUserNotFound) || errors.Is(err, store.ErrPropertyNotFound) {
			return nil, err
		}
		return nil, opError("message", "send", err)
	}

	log.Debug("message sent",
		slog.String("message_id", message.ID.String()),
		slog.String("property_id", message.PropertyID.String()))
	return message, nil
}

// MarkRead implements MessageService.MarkRead
func (s *messageService) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	err := s.messages.MarkRead(ctx, id, userID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrMessageNotFound) {
		return opError("message", "mark read", err)
	}
	return s.refusal(ctx, id, ErrNotParticipant)
}

// Delete implements MessageService.Delete
func (s *messageService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	err := s.messages.Delete(ctx, id, userID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrMessageNotFound) {
		return opError("message", "delete", err)
	}
	return s.refusal(ctx, id, ErrNotOwned)
}

// refusal tells a missing message apart from one the caller may not touch
// after a scoped write matched no row.
func (s *messageService) refusal(ctx context.Context, id uuid.UUID, forbidden error) error {
	if _, err := s.messages.GetByID(ctx, id); err != nil {
		if errors.Is(err, store.ErrMessageNotFound) {
			return err
		}
		return opError("message", "lookup", err)
	}
	return forbidden
}
