package postgres

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/casafind/casafind-api/internal/domain"
	"github.com/casafind/casafind-api/internal/platform/logger"
	"github.com/casafind/casafind-api/internal/store"
)

const messageViewSelect = `
	SELECT m.id, m.sender_id, m.receiver_id, m.property_id, m.content, m.is_read,
	       m.created_at, m.updated_at,
	       s.name AS sender_name, r.name AS receiver_name, p.title AS property_title
	FROM messages m
	JOIN users s ON s.id = m.sender_id
	JOIN users r ON r.id = m.receiver_id
	JOIN properties p ON p.id = m.property_id`

var messageForeignKeys = map[string]error{
	"messages_receiver_id_fkey": store.ErrUserNotFound,
	"messages_sender_id_fkey":   store.ErrUserNotFound,
	"messages_property_id_fkey": store.ErrPropertyNotFound,
}

// PostgresMessageStore implements the store.MessageStore interface
// using a PostgreSQL database as the storage backend.
type PostgresMessageStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresMessageStore creates a new PostgreSQL implementation of the MessageStore interface.
func NewPostgresMessageStore(db store.DBTX, logger *slog.Logger) *PostgresMessageStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresMessageStore{
		db:     db,
		logger: logger.With(slog.String("component", "message_store")),
	}
}

var _ store.MessageStore = (*PostgresMessageStore)(nil)

// WithTx implements store.MessageStore.WithTx
func (s *PostgresMessageStore) WithTx(tx *sqlx.Tx) store.MessageStore {
	return &PostgresMessageStore{db: tx, logger: s.logger}
}

// Create implements store.MessageStore.Create
func (s *PostgresMessageStore) Create(ctx context.Context, m *domain.Message) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := m.Validate(); err != nil {
		log.Warn("message validation failed during create",
			slog.String("error", err.Error()),
			slog.String("message_id", m.ID.String()))
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO messages (id, sender_id, receiver_id, property_id, content, is_read, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		m.ID, m.SenderID, m.ReceiverID, m.PropertyID, m.Content, m.IsRead, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Debug("message references a missing row",
				slog.String("constraint", ConstraintName(err)))
			return mapForeignKey(err, messageForeignKeys)
		}
		log.Error("failed to create message",
			slog.String("error", err.Error()),
			slog.String("message_id", m.ID.String()))
		return MapError(err)
	}

	log.Info("message created",
		slog.String("message_id", m.ID.String()),
		slog.String("property_id", m.PropertyID.String()))
	return nil
}

// GetByID implements store.MessageStore.GetByID
func (s *PostgresMessageStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.MessageView, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var view domain.MessageView
	err := sqlx.GetContext(ctx, s.db, &view, messageViewSelect+` WHERE m.id = $1`, id)
	if err != nil {
		mapped := MapError(err)
		if errors.Is(mapped, store.ErrNotFound) {
			log.Debug("message not found", slog.String("message_id", id.String()))
			return nil, store.ErrMessageNotFound
		}
		log.Error("failed to get message",
			slog.String("error", err.Error()),
			slog.String("message_id", id.String()))
		return nil, mapped
	}
	return &view, nil
}

// ListForUser implements store.MessageStore.ListForUser
func (s *PostgresMessageStore) ListForUser(
	ctx context.Context,
	filter domain.MessageFilter,
) ([]domain.MessageView, int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	where := ` WHERE (m.sender_id = $1 OR m.receiver_id = $1)`
	if filter.UnreadOnly {
		where = ` WHERE m.receiver_id = $1 AND NOT m.is_read`
	}

	var total int
	if err := sqlx.GetContext(ctx, s.db, &total,
		`SELECT COUNT(*) FROM messages m`+where, filter.UserID); err != nil {
		log.Error("failed to count messages", slog.String("error", err.Error()))
		return nil, 0, MapError(err)
	}

	messages := []domain.MessageView{}
	if total > filter.Page.Offset() {
		err := sqlx.SelectContext(ctx, s.db, &messages,
			messageViewSelect+where+` ORDER BY m.created_at DESC, m.id DESC LIMIT $2 OFFSET $3`,
			filter.UserID, filter.Page.Limit, filter.Page.Offset())
		if err != nil {
			log.Error("failed to list messages",
				slog.String("error", err.Error()),
				slog.String("user_id", filter.UserID.String()))
			return nil, 0, MapError(err)
		}
	}

	return messages, total, nil
}

// ListConversation implements store.MessageStore.ListConversation
func (s *PostgresMessageStore) ListConversation(
	ctx context.Context,
	propertyID, userID, otherID uuid.UUID,
) ([]domain.MessageView, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	messages := []domain.MessageView{}
	err := sqlx.SelectContext(ctx, s.db, &messages, messageViewSelect+`
		WHERE m.property_id = $1
		  AND ((m.sender_id = $2 AND m.receiver_id = $3) OR (m.sender_id = $3 AND m.receiver_id = $2))
		ORDER BY m.created_at ASC, m.id ASC`,
		propertyID, userID, otherID)
	if err != nil {
		log.Error("failed to list conversation",
			slog.String("error", err.Error()),
			slog.String("property_id", propertyID.String()))
		return nil, MapError(err)
	}
	return messages, nil
}

// MarkRead implements store.MessageStore.MarkRead
func (s *PostgresMessageStore) MarkRead(ctx context.Context, id, receiverID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `
		UPDATE messages SET is_read = TRUE, updated_at = NOW()
		WHERE id = $1 AND receiver_id = $2`, id, receiverID)
	if err != nil {
		log.Error("failed to mark message read",
			slog.String("error", err.Error()),
			slog.String("message_id", id.String()))
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrMessageNotFound)
}

// Delete implements store.MessageStore.Delete
func (s *PostgresMessageStore) Delete(ctx context.Context, id, senderID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM messages WHERE id = $1 AND sender_id = $2`, id, senderID)
	if err != nil {
		log.Error("failed to delete message",
			slog.String("error", err.Error()),
			slog.String("message_id", id.String()))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, store.ErrMessageNotFound); err != nil {
		return err
	}

	log.Info("message deleted", slog.String("message_id", id.String()))
	return nil
}
