package repository

import (
	"context"
	"fmt"

	"github.com/Moosaa95/Chat/internal/api/models"

	"github.com/jmoiron/sqlx"
)

// ChatRepository defines the interface for the append-only chat log.
type ChatRepository interface {
	SaveChat(ctx context.Context, chat *models.Chat) error
	GetChatsByUser(ctx context.Context, userID int64) ([]models.Chat, error)
}

type sqliteChatRepository struct {
	db *sqlx.DB
}

// NewChatRepository creates a new SQLite-based ChatRepository.
func NewChatRepository(db *sqlx.DB) ChatRepository {
	return &sqliteChatRepository{db: db}
}

// SaveChat appends one chat entry. Entries are never updated or deleted.
func (r *sqliteChatRepository) SaveChat(ctx context.Context, chat *models.Chat) error {
	query := `INSERT INTO chats (user_id, message, response, created_at) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, chat.UserID, chat.Message, chat.Response, chat.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save chat: %w", err)
	}
	chat.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read new chat id: %w", err)
	}
	return nil
}

// GetChatsByUser returns a user's chat history, oldest first.
func (r *sqliteChatRepository) GetChatsByUser(ctx context.Context, userID int64) ([]models.Chat, error) {
	var chats []models.Chat
	query := `SELECT id, user_id, message, response, created_at FROM chats WHERE user_id = ? ORDER BY created_at, id`
	if err := r.db.SelectContext(ctx, &chats, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get chats: %w", err)
	}
	return chats, nil
}
