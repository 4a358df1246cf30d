package models

import "time"

// Chat is a single entry in the append-only chat log.
type Chat struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"-"`
	Message   string    `db:"message" json:"message"`
	Response  string    `db:"response" json:"response"`
	CreatedAt time.Time `db:"created_at" json:"timestamp"`
}

// ChatRequest defines the structure for a chat request.
type ChatRequest struct {
	Message string `json:"message" binding:"required,max=1000"`
}

// ChatResponse defines the structure for a successful chat response.
type ChatResponse struct {
	Response        string `json:"response"`
	RemainingTokens int64  `json:"remaining_tokens"`
}
