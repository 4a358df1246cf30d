package repository

import (
	"context"
	"testing"
	"time"

	"github.com/Moosaa95/Chat/internal/api/models"

	"github.com/stretchr/testify/require"
)

func TestSaveChat_AppendOnly(t *testing.T) {
	pool := newTestDB(t)
	users := NewUserRepository(pool)
	chats := NewChatRepository(pool)
	user := createTestUser(t, users, "alice", 4000)

	first := &models.Chat{
		UserID:    user.ID,
		Message:   "hi",
		Response:  "Echo: hi",
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, chats.SaveChat(context.Background(), first))
	require.NotZero(t, first.ID)

	second := &models.Chat{
		UserID:    user.ID,
		Message:   "again",
		Response:  "Echo: again",
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, chats.SaveChat(context.Background(), second))

	history, err := chats.GetChatsByUser(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	require.Equal(t, "hi", history[0].Message)
	require.Equal(t, "Echo: again", history[1].Response)
}

func TestGetChatsByUser_Empty(t *testing.T) {
	pool := newTestDB(t)
	users := NewUserRepository(pool)
	chats := NewChatRepository(pool)
	user := createTestUser(t, users, "alice", 4000)

	history, err := chats.GetChatsByUser(context.Background(), user.ID)
	require.NoError(t, err)
	require.Empty(t, history)
}
