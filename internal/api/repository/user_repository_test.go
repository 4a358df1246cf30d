package repository

import (
	"context"
	"testing"

	"github.com/Moosaa95/Chat/internal/api/models"
	"github.com/Moosaa95/Chat/internal/db"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	pool, err := db.Connect(":memory:")
	require.NoError(t, err)
	// A second connection would open a second empty in-memory database.
	pool.SetMaxOpenConns(1)
	require.NoError(t, db.Initialize(pool))
	t.Cleanup(func() { _ = pool.Close() })
	return pool
}

func createTestUser(t *testing.T, repo UserRepository, username string, credits int64) *models.User {
	t.Helper()
	user := &models.User{Username: username, Credits: credits}
	require.NoError(t, repo.CreateUser(context.Background(), user, "secret1"))
	return user
}

func TestCreateUser(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	user := createTestUser(t, repo, "alice", 4000)

	require.NotZero(t, user.ID)
	require.True(t, user.IsActive)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret1")))

	got, err := repo.GetUserByUsername(context.Background(), "alice")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, user.ID, got.ID)
	require.Equal(t, int64(4000), got.Credits)
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	createTestUser(t, repo, "alice", 4000)

	err := repo.CreateUser(context.Background(), &models.User{Username: "alice", Credits: 4000}, "other12")
	require.ErrorIs(t, err, ErrUsernameTaken)
}

func TestGetUserByUsername_Missing(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))

	got, err := repo.GetUserByUsername(context.Background(), "nobody")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestGetUserByID_Missing(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))

	_, err := repo.GetUserByID(context.Background(), 42)
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestDeductCredits(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	user := createTestUser(t, repo, "alice", 4000)

	balance, err := repo.DeductCredits(context.Background(), user.ID, 100)
	require.NoError(t, err)
	require.Equal(t, int64(3900), balance)

	balance, err = repo.GetCredits(context.Background(), user.ID)
	require.NoError(t, err)
	require.Equal(t, int64(3900), balance)
}

func TestDeductCredits_Insufficient(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	user := createTestUser(t, repo, "alice", 50)

	_, err := repo.DeductCredits(context.Background(), user.ID, 100)
	require.ErrorIs(t, err, ErrInsufficientCredits)

	balance, err := repo.GetCredits(context.Background(), user.ID)
	require.NoError(t, err)
	require.Equal(t, int64(50), balance)
}

func TestDeductCredits_ExactBalance(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	user := createTestUser(t, repo, "alice", 100)

	balance, err := repo.DeductCredits(context.Background(), user.ID, 100)
	require.NoError(t, err)
	require.Equal(t, int64(0), balance)

	_, err = repo.DeductCredits(context.Background(), user.ID, 100)
	require.ErrorIs(t, err, ErrInsufficientCredits)
}

func TestDeductCredits_UnknownUser(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))

	_, err := repo.DeductCredits(context.Background(), 42, 100)
	require.ErrorIs(t, err, ErrUserNotFound)
}
