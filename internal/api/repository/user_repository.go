package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Moosaa95/Chat/internal/api/models"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	// DeductCredits atomically subtracts amount from the user's balance,
	// but only if the balance covers it. Returns the new balance, or
	// ErrInsufficientCredits with the balance unchanged.
	DeductCredits(ctx context.Context, id int64, amount int64) (int64, error)
	GetCredits(ctx context.Context, id int64) (int64, error)
}

type sqliteUserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new SQLite-based UserRepository.
func NewUserRepository(db *sqlx.DB) UserRepository {
	return &sqliteUserRepository{db: db}
}

// CreateUser hashes the password and inserts a new user into the database.
func (r *sqliteUserRepository) CreateUser(ctx context.Context, user *models.User, password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = string(hashedPassword)
	user.IsActive = true

	query := `INSERT INTO users (username, password_hash, credits, is_active) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, user.Username, user.PasswordHash, user.Credits, user.IsActive)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrUsernameTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	user.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read new user id: %w", err)
	}
	return nil
}

// GetUserByUsername retrieves a user from the database by their username.
func (r *sqliteUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	query := `SELECT id, username, password_hash, credits, is_active FROM users WHERE username = ?`
	err := r.db.GetContext(ctx, &user, query, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // No user found is not an application error
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return &user, nil
}

// GetUserByID retrieves a user from the database by their id.
func (r *sqliteUserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	query := `SELECT id, username, password_hash, credits, is_active FROM users WHERE id = ?`
	err := r.db.GetContext(ctx, &user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return &user, nil
}

// DeductCredits performs the balance check and the decrement as a single
// conditional UPDATE, so two concurrent requests can never both pass the
// check and drive the balance negative.
func (r *sqliteUserRepository) DeductCredits(ctx context.Context, id int64, amount int64) (int64, error) {
	var balance int64
	query := `UPDATE users SET credits = credits - ? WHERE id = ? AND credits >= ? RETURNING credits`
	err := r.db.GetContext(ctx, &balance, query, amount, id, amount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Either the user is gone or the balance does not cover the cost.
			if _, lookupErr := r.GetUserByID(ctx, id); lookupErr != nil {
				return 0, lookupErr
			}
			return 0, ErrInsufficientCredits
		}
		return 0, fmt.Errorf("failed to deduct credits: %w", err)
	}
	return balance, nil
}

// GetCredits returns the user's current balance without touching it.
func (r *sqliteUserRepository) GetCredits(ctx context.Context, id int64) (int64, error) {
	var balance int64
	query := `SELECT credits FROM users WHERE id = ?`
	err := r.db.GetContext(ctx, &balance, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrUserNotFound
		}
		return 0, fmt.Errorf("failed to get credits: %w", err)
	}
	return balance, nil
}
