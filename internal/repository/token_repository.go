package repository

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("repository.token")

// ErrTokenNotFound is returned when a key matches no stored token.
var ErrTokenNotFound = errors.New("token not found")

// TokenRepository defines the interface for opaque session token storage.
// A user holds at most one live token; issuing a new one destroys the old.
type TokenRepository interface {
	// Issue creates a fresh opaque key for the user, invalidating any
	// previously issued key. The replacement is atomic per user.
	Issue(ctx context.Context, userID int64) (string, error)
	// Resolve maps an opaque key back to the owning user id.
	Resolve(ctx context.Context, key string) (int64, error)
	// Revoke removes the user's live token, if any.
	Revoke(ctx context.Context, userID int64) error
}

type redisTokenRepository struct {
	rdb *redis.Client
}

// NewTokenRepository creates a new Redis-based TokenRepository.
func NewTokenRepository(rdb *redis.Client) TokenRepository {
	return &redisTokenRepository{rdb: rdb}
}

func tokenKey(key string) string {
	return fmt.Sprintf("token:%s", key)
}

func userTokenKey(userID int64) string {
	return fmt.Sprintf("user:token:%d", userID)
}

// newKey generates an opaque 32-character hex key.
func newKey() string {
	u := uuid.New()
	return hex.EncodeToString(u[:])
}

// Issue rotates the user's token under WATCH so that two concurrent logins
// can never leave two keys valid at the same time.
func (r *redisTokenRepository) Issue(ctx context.Context, userID int64) (string, error) {
	ctx, span := tracer.Start(ctx, "TokenRepository.Issue")
	defer span.End()

	key := newKey()
	userKey := userTokenKey(userID)

	err := r.rdb.Watch(ctx, func(tx *redis.Tx) error {
		old, err := tx.Get(ctx, userKey).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if old != "" {
				pipe.Del(ctx, tokenKey(old))
			}
			pipe.Set(ctx, tokenKey(key), userID, 0)
			pipe.Set(ctx, userKey, key, 0)
			return nil
		})
		return err
	}, userKey)
	if err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("failed to issue token: %w", err)
	}
	return key, nil
}

// Resolve looks the key up; an unknown key yields ErrTokenNotFound.
func (r *redisTokenRepository) Resolve(ctx context.Context, key string) (int64, error) {
	ctx, span := tracer.Start(ctx, "TokenRepository.Resolve")
	defer span.End()

	val, err := r.rdb.Get(ctx, tokenKey(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrTokenNotFound
		}
		span.RecordError(err)
		return 0, fmt.Errorf("failed to resolve token: %w", err)
	}
	userID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt token mapping for key: %w", err)
	}
	return userID, nil
}

// Revoke deletes both directions of the mapping.
func (r *redisTokenRepository) Revoke(ctx context.Context, userID int64) error {
	ctx, span := tracer.Start(ctx, "TokenRepository.Revoke")
	defer span.End()

	userKey := userTokenKey(userID)
	return r.rdb.Watch(ctx, func(tx *redis.Tx) error {
		old, err := tx.Get(ctx, userKey).Result()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, tokenKey(old))
			pipe.Del(ctx, userKey)
			return nil
		})
		return err
	}, userKey)
}
