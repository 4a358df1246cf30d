package auth

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/Moosaa95/Chat/internal/api/models"
	apirepository "github.com/Moosaa95/Chat/internal/api/repository"
	"github.com/Moosaa95/Chat/internal/repository"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("auth")

// Keyword is the expected scheme in the Authorization header.
const Keyword = "Token"

// ErrNoCredentials means no usable credential was presented at all. It is
// not a protocol violation; whether the request may proceed is decided by
// the endpoint (protected endpoints reject it with 401).
var ErrNoCredentials = errors.New("authentication credentials were not provided")

// Error is an authentication failure carrying the message shown to the
// caller. All failures share this kind but keep distinguishable messages.
type Error struct {
	Message string
}

func (e *Error) Error() string { return e.Message }

func failed(msg string) error { return &Error{Message: msg} }

// Authenticator resolves bearer credentials to users. Read-only.
type Authenticator struct {
	tokens repository.TokenRepository
	users  apirepository.UserRepository
}

// NewAuthenticator creates a new Authenticator.
func NewAuthenticator(tokens repository.TokenRepository, users apirepository.UserRepository) *Authenticator {
	return &Authenticator{tokens: tokens, users: users}
}

// Authenticate parses a raw Authorization header value of the form
// "Token <opaque-key>" and resolves it to the owning user. It returns the
// user together with the presented key.
func (a *Authenticator) Authenticate(ctx context.Context, header string) (*models.User, string, error) {
	ctx, span := tracer.Start(ctx, "Authenticator.Authenticate")
	defer span.End()

	parts := strings.Fields(header)
	if len(parts) == 0 {
		return nil, "", ErrNoCredentials
	}
	if !strings.EqualFold(parts[0], Keyword) {
		return nil, "", ErrNoCredentials
	}
	if len(parts) == 1 {
		return nil, "", failed("Invalid token header. No credentials provided.")
	}
	if len(parts) > 2 {
		return nil, "", failed("Invalid token header. Token string should not contain spaces.")
	}
	key := parts[1]
	if !utf8.ValidString(key) {
		return nil, "", failed("Invalid token header. Token string should not contain invalid characters.")
	}

	userID, err := a.tokens.Resolve(ctx, key)
	if err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			return nil, "", failed("Invalid Token")
		}
		return nil, "", err
	}

	user, err := a.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apirepository.ErrUserNotFound) {
			return nil, "", failed("Invalid Token")
		}
		return nil, "", err
	}
	if !user.IsActive {
		return nil, "", failed("User inactive or deleted.")
	}

	return user, key, nil
}
