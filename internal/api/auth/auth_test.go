package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/Moosaa95/Chat/internal/api/models"
	apirepository "github.com/Moosaa95/Chat/internal/api/repository"
	"github.com/Moosaa95/Chat/internal/repository"

	"github.com/stretchr/testify/require"
)

type fakeTokenRepo struct {
	byKey map[string]int64
}

func (f *fakeTokenRepo) Issue(ctx context.Context, userID int64) (string, error) {
	return "", errors.New("not implemented")
}

func (f *fakeTokenRepo) Resolve(ctx context.Context, key string) (int64, error) {
	if id, ok := f.byKey[key]; ok {
		return id, nil
	}
	return 0, repository.ErrTokenNotFound
}

func (f *fakeTokenRepo) Revoke(ctx context.Context, userID int64) error {
	return nil
}

type fakeUserRepo struct {
	byID map[int64]*models.User
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, user *models.User, password string) error {
	return errors.New("not implemented")
}

func (f *fakeUserRepo) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, apirepository.ErrUserNotFound
}

func (f *fakeUserRepo) DeductCredits(ctx context.Context, id int64, amount int64) (int64, error) {
	return 0, errors.New("not implemented")
}

func (f *fakeUserRepo) GetCredits(ctx context.Context, id int64) (int64, error) {
	return 0, errors.New("not implemented")
}

func newTestAuthenticator() *Authenticator {
	tokens := &fakeTokenRepo{byKey: map[string]int64{
		"goodkey":     1,
		"inactivekey": 2,
		"orphankey":   3,
	}}
	users := &fakeUserRepo{byID: map[int64]*models.User{
		1: {ID: 1, Username: "alice", IsActive: true},
		2: {ID: 2, Username: "bob", IsActive: false},
	}}
	return NewAuthenticator(tokens, users)
}

func TestAuthenticate_HeaderParsing(t *testing.T) {
	a := newTestAuthenticator()

	tests := []struct {
		name        string
		header      string
		wantNoCreds bool
		wantMessage string
	}{
		{
			name:        "missing header",
			header:      "",
			wantNoCreds: true,
		},
		{
			name:        "different scheme",
			header:      "Bearer goodkey",
			wantNoCreds: true,
		},
		{
			name:        "scheme without key",
			header:      "Token",
			wantMessage: "Invalid token header. No credentials provided.",
		},
		{
			name:        "key containing spaces",
			header:      "Token good key",
			wantMessage: "Invalid token header. Token string should not contain spaces.",
		},
		{
			name:        "key with invalid bytes",
			header:      "Token \xff\xfe",
			wantMessage: "Invalid token header. Token string should not contain invalid characters.",
		},
		{
			name:        "unknown key",
			header:      "Token nosuchkey",
			wantMessage: "Invalid Token",
		},
		{
			name:        "token for deleted user",
			header:      "Token orphankey",
			wantMessage: "Invalid Token",
		},
		{
			name:        "inactive user",
			header:      "Token inactivekey",
			wantMessage: "User inactive or deleted.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, _, err := a.Authenticate(context.Background(), tt.header)
			require.Error(t, err)
			require.Nil(t, user)
			if tt.wantNoCreds {
				require.ErrorIs(t, err, ErrNoCredentials)
				return
			}
			var authErr *Error
			require.ErrorAs(t, err, &authErr)
			require.Equal(t, tt.wantMessage, authErr.Message)
		})
	}
}

func TestAuthenticate_Success(t *testing.T) {
	a := newTestAuthenticator()

	user, key, err := a.Authenticate(context.Background(), "Token goodkey")
	require.NoError(t, err)
	require.Equal(t, "alice", user.Username)
	require.Equal(t, "goodkey", key)
}

func TestAuthenticate_SchemeIsCaseInsensitive(t *testing.T) {
	a := newTestAuthenticator()

	user, _, err := a.Authenticate(context.Background(), "token goodkey")
	require.NoError(t, err)
	require.Equal(t, int64(1), user.ID)
}
