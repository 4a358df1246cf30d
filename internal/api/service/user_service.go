package service

import (
	"context"
	"errors"

	"github.com/Moosaa95/Chat/internal/api/models"
	apirepository "github.com/Moosaa95/Chat/internal/api/repository"
	"github.com/Moosaa95/Chat/internal/repository"

	"go.opentelemetry.io/otel"
	"golang.org/x/crypto/bcrypt"
)

var userTracer = otel.Tracer("service.user")

// StartingCredits is the balance granted to every new account.
const StartingCredits = 4000

// ErrInvalidCredentials is returned for unknown usernames and wrong
// passwords alike, so a caller cannot tell which check failed.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserService defines the interface for user-related business logic.
type UserService interface {
	Register(ctx context.Context, req *models.RegisterRequest) error
	Login(ctx context.Context, req *models.LoginRequest) (string, error)
	Balance(ctx context.Context, userID int64) (int64, error)
}

type userService struct {
	userRepo  apirepository.UserRepository
	tokenRepo repository.TokenRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo apirepository.UserRepository, tokenRepo repository.TokenRepository) UserService {
	return &userService{userRepo: userRepo, tokenRepo: tokenRepo}
}

// Register handles user registration.
func (s *userService) Register(ctx context.Context, req *models.RegisterRequest) error {
	ctx, span := userTracer.Start(ctx, "UserService.Register")
	defer span.End()

	// Check if user already exists
	existingUser, err := s.userRepo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		return err
	}
	if existingUser != nil {
		return apirepository.ErrUsernameTaken
	}

	user := &models.User{
		Username: req.Username,
		Credits:  StartingCredits,
	}

	// The UNIQUE constraint still backs this up if two registrations race.
	return s.userRepo.CreateUser(ctx, user, req.Password)
}

// Login verifies the credentials and issues a fresh opaque token. A second
// login rotates the key, invalidating the one issued before.
func (s *userService) Login(ctx context.Context, req *models.LoginRequest) (string, error) {
	ctx, span := userTracer.Start(ctx, "UserService.Login")
	defer span.End()

	user, err := s.userRepo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.tokenRepo.Issue(ctx, user.ID)
}

// Balance returns the user's current credit balance. Read-only.
func (s *userService) Balance(ctx context.Context, userID int64) (int64, error) {
	ctx, span := userTracer.Start(ctx, "UserService.Balance")
	defer span.End()

	return s.userRepo.GetCredits(ctx, userID)
}
