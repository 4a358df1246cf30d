package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/Moosaa95/Chat/internal/api/models"
	apirepository "github.com/Moosaa95/Chat/internal/api/repository"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

var chatTracer = otel.Tracer("service.chat")
var chatMeter = otel.Meter("service.chat")

// MessageCost is the fixed number of credits a single chat message costs.
const MessageCost = 100

// ChatService defines the interface for the credit-metered chat flow.
type ChatService interface {
	Send(ctx context.Context, user *models.User, req *models.ChatRequest) (*models.ChatResponse, error)
	History(ctx context.Context, userID int64) ([]models.Chat, error)
}

type chatService struct {
	userRepo     apirepository.UserRepository
	chatRepo     apirepository.ChatRepository
	messagesSent metric.Int64Counter
}

// NewChatService creates a new ChatService.
func NewChatService(userRepo apirepository.UserRepository, chatRepo apirepository.ChatRepository) ChatService {
	messagesSent, err := chatMeter.Int64Counter("chat.messages_sent")
	if err != nil {
		slog.Warn("failed to create chat counter", "error", err)
	}
	return &chatService{
		userRepo:     userRepo,
		chatRepo:     chatRepo,
		messagesSent: messagesSent,
	}
}

// Send charges the fixed cost and records the exchange. The deduction is
// the authorization gate: it happens first, as one atomic conditional
// update, and is not rolled back if persisting the log entry fails
// afterwards. The response itself is a deterministic echo.
func (s *chatService) Send(ctx context.Context, user *models.User, req *models.ChatRequest) (*models.ChatResponse, error) {
	ctx, span := chatTracer.Start(ctx, "ChatService.Send", trace.WithAttributes(
		attribute.Int64("user.id", user.ID),
		attribute.Int("message.length", len(req.Message)),
	))
	defer span.End()

	balance, err := s.userRepo.DeductCredits(ctx, user.ID, MessageCost)
	if err != nil {
		return nil, err
	}

	response := "Echo: " + req.Message

	chat := &models.Chat{
		UserID:    user.ID,
		Message:   req.Message,
		Response:  response,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.chatRepo.SaveChat(ctx, chat); err != nil {
		// The cost has already been charged at this point. See DESIGN.md
		// for why the deduction is left in place.
		slog.ErrorContext(ctx, "chat log write failed after deduction",
			"user_id", user.ID, "error", err)
		span.RecordError(err)
		return nil, err
	}

	if s.messagesSent != nil {
		s.messagesSent.Add(ctx, 1, metric.WithAttributes(attribute.Int64("user.id", user.ID)))
	}

	return &models.ChatResponse{
		Response:        response,
		RemainingTokens: balance,
	}, nil
}

// History returns the user's chat log, oldest first. Free of charge.
func (s *chatService) History(ctx context.Context, userID int64) ([]models.Chat, error) {
	ctx, span := chatTracer.Start(ctx, "ChatService.History")
	defer span.End()

	return s.chatRepo.GetChatsByUser(ctx, userID)
}
