package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Moosaa95/Chat/internal/api/auth"
	"github.com/Moosaa95/Chat/internal/api/models"
	apirepository "github.com/Moosaa95/Chat/internal/api/repository"
	"github.com/Moosaa95/Chat/internal/api/response"
	"github.com/Moosaa95/Chat/internal/api/service"

	"github.com/gin-gonic/gin"
)

// ChatController handles the credit-metered chat endpoints.
type ChatController struct {
	chatService service.ChatService
	userService service.UserService
}

// NewChatController creates a new ChatController.
func NewChatController(chatService service.ChatService, userService service.UserService) *ChatController {
	return &ChatController{
		chatService: chatService,
		userService: userService,
	}
}

// Chat handles a single chat message: charges the fixed cost and returns
// the echo response together with the remaining balance.
func (cc *ChatController) Chat(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		response.ErrorResponse(c, http.StatusUnauthorized, "Authentication credentials were not provided.")
		return
	}

	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationErrorResponse(c, err)
		return
	}

	result, err := cc.chatService.Send(c.Request.Context(), user, &req)
	if err != nil {
		if errors.Is(err, apirepository.ErrInsufficientCredits) {
			response.ErrorResponse(c, http.StatusForbidden, "Insufficient tokens.")
			return
		}
		slog.ErrorContext(c.Request.Context(), "chat request failed", "user_id", user.ID, "error", err)
		response.ErrorResponse(c, http.StatusInternalServerError, "internal error")
		return
	}

	response.SuccessResponse(c, result)
}

// History returns the caller's chat log.
func (cc *ChatController) History(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		response.ErrorResponse(c, http.StatusUnauthorized, "Authentication credentials were not provided.")
		return
	}

	chats, err := cc.chatService.History(c.Request.Context(), user.ID)
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "history query failed", "user_id", user.ID, "error", err)
		response.ErrorResponse(c, http.StatusInternalServerError, "internal error")
		return
	}
	if chats == nil {
		chats = []models.Chat{}
	}

	response.SuccessResponse(c, gin.H{"chats": chats})
}

// Balance handles the read-only balance query endpoint.
func (cc *ChatController) Balance(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		response.ErrorResponse(c, http.StatusUnauthorized, "Authentication credentials were not provided.")
		return
	}

	balance, err := cc.userService.Balance(c.Request.Context(), user.ID)
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "balance query failed", "user_id", user.ID, "error", err)
		response.ErrorResponse(c, http.StatusInternalServerError, "internal error")
		return
	}

	response.SuccessResponse(c, models.BalanceResponse{Tokens: balance})
}
