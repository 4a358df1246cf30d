package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Moosaa95/Chat/internal/api/models"
	apirepository "github.com/Moosaa95/Chat/internal/api/repository"
	"github.com/Moosaa95/Chat/internal/api/response"
	"github.com/Moosaa95/Chat/internal/api/service"

	"github.com/gin-gonic/gin"
)

// UserController handles user-related HTTP requests.
type UserController struct {
	userService service.UserService
}

// NewUserController creates a new UserController.
func NewUserController(userService service.UserService) *UserController {
	return &UserController{
		userService: userService,
	}
}

// Register handles the user registration endpoint.
func (uc *UserController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationErrorResponse(c, err)
		return
	}

	err := uc.userService.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, apirepository.ErrUsernameTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{
				"username": "A user with that username already exists.",
			}})
			return
		}
		slog.ErrorContext(c.Request.Context(), "registration failed", "error", err)
		response.ErrorResponse(c, http.StatusInternalServerError, "internal error")
		return
	}

	response.CreatedResponse(c, "User registered successfully.")
}

// Login handles the user login endpoint.
func (uc *UserController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationErrorResponse(c, err)
		return
	}

	token, err := uc.userService.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.ErrorResponse(c, http.StatusUnauthorized, "Invalid credentials.")
			return
		}
		slog.ErrorContext(c.Request.Context(), "login failed", "error", err)
		response.ErrorResponse(c, http.StatusInternalServerError, "internal error")
		return
	}

	response.SuccessResponse(c, models.LoginResponse{Token: token})
}
