package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Moosaa95/Chat/internal/api/models"
	"github.com/Moosaa95/Chat/internal/api/response"

	"github.com/gin-gonic/gin"
)

const userContextKey = "user"

// RequireAuth authenticates the request and aborts with 401 when no valid
// credential is presented. On success the resolved user is stored in the
// request context for the handler.
func RequireAuth(a *Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _, err := a.Authenticate(c.Request.Context(), c.GetHeader("Authorization"))
		if err != nil {
			var authErr *Error
			switch {
			case errors.Is(err, ErrNoCredentials):
				response.ErrorResponse(c, http.StatusUnauthorized, "Authentication credentials were not provided.")
			case errors.As(err, &authErr):
				response.ErrorResponse(c, http.StatusUnauthorized, authErr.Message)
			default:
				slog.ErrorContext(c.Request.Context(), "authentication lookup failed", "error", err)
				response.ErrorResponse(c, http.StatusInternalServerError, "internal error")
			}
			c.Abort()
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// CurrentUser returns the authenticated user placed in the context by
// RequireAuth.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	val, exists := c.Get(userContextKey)
	if !exists {
		return nil, false
	}
	user, ok := val.(*models.User)
	return user, ok
}
