package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SuccessResponse returns a 200 JSON response with the given body.
func SuccessResponse(c *gin.Context, body any) {
	c.JSON(http.StatusOK, body)
}

// CreatedResponse returns a 201 JSON response with a message.
func CreatedResponse(c *gin.Context, message string) {
	c.JSON(http.StatusCreated, gin.H{"message": message})
}

// ErrorResponse returns a JSON error body with the given status code.
func ErrorResponse(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"error": message})
}
