package server

import (
	"github.com/Moosaa95/Chat/internal/api/auth"
	"github.com/Moosaa95/Chat/internal/api/controller"

	"github.com/gin-gonic/gin"
)

// Server owns the Gin engine and its route table.
type Server struct {
	engine *gin.Engine
}

// NewServer creates the Gin-based server and registers all routes.
func NewServer(authenticator *auth.Authenticator, userController *controller.UserController, chatController *controller.ChatController) *Server {
	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery())

	engine.POST("/register", userController.Register)
	engine.POST("/login", userController.Login)

	protected := engine.Group("/", auth.RequireAuth(authenticator))
	protected.POST("/chat", chatController.Chat)
	protected.GET("/chats", chatController.History)
	protected.GET("/tokens", chatController.Balance)

	return &Server{engine: engine}
}

// Engine exposes the underlying Gin engine, mainly for http.Server wiring
// and tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}
