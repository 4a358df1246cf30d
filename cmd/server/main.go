package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Moosaa95/Chat/internal/api/auth"
	"github.com/Moosaa95/Chat/internal/api/controller"
	apirepository "github.com/Moosaa95/Chat/internal/api/repository"
	"github.com/Moosaa95/Chat/internal/api/service"
	"github.com/Moosaa95/Chat/internal/config"
	"github.com/Moosaa95/Chat/internal/db"
	"github.com/Moosaa95/Chat/internal/logger"
	"github.com/Moosaa95/Chat/internal/repository"
	"github.com/Moosaa95/Chat/internal/server"
	"github.com/Moosaa95/Chat/internal/telemetry"
	"github.com/Moosaa95/Chat/internal/validator"
)

func main() {
	ctx := context.Background()

	cfg := config.Load()

	// Initialize telemetry
	shutdown, err := telemetry.InitOtel(cfg.OTLPEndpoint)
	if err != nil {
		log.Fatalf("failed to initialize telemetry: %v", err)
	}
	defer func() {
		if err := shutdown(ctx); err != nil {
			log.Printf("Error shutting down telemetry: %v", err)
		}
	}()

	logger.Init()

	if err := validator.Init(); err != nil {
		log.Fatalf("failed to register validations: %v", err)
	}

	// Initialize Redis
	rdb, err := db.NewRedisClient(ctx, cfg.RedisAddr)
	if err != nil {
		log.Fatalf("failed to initialize redis: %v", err)
	}

	// Initialize SQLite DB
	pool, err := db.Connect(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open sqlite db: %v", err)
	}
	if err := db.Initialize(pool); err != nil {
		log.Fatalf("failed to initialize sqlite schema: %v", err)
	}

	// Create repositories
	userRepo := apirepository.NewUserRepository(pool)
	chatRepo := apirepository.NewChatRepository(pool)
	tokenRepo := repository.NewTokenRepository(rdb)

	// Create services
	userService := service.NewUserService(userRepo, tokenRepo)
	chatService := service.NewChatService(userRepo, chatRepo)

	// Create controllers
	userController := controller.NewUserController(userService)
	chatController := controller.NewChatController(chatService, userService)

	authenticator := auth.NewAuthenticator(tokenRepo, userRepo)

	// Create the Gin-based server
	srv := server.NewServer(authenticator, userController, chatController)

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	httpServer := &http.Server{
		Addr:    cfg.Addr,
		Handler: srv.Engine(),
	}

	go func() {
		log.Printf("http server started on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("ListenAndServe: %v", err)
		}
	}()

	<-stop

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
