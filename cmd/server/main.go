// File: cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/teamspace/go-teamspace/internal/config"
	"github.com/teamspace/go-teamspace/internal/domain"
	"github.com/teamspace/go-teamspace/internal/handlers"
	"github.com/teamspace/go-teamspace/internal/middleware"
	"github.com/teamspace/go-teamspace/internal/ratelimit"
	"github.com/teamspace/go-teamspace/internal/repository/aichat"
	"github.com/teamspace/go-teamspace/internal/repository/channel"
	"github.com/teamspace/go-teamspace/internal/repository/message"
	"github.com/teamspace/go-teamspace/internal/repository/user"
	"github.com/teamspace/go-teamspace/internal/services"
	"github.com/teamspace/go-teamspace/internal/services/ai"
	"github.com/teamspace/go-teamspace/internal/services/user_services"
)

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {
	cfg := config.Load()
	logger := services.NewLogger("go_teamspace")

	// Single process-wide storage handle, opened once and injected
	// everywhere; gorm pools connections underneath.
	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{})
	if err != nil {
		log.Fatalf("DB Error: %v", err)
	}

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Channel{},
		&domain.ChannelMember{},
		&domain.Message{},
		&domain.AiChatRecord{},
	); err != nil {
		log.Fatalf("DB Migration Error: %v", err)
	}

	// --- Repositories ---
	userRepo := user.NewGormUserRepository(db)
	channelRepo := channel.NewChannelRepository(db)
	messageRepo := message.NewMessageRepository(db)
	aiChatRepo := aichat.NewAiChatRepository(db)

	// --- Services ---
	aiConfig := ai.DefaultConfig()
	aiConfig.APIKey = cfg.OpenAIAPIKey
	aiConfig.BaseURL = cfg.OpenAIBaseURL
	aiConfig.Model = cfg.AIChatModel

	aiProvider, err := ai.NewOpenAIProvider(aiConfig)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize AI provider: %v", err)
	}

	authService := user_services.NewAuthService(userRepo, cfg.JWTSecretKey, logger)
	userService := user_services.NewUserService(userRepo, logger)
	channelService := services.NewChannelService(channelRepo, userRepo, logger)
	messageService := services.NewMessageService(messageRepo, channelRepo, userRepo, logger)
	aiChatService := services.NewAIChatService(aiChatRepo, aiProvider, cfg.AIChatDailyLimit, logger)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	channelHandler := handlers.NewChannelHandler(channelService)
	messageHandler := handlers.NewMessageHandler(messageService)
	aiChatHandler := handlers.NewAIChatHandler(aiChatService)

	// --- Router Setup ---
	r := mux.NewRouter()
	authMiddleware := middleware.NewAuthMiddleware(authService, userService)
	authLimiter := ratelimit.NewMemoryRateLimiter(ratelimit.DefaultAuthConfig())
	defer authLimiter.Close()

	r.Use(corsMiddleware)
	r.Use(middleware.RecoverPanic)
	r.Use(middleware.LoggingMiddleware)

	// --- Public Routes ---
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK); _, _ = w.Write([]byte("OK")) }).Methods("GET")

	authRoutes := r.PathPrefix("/api/auth").Subrouter()
	authRoutes.Use(middleware.RateLimitMiddleware(authLimiter, "auth"))
	authRoutes.Use(middleware.AuthSuccessMiddleware(authLimiter, "auth"))
	authRoutes.HandleFunc("/signup", authHandler.Signup).Methods("POST")
	authRoutes.HandleFunc("/login", authHandler.Login).Methods("POST")
	authRoutes.HandleFunc("/logout", authHandler.Logout).Methods("POST")

	// --- Protected API Routes ---
	api := r.PathPrefix("/api").Subrouter()
	api.Use(authMiddleware)

	api.HandleFunc("/users/me", userHandler.GetMe).Methods("GET")
	api.HandleFunc("/users/me", userHandler.UpdateMe).Methods("PATCH")
	api.HandleFunc("/users", userHandler.ListUsers).Methods("GET")

	api.HandleFunc("/channels", channelHandler.ListChannels).Methods("GET")
	api.HandleFunc("/channels", channelHandler.CreateChannel).Methods("POST")
	// No regex constraint on {id}: a malformed id must reach the
	// handler so it can answer 400 instead of mux's 404.
	api.HandleFunc("/channels/{id}", channelHandler.GetChannel).Methods("GET")
	api.HandleFunc("/channels/{id}/members", channelHandler.AddMembers).Methods("POST")
	api.HandleFunc("/direct-messages", channelHandler.CreateDirectMessage).Methods("POST")

	api.HandleFunc("/messages/channel/{id}", messageHandler.GetChannelMessages).Methods("GET")
	api.HandleFunc("/messages/channel/{id}", messageHandler.PostMessage).Methods("POST")
	api.HandleFunc("/messages/me", messageHandler.GetMyMessages).Methods("GET")

	api.HandleFunc("/ai-chat", aiChatHandler.Converse).Methods("POST")
	api.HandleFunc("/ai-chat/history", aiChatHandler.GetHistory).Methods("GET")
	api.HandleFunc("/ai-chat/remaining", aiChatHandler.GetRemaining).Methods("GET")

	// --- Server Configuration ---
	port := ":8080"
	if cfg.ServerPort != "" {
		port = ":" + cfg.ServerPort
	}
	srv := &http.Server{
		Addr:    port,
		Handler: r,
	}

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Teamspace server starting on port %s", port)

	// --- Start Server in Goroutine ---
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server startup failed: %v", err)
		}
	}()

	// --- Graceful Shutdown ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down server gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped gracefully")
}
