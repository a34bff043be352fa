package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/claytonfaria/userapi/internal/auth"
	"github.com/claytonfaria/userapi/internal/config"
	"github.com/claytonfaria/userapi/internal/database"
	"github.com/claytonfaria/userapi/internal/handlers"
	"github.com/claytonfaria/userapi/internal/logger"
	"github.com/claytonfaria/userapi/internal/middleware"
	"github.com/claytonfaria/userapi/internal/storage"
)

// acceptedIdentity is the single login the placeholder credential
// validator recognizes.
const acceptedIdentity = "claytonfaria"

func main() {
	log := logger.New("user-api")
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: %v", err)
	}

	pool, err := database.Connect(ctx, database.Config{
		URL:             cfg.Database.URL,
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
		MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
	})
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	validator := auth.NewStaticValidator(acceptedIdentity)
	store := storage.NewPostgresStore(pool)

	authHandler := handlers.NewAuthHandler(validator, jwtManager)
	userHandler := handlers.NewUserHandler(store)
	healthHandler := handlers.NewHealthHandler(func() map[string]interface{} {
		return database.Stats(pool)
	})
	authMW := middleware.NewAuthMiddleware(jwtManager)

	router := handlers.NewRouter(authHandler, userHandler, healthHandler, authMW, cfg.Server.RequestTimeout, log)

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		log.Info("Listening on :%s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Shutdown error: %v", err)
	}

	log.Info("Server stopped")
}
