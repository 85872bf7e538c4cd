package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/devconnector/devconnector-go/internal/config"
	"github.com/devconnector/devconnector-go/internal/handler"
	"github.com/devconnector/devconnector-go/internal/logger"
	"github.com/devconnector/devconnector-go/internal/repository"
	"github.com/devconnector/devconnector-go/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(log)

	db, err := repository.NewDB(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		slog.Error("database connection failed", "driver", cfg.DatabaseDriver, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := repository.EnsureSchema(context.Background(), db); err != nil {
		slog.Error("schema setup failed", "error", err)
		os.Exit(1)
	}
	slog.Info("database connected", "driver", cfg.DatabaseDriver)

	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret)
	profileService := service.NewProfileService(profileRepo, userRepo)

	router := handler.NewRouter(
		handler.NewAuthHandler(authService),
		handler.NewProfileHandler(profileService),
		cfg.JWTSecret,
		log,
	)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
	if err := serve(srv, quit); err != nil {
		slog.Error("server error", "error", err)
		db.Close()
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// serve runs srv until it fails or quit fires, then shuts it down gracefully.
// A listen failure is returned so the process can exit non-zero.
func serve(srv *http.Server, quit <-chan os.Signal) error {
	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return err
	case <-quit:
	}

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}
	return nil
}
