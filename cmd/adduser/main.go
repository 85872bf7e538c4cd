package main

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/devconnector/devconnector-go/internal/config"
	"github.com/devconnector/devconnector-go/internal/logger"
	"github.com/devconnector/devconnector-go/internal/model"
	"github.com/devconnector/devconnector-go/internal/repository"
	"github.com/devconnector/devconnector-go/internal/service"
)

func main() {
	name := flag.String("name", "", "display name")
	email := flag.String("email", "", "login email (required)")
	password := flag.String("password", "", "login password (required)")
	avatar := flag.String("avatar", "", "avatar URL, defaults to the email's gravatar")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(logger.New(cfg.LogLevel, cfg.LogFormat))

	if err := run(cfg, model.CreateUserRequest{
		Name:     *name,
		Email:    *email,
		Password: *password,
		Avatar:   *avatar,
	}); err != nil {
		slog.Error("add user failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, req model.CreateUserRequest) error {
	db, err := repository.NewDB(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := repository.EnsureSchema(ctx, db); err != nil {
		return err
	}

	if req.Avatar == "" {
		req.Avatar = gravatarURL(req.Email)
	}

	auth := service.NewAuthService(repository.NewUserRepository(db), cfg.JWTSecret)
	user, err := auth.CreateUser(ctx, req)
	if errors.Is(err, service.ErrEmailTaken) {
		return fmt.Errorf("user %q already exists", req.Email)
	}
	if err != nil {
		return err
	}

	slog.Info("user created", "id", user.ID, "email", user.Email)
	return nil
}

// gravatarURL builds a 200px, pg-rated gravatar link with the "mystery man" fallback.
func gravatarURL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return "//www.gravatar.com/avatar/" + hex.EncodeToString(sum[:]) + "?s=200&r=pg&d=mm"
}
