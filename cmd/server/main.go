package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/OntriDS/thegame-sub002/internal/config"
	"github.com/OntriDS/thegame-sub002/internal/server"
	"github.com/OntriDS/thegame-sub002/pkg/logging"
)

func main() {
	// A missing .env file is fine; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Setup()
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	logging.Configure(cfg.LogLevel, cfg.LogFormat)

	if cfg.JWTSecret == config.DevJWTSecret {
		slog.Warn("Using development JWT secret; set JWT_SECRET before exposing this server")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx, cfg); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
