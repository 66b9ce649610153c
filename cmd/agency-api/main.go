package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rankforge/agency-api/internal/infrastructure/config"
	"github.com/rankforge/agency-api/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
		Service: "agency-api",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Error().Err(err).Msg("server terminated")
		os.Exit(1)
	}
}
