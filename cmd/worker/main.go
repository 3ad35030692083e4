package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/gabrielchua/descriptive-theory/internal/setup"
	"github.com/gabrielchua/descriptive-theory/internal/setup/logger"
	"github.com/gabrielchua/descriptive-theory/internal/stream"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load env
	envErr := godotenv.Load()
	cfg := setup.LoadConfig()

	// Setup logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = logger.New(cfg.LogLevel, cfg.LogFormat)
	processLogger := log.Logger

	if envErr != nil {
		log.Warn().Msg("No .env file found")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if cfg.RedisAddr == "" {
		log.Fatal().Msg("REDIS_ADDR is required for the worker")
	}

	deps, err := setup.Wire(ctx, cfg, &processLogger)
	if err != nil {
		log.Fatal().Err(err).Msg("Unable to wire dependencies")
	}
	defer deps.Close()

	consumer := stream.NewConsumer(deps.Redis, deps.Pipeline, stream.NewConfig(cfg.WorkerName, cfg.WorkerConcurrency), &processLogger)

	if err := consumer.Setup(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to setup consumer")
	}

	if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		processLogger.Error().Err(err).Msg("Consumer stopped with error")
	}

	log.Info().Msg("Simplify worker stopped")
}
