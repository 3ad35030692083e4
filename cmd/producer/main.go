package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/gabrielchua/descriptive-theory/internal/models"
	red "github.com/gabrielchua/descriptive-theory/internal/redis"
	"github.com/gabrielchua/descriptive-theory/internal/setup"
	"github.com/gabrielchua/descriptive-theory/internal/setup/logger"
	"github.com/gabrielchua/descriptive-theory/internal/stream"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	file := flag.String("f", "-", "Report file to enqueue, - for stdin")
	language := flag.String("language", "english", "Reply language: english or chinese")
	jobID := flag.String("id", "", "Job id (generated when empty)")
	streamName := flag.String("stream", stream.DefaultJobStream, "Stream name")
	flag.Parse()

	_ = godotenv.Load()
	cfg := setup.LoadConfig()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = logger.New(cfg.LogLevel, cfg.LogFormat)

	if err := run(cfg, *file, *language, *jobID, *streamName); err != nil {
		log.Error().Err(err).Msg("producer failed")
		os.Exit(1)
	}
}

func run(cfg *setup.Config, file, language, jobID, streamName string) error {
	text, err := readInput(file)
	if err != nil {
		return err
	}

	addr := cfg.RedisAddr
	if addr == "" {
		addr = "localhost:6379"
	}

	ctx := context.Background()
	processLogger := log.Logger
	client, err := red.ConnectRedis(ctx, red.Config{Addr: addr, Password: cfg.RedisPassword, MaxAttempts: 3}, &processLogger)
	if err != nil {
		return err
	}
	defer client.Close()

	producer := stream.NewProducer(client, streamName)
	job, id, err := producer.Enqueue(ctx, stream.Job{
		JobID:    jobID,
		Text:     text,
		Language: models.Language(language),
	}, cfg.MaxTextLength)
	if err != nil {
		return err
	}

	log.Info().Str("stream", streamName).Str("id", id).Str("job_id", job.JobID).Msg("Published successfully!")
	fmt.Println(job.JobID)
	return nil
}

func readInput(file string) (string, error) {
	if file == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", file, err)
	}
	return string(data), nil
}
