package setup

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/gabrielchua/descriptive-theory/internal/config"
	"github.com/gabrielchua/descriptive-theory/internal/guardrails"
	"github.com/gabrielchua/descriptive-theory/internal/ledger"
	"github.com/gabrielchua/descriptive-theory/internal/llm"
	"github.com/gabrielchua/descriptive-theory/internal/llm/anthropic"
	"github.com/gabrielchua/descriptive-theory/internal/llm/bedrock"
	"github.com/gabrielchua/descriptive-theory/internal/llm/gpt"
	"github.com/gabrielchua/descriptive-theory/internal/pipeline"
	red "github.com/gabrielchua/descriptive-theory/internal/redis"
	"github.com/gabrielchua/descriptive-theory/internal/simplifier"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderBedrock   = "bedrock"
)

type Config struct {
	Provider          string
	OpenAIKey         string
	OpenAIBaseURL     string
	AnthropicKey      string
	AnthropicModel    string
	AWSRegion         string
	BedrockModelID    string
	Port              string
	RequestTimeout    time.Duration
	MaxTextLength     int
	RedisAddr         string
	RedisPassword     string
	CacheTTL          time.Duration
	DatabaseURL       string
	LogLevel          string
	LogFormat         string
	Greeting          string
	WorkerName        string
	WorkerConcurrency int
}

type Dependencies struct {
	Pipeline   *pipeline.Pipeline
	Guardrails *guardrails.Guardrails
	Redis      *redis.Client // nil unless REDIS_ADDR is set
	Model      string        // simplifier model, reported to stream clients
	Logger     *zerolog.Logger

	ledger *ledger.Postgres
}

func LoadConfig() *Config {
	hostname, _ := os.Hostname()

	return &Config{
		Provider:          getEnv("LLM_PROVIDER", ProviderOpenAI),
		OpenAIKey:         getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:     getEnv("OPENAI_BASE_URL", ""),
		AnthropicKey:      getEnv("ANTHROPIC_API_KEY", ""),
		AnthropicModel:    getEnv("ANTHROPIC_MODEL", "claude-3-5-haiku-latest"),
		AWSRegion:         getEnv("AWS_REGION", "us-east-1"),
		BedrockModelID:    getEnv("BEDROCK_MODEL_ID", "anthropic.claude-3-haiku-20240307-v1:0"),
		Port:              getEnv("API_PORT", "8000"),
		RequestTimeout:    getEnvDuration("REQUEST_TIMEOUT", 60*time.Second),
		MaxTextLength:     getEnvInt("MAX_TEXT_LENGTH", 20000),
		RedisAddr:         getEnv("REDIS_ADDR", ""),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		CacheTTL:          getEnvDuration("GUARDRAIL_CACHE_TTL", 24*time.Hour),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "console"),
		Greeting:          os.Getenv("REPORT_GREETING"),
		WorkerName:        getEnv("WORKER_NAME", hostname),
		WorkerConcurrency: getEnvInt("WORKER_CONCURRENCY", 4),
	}
}

func Wire(ctx context.Context, cfg *Config, logger *zerolog.Logger) (*Dependencies, error) {
	prompts, err := config.LoadPromptsConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load prompts config: %w", err)
	}

	llmClient, err := createLLMClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", cfg.Provider, err)
	}
	model := applyProviderModels(cfg, prompts)

	deps := &Dependencies{Model: model, Logger: logger}

	var cache guardrails.VerdictCache
	if cfg.RedisAddr != "" {
		client, err := red.ConnectRedis(ctx, red.Config{
			Addr:        cfg.RedisAddr,
			Password:    cfg.RedisPassword,
			MaxAttempts: 5,
		}, logger)
		if err != nil {
			return nil, err
		}
		deps.Redis = client
		cache = guardrails.NewRedisVerdictCache(client, "", cfg.CacheTTL)
	}

	var recorder ledger.Recorder
	if cfg.DatabaseURL != "" {
		pg, err := ledger.NewPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			deps.Close()
			return nil, err
		}
		if err := pg.EnsureSchema(ctx); err != nil {
			pg.Close()
			deps.Close()
			return nil, err
		}
		deps.ledger = pg
		recorder = pg
	}

	deps.Guardrails = guardrails.NewGuardrails(llmClient, prompts.Guardrail, cache, logger)
	simp := simplifier.NewSimplifier(llmClient, prompts.Simplifier, logger)

	deps.Pipeline = pipeline.NewPipeline(deps.Guardrails, simp, recorder, pipeline.Options{
		Greeting:      cfg.Greeting,
		Timeout:       cfg.RequestTimeout,
		MaxTextLength: cfg.MaxTextLength,
	}, logger)

	logger.Info().
		Str("provider", cfg.Provider).
		Str("simplifier_model", model).
		Bool("verdict_cache", cache != nil).
		Bool("ledger", recorder != nil).
		Msg("Dependencies wired")

	return deps, nil
}

func (d *Dependencies) Close() {
	if d.Redis != nil {
		d.Redis.Close()
	}
	if d.ledger != nil {
		d.ledger.Close()
	}
}

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}

	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		value = defaultValue
	}

	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		value = defaultValue
	}

	return value
}

func createLLMClient(ctx context.Context, cfg *Config) (llm.LLMClient, error) {
	switch cfg.Provider {
	case ProviderOpenAI:
		return gpt.NewClient(cfg.OpenAIKey, config.DefaultSimplifierModel, cfg.OpenAIBaseURL)
	case ProviderAnthropic:
		return anthropic.NewClient(cfg.AnthropicKey, anthropic.WithModel(cfg.AnthropicModel))
	case ProviderBedrock:
		return bedrock.NewClient(ctx, cfg.AWSRegion, cfg.BedrockModelID)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %q", cfg.Provider)
	}
}

// applyProviderModels swaps the OpenAI model names from the prompts file for the
// provider's model and returns the simplifier model.
func applyProviderModels(cfg *Config, prompts *config.PromptsConfig) string {
	switch cfg.Provider {
	case ProviderAnthropic:
		prompts.Guardrail.Model = cfg.AnthropicModel
		prompts.Simplifier.Model = cfg.AnthropicModel
	case ProviderBedrock:
		prompts.Guardrail.Model = cfg.BedrockModelID
		prompts.Simplifier.Model = cfg.BedrockModelID
	}
	return prompts.Simplifier.Model
}
