package setup

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/gabrielchua/descriptive-theory/internal/config"
	"github.com/gabrielchua/descriptive-theory/internal/setup/logger"
	"github.com/rs/zerolog"
)

func testLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"LLM_PROVIDER", "API_PORT", "REQUEST_TIMEOUT", "MAX_TEXT_LENGTH", "GUARDRAIL_CACHE_TTL", "WORKER_CONCURRENCY", "REDIS_ADDR", "DATABASE_URL"} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()

	if cfg.Provider != ProviderOpenAI {
		t.Errorf("expected openai provider, got %s", cfg.Provider)
	}
	if cfg.Port != "8000" {
		t.Errorf("expected port 8000, got %s", cfg.Port)
	}
	if cfg.RequestTimeout != 60*time.Second {
		t.Errorf("expected 60s timeout, got %s", cfg.RequestTimeout)
	}
	if cfg.MaxTextLength != 20000 {
		t.Errorf("expected max length 20000, got %d", cfg.MaxTextLength)
	}
	if cfg.CacheTTL != 24*time.Hour {
		t.Errorf("expected 24h cache ttl, got %s", cfg.CacheTTL)
	}
	if cfg.WorkerConcurrency != 4 {
		t.Errorf("expected concurrency 4, got %d", cfg.WorkerConcurrency)
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "anthropic")
	t.Setenv("REQUEST_TIMEOUT", "5s")
	t.Setenv("MAX_TEXT_LENGTH", "100")
	t.Setenv("REPORT_GREETING", "Hello - ")

	cfg := LoadConfig()

	if cfg.Provider != ProviderAnthropic || cfg.RequestTimeout != 5*time.Second || cfg.MaxTextLength != 100 {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.Greeting != "Hello - " {
		t.Errorf("expected greeting, got %q", cfg.Greeting)
	}
}

func TestLoadConfig_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("REQUEST_TIMEOUT", "soon")
	t.Setenv("MAX_TEXT_LENGTH", "lots")

	cfg := LoadConfig()

	if cfg.RequestTimeout != 60*time.Second || cfg.MaxTextLength != 20000 {
		t.Errorf("expected defaults for invalid values, got %s / %d", cfg.RequestTimeout, cfg.MaxTextLength)
	}
}

func TestLoadConfig_LoggingReachesLogger(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LOG_FORMAT", "json")

	cfg := LoadConfig()

	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, cfg.LogLevel, cfg.LogFormat)
	log.Info().Msg("dropped")
	log.Warn().Str("stage", "guardrail").Msg("kept")

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("expected a single JSON line, got %q: %v", buf.String(), err)
	}
	if entry["level"] != "warn" || entry["stage"] != "guardrail" {
		t.Errorf("unexpected entry %v", entry)
	}
}

func TestCreateLLMClient(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"openai", Config{Provider: ProviderOpenAI, OpenAIKey: "sk-test"}, ""},
		{"openai missing key", Config{Provider: ProviderOpenAI}, "API key is required"},
		{"anthropic", Config{Provider: ProviderAnthropic, AnthropicKey: "key", AnthropicModel: "claude-3-5-haiku-latest"}, ""},
		{"anthropic missing key", Config{Provider: ProviderAnthropic}, "required"},
		{"unknown", Config{Provider: "llama"}, "unsupported LLM provider"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := createLLMClient(context.Background(), &tt.cfg)
			if tt.wantErr == "" {
				if err != nil || client == nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestApplyProviderModels(t *testing.T) {
	tests := []struct {
		provider string
		want     string
	}{
		{ProviderOpenAI, config.DefaultSimplifierModel},
		{ProviderAnthropic, "claude-x"},
		{ProviderBedrock, "bedrock-x"},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			prompts := config.Default()
			cfg := &Config{Provider: tt.provider, AnthropicModel: "claude-x", BedrockModelID: "bedrock-x"}

			got := applyProviderModels(cfg, prompts)

			if got != tt.want || prompts.Simplifier.Model != tt.want {
				t.Errorf("expected simplifier model %s, got %s", tt.want, got)
			}
			if tt.provider != ProviderOpenAI && prompts.Guardrail.Model != tt.want {
				t.Errorf("expected guardrail model %s, got %s", tt.want, prompts.Guardrail.Model)
			}
		})
	}
}

func TestWire_WithoutOptionalServices(t *testing.T) {
	t.Setenv("PROMPTS_CONFIG_PATH", "")
	t.Chdir(t.TempDir())

	cfg := &Config{
		Provider:       ProviderOpenAI,
		OpenAIKey:      "sk-test",
		RequestTimeout: time.Second,
		MaxTextLength:  100,
	}

	deps, err := Wire(context.Background(), cfg, testLogger())
	if err != nil {
		t.Fatalf("Wire failed: %v", err)
	}
	defer deps.Close()

	if deps.Pipeline == nil || deps.Guardrails == nil {
		t.Error("expected pipeline and guardrails to be wired")
	}
	if deps.Redis != nil {
		t.Error("expected no redis client without REDIS_ADDR")
	}
	if deps.Model != config.DefaultSimplifierModel {
		t.Errorf("expected simplifier model, got %s", deps.Model)
	}
}

func TestWire_BadPromptsFile(t *testing.T) {
	t.Setenv("PROMPTS_CONFIG_PATH", "/nonexistent/prompts.yaml")

	_, err := Wire(context.Background(), &Config{Provider: ProviderOpenAI, OpenAIKey: "sk"}, testLogger())
	if err == nil || !strings.Contains(err.Error(), "prompts config") {
		t.Errorf("expected prompts config error, got %v", err)
	}
}
