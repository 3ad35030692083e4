package guardrails

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/gabrielchua/descriptive-theory/internal/config"
	"github.com/gabrielchua/descriptive-theory/internal/llm"
	"github.com/gabrielchua/descriptive-theory/internal/models"
)

// LLMValidator asks the completion model for a single-token 0/1 answer.
type LLMValidator struct {
	client llm.LLMClient
	cfg    config.GuardrailConfig
}

func NewLLMValidator(client llm.LLMClient, cfg config.GuardrailConfig) *LLMValidator {
	return &LLMValidator{
		client: client,
		cfg:    cfg,
	}
}

func (v *LLMValidator) Classify(ctx context.Context, input string) (models.Verdict, error) {
	response, err := v.client.InvokeModel(ctx, v.buildRequest(input))
	if err != nil {
		return models.VerdictReject, fmt.Errorf("%w: guardrail: %w", models.ErrUpstreamUnavailable, err)
	}
	if response == nil {
		return models.VerdictReject, fmt.Errorf("%w: no response", models.ErrInvalidVerdict)
	}

	return parseVerdict(response.Content)
}

func (v *LLMValidator) buildRequest(input string) llm.LLMRequest {
	return llm.LLMRequest{
		Model:        v.cfg.Model,
		SystemPrompt: v.cfg.SystemPrompt,
		Prompt:       input,
		MaxTokens:    1,
		Temperature:  v.cfg.Temperature,
		Seed:         v.cfg.Seed,
		LogitBias:    v.cfg.LogitBias,
	}
}

func parseVerdict(content string) (models.Verdict, error) {
	value, err := strconv.Atoi(strings.TrimSpace(content))
	if err != nil {
		return models.VerdictReject, fmt.Errorf("%w: %q", models.ErrInvalidVerdict, content)
	}

	switch models.Verdict(value) {
	case models.VerdictReject, models.VerdictMedical:
		return models.Verdict(value), nil
	default:
		return models.VerdictReject, fmt.Errorf("%w: %d", models.ErrInvalidVerdict, value)
	}
}
