package guardrails

import (
	"context"

	"github.com/gabrielchua/descriptive-theory/internal/config"
	"github.com/gabrielchua/descriptive-theory/internal/llm"
	"github.com/gabrielchua/descriptive-theory/internal/models"
	"github.com/rs/zerolog"
)

type Classifier interface {
	Classify(ctx context.Context, input string) (models.Verdict, error)
}

type Guardrails struct {
	classifier Classifier
	cache      VerdictCache
	logger     *zerolog.Logger
}

// NewGuardrails builds the guardrail stage. cache may be nil.
func NewGuardrails(client llm.LLMClient, cfg config.GuardrailConfig, cache VerdictCache, logger *zerolog.Logger) *Guardrails {
	return NewGuardrailsWithClassifier(NewLLMValidator(client, cfg), cache, logger)
}

func NewGuardrailsWithClassifier(classifier Classifier, cache VerdictCache, logger *zerolog.Logger) *Guardrails {
	return &Guardrails{
		classifier: classifier,
		cache:      cache,
		logger:     logger,
	}
}

func (g *Guardrails) ValidateInput(ctx context.Context, input string) (ValidationResult, error) {
	if g.cache != nil {
		verdict, ok, err := g.cache.Get(ctx, input)
		if err != nil {
			g.logger.Warn().Err(err).Msg("Verdict cache lookup failed, calling classifier")
		} else if ok {
			g.logger.Debug().Str("verdict", verdict.String()).Msg("Verdict cache hit")
			return newResult(verdict, "cache"), nil
		}
	}

	verdict, err := g.classifier.Classify(ctx, input)
	if err != nil {
		g.logger.Error().Err(err).Msg("Guardrail classification failed")
		return ValidationResult{}, err
	}

	if g.cache != nil {
		if err := g.cache.Set(ctx, input, verdict); err != nil {
			g.logger.Warn().Err(err).Msg("Failed to store verdict")
		}
	}

	if verdict == models.VerdictReject {
		g.logger.Info().
			Str("method", "llm").
			Int("text_length", len(input)).
			Msg("Input blocked by guardrail")
	}

	return newResult(verdict, "llm"), nil
}
