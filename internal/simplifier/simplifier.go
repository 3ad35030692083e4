package simplifier

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"sync/atomic"

	"github.com/gabrielchua/descriptive-theory/internal/config"
	"github.com/gabrielchua/descriptive-theory/internal/llm"
	"github.com/gabrielchua/descriptive-theory/internal/models"
	"github.com/rs/zerolog"
)

// errConsumerStopped aborts the upstream stream when the caller stops ranging.
var errConsumerStopped = errors.New("consumer stopped")

type Simplifier struct {
	client llm.LLMClient
	cfg    config.SimplifierConfig
	logger *zerolog.Logger
}

func NewSimplifier(client llm.LLMClient, cfg config.SimplifierConfig, logger *zerolog.Logger) *Simplifier {
	return &Simplifier{
		client: client,
		cfg:    cfg,
		logger: logger,
	}
}

// Simplify makes one blocking completion call and returns the full rewrite.
func (s *Simplifier) Simplify(ctx context.Context, text string, language models.Language) (string, error) {
	response, err := s.client.InvokeModel(ctx, s.buildRequest(text, language))
	if err != nil {
		s.logger.Error().Err(err).Msg("Simplify call failed")
		return "", fmt.Errorf("%w: simplifier: %w", models.ErrUpstreamUnavailable, err)
	}

	if response.Content == "" {
		return "", models.ErrEmptyCompletion
	}

	s.logger.Info().
		Str("language", string(language)).
		Str("stop_reason", response.StopReason).
		Int("output_length", len(response.Content)).
		Msg("Simplify completed")

	return response.Content, nil
}

// SimplifyStream returns a lazy sequence of text fragments. The upstream stream is opened
// when ranging starts, and the sequence can be ranged only once. Failures, including
// failures after some fragments were delivered, arrive as the final element.
func (s *Simplifier) SimplifyStream(ctx context.Context, text string, language models.Language) iter.Seq2[string, error] {
	var consumed atomic.Bool

	return func(yield func(string, error) bool) {
		if !consumed.CompareAndSwap(false, true) {
			yield("", models.ErrStreamConsumed)
			return
		}

		emitted := 0
		stopped := false

		_, err := s.client.InvokeModelStream(ctx, s.buildRequest(text, language), func(chunk string) error {
			emitted++
			if !yield(chunk, nil) {
				stopped = true
				return errConsumerStopped
			}
			return nil
		})

		if stopped {
			return
		}

		if err != nil {
			s.logger.Error().Err(err).Int("chunks", emitted).Msg("Simplify stream failed")
			yield("", fmt.Errorf("%w: simplifier stream: %w", models.ErrUpstreamUnavailable, err))
			return
		}

		if emitted == 0 {
			yield("", models.ErrEmptyCompletion)
			return
		}

		s.logger.Info().
			Str("language", string(language)).
			Int("chunks", emitted).
			Msg("Simplify stream completed")
	}
}

func (s *Simplifier) buildRequest(text string, language models.Language) llm.LLMRequest {
	return llm.LLMRequest{
		Model:        s.cfg.Model,
		SystemPrompt: BuildSystemPrompt(s.cfg.Persona, language),
		Prompt:       text,
		MaxTokens:    s.cfg.MaxTokens,
		Temperature:  s.cfg.Temperature,
		Seed:         s.cfg.Seed,
	}
}
