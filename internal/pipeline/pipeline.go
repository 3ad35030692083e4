package pipeline

import (
	"context"
	"iter"
	"sync/atomic"
	"time"

	"github.com/gabrielchua/descriptive-theory/internal/guardrails"
	"github.com/gabrielchua/descriptive-theory/internal/ledger"
	"github.com/gabrielchua/descriptive-theory/internal/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

//go:generate mockgen -destination=mocks/mock_pipeline.go -package=mocks . Guardrail,TextSimplifier,Runner

type Guardrail interface {
	ValidateInput(ctx context.Context, input string) (guardrails.ValidationResult, error)
}

type TextSimplifier interface {
	Simplify(ctx context.Context, text string, language models.Language) (string, error)
	SimplifyStream(ctx context.Context, text string, language models.Language) iter.Seq2[string, error]
}

// Runner is what the HTTP, MCP, worker and CLI surfaces drive.
type Runner interface {
	Run(ctx context.Context, req models.SimplifyRequest) (models.Result, error)
	Stream(ctx context.Context, req models.SimplifyRequest) (iter.Seq2[string, error], error)
}

type Options struct {
	Greeting      string
	Timeout       time.Duration // per stage; zero disables
	MaxTextLength int
}

type Pipeline struct {
	guardrail  Guardrail
	simplifier TextSimplifier
	recorder   ledger.Recorder
	opts       Options
	logger     *zerolog.Logger
}

// NewPipeline wires the two stages. recorder may be nil.
func NewPipeline(guardrail Guardrail, simplifier TextSimplifier, recorder ledger.Recorder, opts Options, logger *zerolog.Logger) *Pipeline {
	if recorder == nil {
		recorder = ledger.Nop{}
	}
	return &Pipeline{
		guardrail:  guardrail,
		simplifier: simplifier,
		recorder:   recorder,
		opts:       opts,
		logger:     logger,
	}
}

// Run classifies the text and, when it is medical, returns the blocking rewrite.
// A rejected input returns models.ErrNotMedical and the simplifier is never called.
func (p *Pipeline) Run(ctx context.Context, req models.SimplifyRequest) (models.Result, error) {
	start := time.Now()
	p.prepare(&req)
	result := models.Result{RequestID: req.RequestID}

	logger := p.logger.With().Str("request_id", req.RequestID).Str("channel", string(req.Channel)).Logger()

	if err := req.Validate(p.opts.MaxTextLength); err != nil {
		p.record(ctx, req, "", start, err)
		return result, err
	}

	verdict, err := p.classify(ctx, req.Text)
	if err != nil {
		p.record(ctx, req, "", start, err)
		return result, err
	}
	result.Verdict = verdict
	if verdict != models.VerdictMedical {
		logger.Info().Msg("Rejected non-medical input")
		p.record(ctx, req, verdict.String(), start, models.ErrNotMedical)
		return result, models.ErrNotMedical
	}

	stageCtx, cancel := p.stageContext(ctx)
	defer cancel()

	text, err := p.simplifier.Simplify(stageCtx, req.Text, req.Language)
	if err != nil {
		logger.Error().Err(err).Msg("Simplification failed")
		p.record(ctx, req, verdict.String(), start, err)
		return result, err
	}

	result.SimplifiedText = p.opts.Greeting + text
	result.Duration = time.Since(start)

	logger.Info().Dur("duration", result.Duration).Msg("Simplification completed")
	p.record(ctx, req, verdict.String(), start, nil)

	return result, nil
}

// Stream runs validation and the guardrail eagerly so callers can still answer with a
// plain status, then returns a lazy, single-use sequence of fragments. The greeting,
// if configured, precedes the first fragment. An upstream failure before any fragment
// is the first element of the sequence.
func (p *Pipeline) Stream(ctx context.Context, req models.SimplifyRequest) (iter.Seq2[string, error], error) {
	start := time.Now()
	p.prepare(&req)

	if err := req.Validate(p.opts.MaxTextLength); err != nil {
		p.record(ctx, req, "", start, err)
		return nil, err
	}

	verdict, err := p.classify(ctx, req.Text)
	if err != nil {
		p.record(ctx, req, "", start, err)
		return nil, err
	}
	if verdict != models.VerdictMedical {
		p.record(ctx, req, verdict.String(), start, models.ErrNotMedical)
		return nil, models.ErrNotMedical
	}

	var consumed atomic.Bool

	return func(yield func(string, error) bool) {
		if !consumed.CompareAndSwap(false, true) {
			yield("", models.ErrStreamConsumed)
			return
		}

		stageCtx, cancel := p.stageContext(ctx)
		defer cancel()

		var streamErr error
		greeted := p.opts.Greeting == ""
		chunks := 0

		for chunk, err := range p.simplifier.SimplifyStream(stageCtx, req.Text, req.Language) {
			if err != nil {
				streamErr = err
				yield("", err)
				break
			}
			if !greeted {
				greeted = true
				if !yield(p.opts.Greeting, nil) {
					streamErr = models.ErrStreamAbandoned
					break
				}
			}
			chunks++
			if !yield(chunk, nil) {
				streamErr = models.ErrStreamAbandoned
				break
			}
		}

		p.logger.Info().
			Str("request_id", req.RequestID).
			Int("chunks", chunks).
			Err(streamErr).
			Msg("Simplification stream finished")
		p.record(context.WithoutCancel(ctx), req, verdict.String(), start, streamErr)
	}, nil
}

func (p *Pipeline) prepare(req *models.SimplifyRequest) {
	req.SetDefaults()
	if req.RequestID == "" {
		req.RequestID = uuid.New().String()
	}
	if req.Channel == "" {
		req.Channel = models.ChannelHTTP
	}
}

func (p *Pipeline) classify(ctx context.Context, text string) (models.Verdict, error) {
	stageCtx, cancel := p.stageContext(ctx)
	defer cancel()

	result, err := p.guardrail.ValidateInput(stageCtx, text)
	if err != nil {
		return models.VerdictReject, err
	}
	return result.Verdict, nil
}

func (p *Pipeline) stageContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.opts.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, p.opts.Timeout)
}

func (p *Pipeline) record(ctx context.Context, req models.SimplifyRequest, verdict string, start time.Time, err error) {
	entry := ledger.Entry{
		RequestID: req.RequestID,
		Channel:   req.Channel,
		Language:  req.Language,
		Verdict:   verdict,
		Outcome:   ledger.OutcomeFor(err),
		Duration:  time.Since(start),
		CreatedAt: start.UTC(),
	}
	if recErr := p.recorder.Record(ctx, entry); recErr != nil {
		p.logger.Warn().Err(recErr).Str("request_id", req.RequestID).Msg("Failed to record request")
	}
}
