package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/gabrielchua/descriptive-theory/internal/models"
)

// Outcome values stored per request.
const (
	OutcomeOK          = "ok"
	OutcomeRejected    = "rejected"
	OutcomeInvalid     = "invalid"
	OutcomeUnavailable = "unavailable"
	OutcomeError       = "error"
	OutcomeAbandoned   = "abandoned"
)

// Entry is one row of the usage ledger. It never carries the report text.
type Entry struct {
	RequestID string
	Channel   models.Channel
	Language  models.Language
	Verdict   string // empty when the guardrail never answered
	Outcome   string
	Duration  time.Duration
	CreatedAt time.Time
}

type Recorder interface {
	Record(ctx context.Context, entry Entry) error
}

// OutcomeFor maps a pipeline error onto its ledger outcome.
func OutcomeFor(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case models.IsValidation(err):
		return OutcomeInvalid
	case errors.Is(err, models.ErrNotMedical):
		return OutcomeRejected
	case errors.Is(err, models.ErrUpstreamUnavailable):
		return OutcomeUnavailable
	case errors.Is(err, models.ErrStreamAbandoned):
		return OutcomeAbandoned
	default:
		return OutcomeError
	}
}

type Nop struct{}

func (Nop) Record(ctx context.Context, entry Entry) error { return nil }
