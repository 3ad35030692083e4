package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

type Language string

const (
	LanguageEnglish Language = "english"
	LanguageChinese Language = "chinese"
)

// ParseLanguage accepts the exact lowercase names only. An empty value means english.
func ParseLanguage(value string) (Language, error) {
	switch Language(value) {
	case "":
		return LanguageEnglish, nil
	case LanguageEnglish, LanguageChinese:
		return Language(value), nil
	default:
		return "", fmt.Errorf("%w: %q (expected english or chinese)", ErrInvalidLanguage, value)
	}
}

// Verdict is the guardrail classification: 0 = reject, 1 = proceed.
type Verdict int

const (
	VerdictReject  Verdict = 0
	VerdictMedical Verdict = 1
)

func (v Verdict) String() string {
	switch v {
	case VerdictReject:
		return "reject"
	case VerdictMedical:
		return "medical"
	default:
		return "unknown"
	}
}

type Channel string

const (
	ChannelHTTP       Channel = "http"
	ChannelHTTPStream Channel = "http-stream"
	ChannelWorker     Channel = "worker"
	ChannelMCP        Channel = "mcp"
	ChannelCLI        Channel = "cli"
)

// Input message
type SimplifyRequest struct {
	Text     string   `json:"text" description:"Medical report text to simplify"`
	Language Language `json:"language,omitempty" description:"Reply language: english (default) or chinese"`

	RequestID string  `json:"-"`
	Channel   Channel `json:"-"`
}

func (r *SimplifyRequest) SetDefaults() {
	if r.Language == "" {
		r.Language = LanguageEnglish
	}
}

func (r *SimplifyRequest) Validate(maxLength int) error {
	if strings.TrimSpace(r.Text) == "" {
		return ErrEmptyText
	}

	if maxLength > 0 {
		if n := utf8.RuneCountInString(r.Text); n > maxLength {
			return fmt.Errorf("%w: %d characters (max %d)", ErrTextTooLong, n, maxLength)
		}
	}

	if _, err := ParseLanguage(string(r.Language)); err != nil {
		return err
	}
	return nil
}

// Result of a blocking pipeline run
type Result struct {
	RequestID      string        `json:"request_id"`
	Verdict        Verdict       `json:"verdict"`
	SimplifiedText string        `json:"simplified_text"`
	Duration       time.Duration `json:"duration_ns"`
}
