package models

import (
	"errors"
	"net/http"
)

// Validation errors
var (
	ErrEmptyText       = errors.New("text is required")
	ErrTextTooLong     = errors.New("text too long")
	ErrInvalidLanguage = errors.New("invalid language")
)

// Pipeline errors
var (
	ErrNotMedical          = errors.New("input is not medical text")
	ErrUpstreamUnavailable = errors.New("completion service unavailable")
	ErrInvalidVerdict      = errors.New("guardrail returned an invalid verdict")
	ErrEmptyCompletion     = errors.New("completion returned no text")
	ErrStreamConsumed      = errors.New("stream already consumed")
	ErrStreamAbandoned     = errors.New("stream abandoned by the consumer")
)

// Status codes carried in the response envelope.
const (
	CodeOK          = http.StatusOK
	CodeBadRequest  = http.StatusBadRequest
	CodeNotMedical  = 490
	CodeUnexpected  = http.StatusInternalServerError
	CodeUnavailable = http.StatusServiceUnavailable
)

const (
	MessageServerUp    = "Server is up and running"
	MessageNotMedical  = "Please only use this API to simplify medical text."
	MessageUnavailable = "OpenAI server is busy, try again later"
	MessageUnexpected  = "Unexpected error."
)

// Envelope is the {code, message} body shared by every surface.
type Envelope struct {
	Code    int `json:"code" description:"Outcome code (200, 400, 490, 500, 503)"`
	Message any `json:"message" description:"Status text or the simplified report"`
}

type SimplifiedMessage struct {
	SimplifiedText string `json:"simplified_text" description:"Plain-language rewrite of the report"`
}

func IsValidation(err error) bool {
	return errors.Is(err, ErrEmptyText) ||
		errors.Is(err, ErrTextTooLong) ||
		errors.Is(err, ErrInvalidLanguage)
}

// CodeFor maps a pipeline error onto the envelope code and message.
func CodeFor(err error) (int, string) {
	switch {
	case err == nil:
		return CodeOK, ""
	case IsValidation(err):
		return CodeBadRequest, err.Error()
	case errors.Is(err, ErrNotMedical):
		return CodeNotMedical, MessageNotMedical
	case errors.Is(err, ErrUpstreamUnavailable):
		return CodeUnavailable, MessageUnavailable
	default:
		return CodeUnexpected, MessageUnexpected
	}
}

// NewEnvelope builds the response body for a finished run.
func NewEnvelope(result Result, err error) Envelope {
	if err != nil {
		code, message := CodeFor(err)
		return Envelope{Code: code, Message: message}
	}

	return Envelope{
		Code:    CodeOK,
		Message: SimplifiedMessage{SimplifiedText: result.SimplifiedText},
	}
}
