package llm

import (
	"context"
)

// LLMClient is an interface for invoking chat-completion models.
// This allows mocking in tests without making real API calls
type LLMClient interface {
	InvokeModel(ctx context.Context, request LLMRequest) (*LLMResponse, error)
	InvokeModelStream(ctx context.Context, request LLMRequest, callback StreamCallback) (*LLMResponse, error)
}

// StreamCallback receives each text fragment as it arrives. Returning an error aborts the stream.
type StreamCallback func(chunk string) error
