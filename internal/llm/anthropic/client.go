package anthropic

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/gabrielchua/descriptive-theory/internal/llm"
)

const (
	// defaultModel is used when neither the client nor the request names one.
	defaultModel = "claude-3-5-haiku-latest"

	// defaultMaxTokens applies when the request leaves MaxTokens unset; the Messages API requires it.
	defaultMaxTokens = 4096
)

// Client implements llm.LLMClient on the Anthropic Messages API. Logit bias has no
// equivalent there and is ignored; the seed is not supported either.
type Client struct {
	client anthropic.Client
	model  string
}

var _ llm.LLMClient = (*Client)(nil)

// Option configures a Client.
type Option func(*clientConfig)

type clientConfig struct {
	model   string
	baseURL string
}

// WithModel overrides the default model.
func WithModel(model string) Option {
	return func(c *clientConfig) {
		c.model = model
	}
}

// WithBaseURL points the client at a different endpoint (used by tests).
func WithBaseURL(url string) Option {
	return func(c *clientConfig) {
		c.baseURL = url
	}
}

func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("anthropic: API key is required")
	}

	cfg := clientConfig{model: defaultModel}
	for _, o := range opts {
		o(&cfg)
	}

	requestOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if cfg.baseURL != "" {
		requestOpts = append(requestOpts, option.WithBaseURL(cfg.baseURL))
	}

	return &Client{
		client: anthropic.NewClient(requestOpts...),
		model:  cfg.model,
	}, nil
}

func (c *Client) InvokeModel(ctx context.Context, request llm.LLMRequest) (*llm.LLMResponse, error) {
	msg, err := c.client.Messages.New(ctx, c.buildParams(request))
	if err != nil {
		return nil, fmt.Errorf("anthropic: completion failed: %w", err)
	}

	var content strings.Builder
	for _, block := range msg.Content {
		if variant, ok := block.AsAny().(anthropic.TextBlock); ok {
			content.WriteString(variant.Text)
		}
	}

	return &llm.LLMResponse{
		Content:    content.String(),
		StopReason: string(msg.StopReason),
		Model:      string(msg.Model),
	}, nil
}

func (c *Client) InvokeModelStream(ctx context.Context, request llm.LLMRequest, callback llm.StreamCallback) (*llm.LLMResponse, error) {
	stream := c.client.Messages.NewStreaming(ctx, c.buildParams(request))
	defer stream.Close()

	message := anthropic.Message{}
	var fullContent strings.Builder

	for stream.Next() {
		event := stream.Current()
		if err := message.Accumulate(event); err != nil {
			return nil, fmt.Errorf("anthropic: accumulate stream event: %w", err)
		}

		switch variant := event.AsAny().(type) {
		case anthropic.ContentBlockDeltaEvent:
			if delta, ok := variant.Delta.AsAny().(anthropic.TextDelta); ok && delta.Text != "" {
				fullContent.WriteString(delta.Text)
				if callback != nil {
					if err := callback(delta.Text); err != nil {
						return nil, fmt.Errorf("callback error: %w", err)
					}
				}
			}
		}
	}

	if err := stream.Err(); err != nil {
		return nil, fmt.Errorf("anthropic: stream error: %w", err)
	}

	return &llm.LLMResponse{
		Content:    fullContent.String(),
		StopReason: string(message.StopReason),
		Model:      string(message.Model),
	}, nil
}

func (c *Client) buildParams(request llm.LLMRequest) anthropic.MessageNewParams {
	model := c.model
	if request.Model != "" {
		model = request.Model
	}

	maxTokens := int64(defaultMaxTokens)
	if request.MaxTokens > 0 {
		maxTokens = int64(request.MaxTokens)
	}

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(model),
		MaxTokens:   maxTokens,
		Temperature: anthropic.Float(request.Temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(request.Prompt)),
		},
	}

	if request.SystemPrompt != "" {
		params.System = []anthropic.TextBlockParam{
			{Text: request.SystemPrompt},
		}
	}

	return params
}
