package gpt

import (
	"context"
	"fmt"
	"strings"

	"github.com/gabrielchua/descriptive-theory/internal/llm"
	"github.com/openai/openai-go"
)

var _ llm.LLMClient = (*Client)(nil)

func (c *Client) InvokeModel(ctx context.Context, request llm.LLMRequest) (*llm.LLMResponse, error) {
	params := c.buildParams(request)

	output, err := c.Client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("unable to invoke gpt model: %w", err)
	}

	if len(output.Choices) == 0 {
		return nil, fmt.Errorf("no choices in response")
	}

	response := output.Choices[0]
	return &llm.LLMResponse{
		Content:    response.Message.Content,
		StopReason: fmt.Sprint(response.FinishReason),
		Model:      output.Model,
	}, nil
}

func (c *Client) InvokeModelStream(ctx context.Context, request llm.LLMRequest, callback llm.StreamCallback) (*llm.LLMResponse, error) {
	params := c.buildParams(request)

	stream := c.Client.Chat.Completions.NewStreaming(ctx, params)
	defer stream.Close()

	var fullContent strings.Builder
	var stopReason string
	var model string

	for stream.Next() {
		chunk := stream.Current()
		if chunk.Model != "" {
			model = chunk.Model
		}
		if len(chunk.Choices) == 0 {
			continue
		}

		choice := chunk.Choices[0]
		if text := choice.Delta.Content; text != "" {
			fullContent.WriteString(text)
			if callback != nil {
				if err := callback(text); err != nil {
					return nil, fmt.Errorf("callback error: %w", err)
				}
			}
		}

		if choice.FinishReason != "" {
			stopReason = fmt.Sprint(choice.FinishReason)
		}
	}

	if err := stream.Err(); err != nil {
		return nil, fmt.Errorf("stream error: %w", err)
	}

	return &llm.LLMResponse{
		Content:    fullContent.String(),
		StopReason: stopReason,
		Model:      model,
	}, nil
}

func (c *Client) buildParams(request llm.LLMRequest) openai.ChatCompletionNewParams {
	model := c.ModelID
	if request.Model != "" {
		model = request.Model
	}

	var messages []openai.ChatCompletionMessageParamUnion
	if request.SystemPrompt != "" {
		messages = append(messages, openai.SystemMessage(request.SystemPrompt))
	}
	messages = append(messages, openai.UserMessage(request.Prompt))

	params := openai.ChatCompletionNewParams{
		Messages:    messages,
		Model:       openai.ChatModel(model),
		Temperature: openai.Float(request.Temperature),
		Seed:        openai.Int(request.Seed),
	}

	if request.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(request.MaxTokens))
	}
	if len(request.LogitBias) > 0 {
		params.LogitBias = request.LogitBias
	}

	return params
}
