package bedrock

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/gabrielchua/descriptive-theory/internal/llm"
)

type fakeRuntime struct {
	body     []byte
	err      error
	captured *bedrockruntime.InvokeModelInput
}

func (f *fakeRuntime) InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error) {
	f.captured = params
	if f.err != nil {
		return nil, f.err
	}
	return &bedrockruntime.InvokeModelOutput{Body: f.body}, nil
}

func (f *fakeRuntime) InvokeModelWithResponseStream(ctx context.Context, params *bedrockruntime.InvokeModelWithResponseStreamInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelWithResponseStreamOutput, error) {
	return nil, errors.New("not implemented")
}

func TestInvokeModel_Success(t *testing.T) {
	runtime := &fakeRuntime{
		body: []byte(`{"content":[{"type":"text","text":"Your "},{"type":"text","text":"heart is fine."}],"stop_reason":"end_turn"}`),
	}
	client := &Client{Client: runtime, ModelID: "anthropic.claude-3-haiku-20240307-v1:0"}

	resp, err := client.InvokeModel(context.Background(), llm.LLMRequest{
		SystemPrompt: "You are a friendly doctor.",
		Prompt:       "ECG: sinus rhythm",
		Temperature:  0,
	})
	if err != nil {
		t.Fatalf("InvokeModel failed: %v", err)
	}

	if resp.Content != "Your heart is fine." {
		t.Errorf("Unexpected content %q", resp.Content)
	}
	if resp.StopReason != "end_turn" {
		t.Errorf("Unexpected stop reason %q", resp.StopReason)
	}

	var sent claudeMessageRequest
	if err := json.Unmarshal(runtime.captured.Body, &sent); err != nil {
		t.Fatalf("invalid request body: %v", err)
	}
	if sent.System != "You are a friendly doctor." {
		t.Errorf("Expected system prompt to be sent, got %q", sent.System)
	}
	if sent.MaxTokens != defaultMaxTokens {
		t.Errorf("Expected default max tokens %d, got %d", defaultMaxTokens, sent.MaxTokens)
	}
	if *runtime.captured.ModelId != "anthropic.claude-3-haiku-20240307-v1:0" {
		t.Errorf("Unexpected model id %s", *runtime.captured.ModelId)
	}
}

func TestInvokeModel_RequestModelOverride(t *testing.T) {
	runtime := &fakeRuntime{body: []byte(`{"content":[{"type":"text","text":"1"}]}`)}
	client := &Client{Client: runtime, ModelID: "default"}

	if _, err := client.InvokeModel(context.Background(), llm.LLMRequest{Model: "override", Prompt: "x", MaxTokens: 1}); err != nil {
		t.Fatalf("InvokeModel failed: %v", err)
	}
	if *runtime.captured.ModelId != "override" {
		t.Errorf("Expected model override, got %s", *runtime.captured.ModelId)
	}
}

func TestInvokeModel_Error(t *testing.T) {
	client := &Client{Client: &fakeRuntime{err: errors.New("ThrottlingException")}, ModelID: "m"}

	if _, err := client.InvokeModel(context.Background(), llm.LLMRequest{Prompt: "x"}); err == nil {
		t.Error("Expected error to be returned")
	}
}

func TestInvokeModel_InvalidBody(t *testing.T) {
	client := &Client{Client: &fakeRuntime{body: []byte("not json")}, ModelID: "m"}

	if _, err := client.InvokeModel(context.Background(), llm.LLMRequest{Prompt: "x"}); err == nil {
		t.Error("Expected unmarshal error")
	}
}
