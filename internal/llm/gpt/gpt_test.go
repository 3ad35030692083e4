package gpt

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gabrielchua/descriptive-theory/internal/llm"
)

const completionBody = `{
  "id": "chatcmpl-1",
  "object": "chat.completion",
  "created": 1700000000,
  "model": "gpt-3.5-turbo-1106",
  "choices": [
    {"index": 0, "message": {"role": "assistant", "content": "1"}, "finish_reason": "length", "logprobs": null}
  ],
  "usage": {"prompt_tokens": 10, "completion_tokens": 1, "total_tokens": 11}
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient("test-key", "gpt-4-1106-preview", server.URL+"/")
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	return client
}

func TestNewClient_Validation(t *testing.T) {
	if _, err := NewClient("", "gpt-4", ""); err == nil {
		t.Error("Expected error for missing API key")
	}
	if _, err := NewClient("key", "", ""); err == nil {
		t.Error("Expected error for missing model")
	}
}

func TestInvokeModel_SendsClassifierParameters(t *testing.T) {
	var captured map[string]any

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &captured); err != nil {
			t.Errorf("invalid request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, completionBody)
	})

	resp, err := client.InvokeModel(context.Background(), llm.LLMRequest{
		Model:        "gpt-3.5-turbo-1106",
		SystemPrompt: "classify",
		Prompt:       "Chest X-ray: no acute findings.",
		MaxTokens:    1,
		Temperature:  0,
		Seed:         0,
		LogitBias:    map[string]int64{"15": 100, "16": 100},
	})
	if err != nil {
		t.Fatalf("InvokeModel failed: %v", err)
	}

	if resp.Content != "1" {
		t.Errorf("Expected content '1', got %q", resp.Content)
	}

	if captured["model"] != "gpt-3.5-turbo-1106" {
		t.Errorf("Expected request model override, got %v", captured["model"])
	}
	if captured["max_tokens"] != float64(1) {
		t.Errorf("Expected max_tokens=1, got %v", captured["max_tokens"])
	}
	if captured["seed"] != float64(0) {
		t.Errorf("Expected seed=0, got %v", captured["seed"])
	}
	if captured["temperature"] != float64(0) {
		t.Errorf("Expected temperature=0, got %v", captured["temperature"])
	}

	bias, ok := captured["logit_bias"].(map[string]any)
	if !ok || bias["15"] != float64(100) || bias["16"] != float64(100) {
		t.Errorf("Expected logit_bias {15:100,16:100}, got %v", captured["logit_bias"])
	}

	messages, ok := captured["messages"].([]any)
	if !ok || len(messages) != 2 {
		t.Fatalf("Expected system and user messages, got %v", captured["messages"])
	}
	first := messages[0].(map[string]any)
	if first["role"] != "system" || first["content"] != "classify" {
		t.Errorf("Unexpected system message %v", first)
	}
}

func TestInvokeModel_OmitsOptionalParameters(t *testing.T) {
	var captured map[string]any

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &captured)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, completionBody)
	})

	_, err := client.InvokeModel(context.Background(), llm.LLMRequest{Prompt: "MRI report"})
	if err != nil {
		t.Fatalf("InvokeModel failed: %v", err)
	}

	if _, ok := captured["max_tokens"]; ok {
		t.Error("Expected max_tokens to be omitted")
	}
	if _, ok := captured["logit_bias"]; ok {
		t.Error("Expected logit_bias to be omitted")
	}
	if captured["model"] != "gpt-4-1106-preview" {
		t.Errorf("Expected default model, got %v", captured["model"])
	}
}

func TestInvokeModel_ServerError(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprint(w, `{"error": {"message": "overloaded", "type": "server_error"}}`)
	})

	_, err := client.InvokeModel(context.Background(), llm.LLMRequest{Prompt: "MRI"})
	if err == nil {
		t.Fatal("Expected error for 503 response")
	}
	if calls != 1 {
		t.Errorf("Expected exactly one call (no retries), got %d", calls)
	}
}

func TestInvokeModelStream_CollectsChunks(t *testing.T) {
	chunks := []string{"Your ", "scan ", "looks normal."}

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		for i, c := range chunks {
			finish := "null"
			if i == len(chunks)-1 {
				finish = `"stop"`
			}
			fmt.Fprintf(w, "data: {\"id\":\"c\",\"object\":\"chat.completion.chunk\",\"created\":1,\"model\":\"gpt-4-1106-preview\",\"choices\":[{\"index\":0,\"delta\":{\"content\":%q},\"finish_reason\":%s}]}\n\n", c, finish)
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
	})

	var received []string
	resp, err := client.InvokeModelStream(context.Background(), llm.LLMRequest{Prompt: "MRI"}, func(chunk string) error {
		received = append(received, chunk)
		return nil
	})
	if err != nil {
		t.Fatalf("InvokeModelStream failed: %v", err)
	}

	if strings.Join(received, "") != "Your scan looks normal." {
		t.Errorf("Unexpected chunks %v", received)
	}
	if resp.Content != "Your scan looks normal." {
		t.Errorf("Unexpected full content %q", resp.Content)
	}
	if resp.StopReason != "stop" {
		t.Errorf("Expected stop reason 'stop', got %q", resp.StopReason)
	}
}

func TestInvokeModelStream_CallbackAborts(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"id\":\"c\",\"object\":\"chat.completion.chunk\",\"created\":1,\"model\":\"m\",\"choices\":[{\"index\":0,\"delta\":{\"content\":\"a\"},\"finish_reason\":null}]}\n\n")
		fmt.Fprint(w, "data: {\"id\":\"c\",\"object\":\"chat.completion.chunk\",\"created\":1,\"model\":\"m\",\"choices\":[{\"index\":0,\"delta\":{\"content\":\"b\"},\"finish_reason\":null}]}\n\n")
		fmt.Fprint(w, "data: [DONE]\n\n")
	})

	stop := fmt.Errorf("stop")
	calls := 0
	_, err := client.InvokeModelStream(context.Background(), llm.LLMRequest{Prompt: "MRI"}, func(chunk string) error {
		calls++
		return stop
	})
	if err == nil {
		t.Fatal("Expected callback error to abort the stream")
	}
	if calls != 1 {
		t.Errorf("Expected callback to run once, got %d", calls)
	}
}
