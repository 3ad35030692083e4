package api

import (
	"encoding/json"
	"fmt"
)

type SSEEvent struct {
	Event string `json:"-"`
	Data  any    `json:"-"`
}

// SSE event payloads
type StreamStartEvent struct {
	RequestID string `json:"request_id"`
	Model     string `json:"model"`
}

type StreamChunkEvent struct {
	Text string `json:"text"`
}

type StreamDoneEvent struct{}

type StreamErrorEvent struct {
	Code  int    `json:"code"`
	Error string `json:"error"`
}

func (e SSEEvent) Format() (string, error) {
	jsonData, err := json.Marshal(e.Data)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("event: %s\ndata: %s\n\n", e.Event, string(jsonData)), nil
}
