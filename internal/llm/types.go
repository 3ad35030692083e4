package llm

type LLMRequest struct {
	Model        string
	SystemPrompt string
	Prompt       string
	MaxTokens    int
	Temperature  float64
	Seed         int64
	// LogitBias maps token ids to a bias in [-100, 100]. Providers without support ignore it.
	LogitBias map[string]int64
}

type LLMResponse struct {
	Content    string
	StopReason string
	Model      string
}
