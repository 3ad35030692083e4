package config

type PromptsConfig struct {
	Guardrail  GuardrailConfig  `yaml:"guardrail"`
	Simplifier SimplifierConfig `yaml:"simplifier"`
}

type GuardrailConfig struct {
	Model        string  `yaml:"model"`
	SystemPrompt string  `yaml:"system_prompt"`
	Temperature  float64 `yaml:"temperature"`
	Seed         int64   `yaml:"seed"`
	// LogitBias forces the single output token to one of the listed ids.
	LogitBias map[string]int64 `yaml:"logit_bias"`
}

type SimplifierConfig struct {
	Model       string  `yaml:"model"`
	Persona     string  `yaml:"persona"`
	Temperature float64 `yaml:"temperature"`
	Seed        int64   `yaml:"seed"`
	MaxTokens   int     `yaml:"max_tokens"`
}
