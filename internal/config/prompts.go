package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

const defaultPromptsPath = "configs/prompts.yaml"

const (
	DefaultGuardrailModel  = "gpt-3.5-turbo-1106"
	DefaultSimplifierModel = "gpt-4-1106-preview"

	DefaultGuardrailPrompt = "Your goal is to classify if the given text is about medical matters. If yes, return 1. If no, return 0"

	DefaultPersona = "You are a friendly doctor. " +
		"Please simplify the given medical report in plain English. " +
		"Explain the findings, and if they are not serious, " +
		"assure the patient. " +
		"Be succicnt, and do not use technical terms someone without a " +
		"medical or life science degree would not understand. " +
		"Never add emojis or code snippets. "
)

// Token ids for "0" and "1" in the cl100k tokenizer.
const (
	TokenZero = "15"
	TokenOne  = "16"
)

// Default returns the built-in prompts.
func Default() *PromptsConfig {
	return &PromptsConfig{
		Guardrail: GuardrailConfig{
			Model:        DefaultGuardrailModel,
			SystemPrompt: DefaultGuardrailPrompt,
			LogitBias:    map[string]int64{TokenZero: 100, TokenOne: 100},
		},
		Simplifier: SimplifierConfig{
			Model:   DefaultSimplifierModel,
			Persona: DefaultPersona,
		},
	}
}

// LoadPromptsConfig reads PROMPTS_CONFIG_PATH. A missing file at the default location falls
// back to the built-in prompts; a missing file at an explicit location is an error.
func LoadPromptsConfig() (*PromptsConfig, error) {
	path := os.Getenv("PROMPTS_CONFIG_PATH")
	explicit := path != ""
	if !explicit {
		path = defaultPromptsPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := PromptsConfig{}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(cfg *PromptsConfig) {
	defaults := Default()

	if cfg.Guardrail.Model == "" {
		cfg.Guardrail.Model = defaults.Guardrail.Model
	}
	if cfg.Guardrail.SystemPrompt == "" {
		cfg.Guardrail.SystemPrompt = defaults.Guardrail.SystemPrompt
	}
	if cfg.Guardrail.LogitBias == nil {
		cfg.Guardrail.LogitBias = defaults.Guardrail.LogitBias
	}
	if cfg.Simplifier.Model == "" {
		cfg.Simplifier.Model = defaults.Simplifier.Model
	}
	if cfg.Simplifier.Persona == "" {
		cfg.Simplifier.Persona = defaults.Simplifier.Persona
	}
}

func (c *PromptsConfig) Validate() error {
	if c.Guardrail.Model == "" || c.Simplifier.Model == "" {
		return fmt.Errorf("model names must not be empty")
	}
	if c.Guardrail.SystemPrompt == "" {
		return fmt.Errorf("guardrail system_prompt must not be empty")
	}
	if c.Simplifier.Persona == "" {
		return fmt.Errorf("simplifier persona must not be empty")
	}

	for token, bias := range c.Guardrail.LogitBias {
		if _, err := strconv.Atoi(token); err != nil {
			return fmt.Errorf("invalid logit_bias token id %q", token)
		}
		if bias < -100 || bias > 100 {
			return fmt.Errorf("invalid logit_bias %d for token %s (expected -100..100)", bias, token)
		}
	}

	for name, temp := range map[string]float64{
		"guardrail":  c.Guardrail.Temperature,
		"simplifier": c.Simplifier.Temperature,
	} {
		if temp < 0 || temp > 2 {
			return fmt.Errorf("invalid temperature %f for %s", temp, name)
		}
	}

	if c.Simplifier.MaxTokens < 0 {
		return fmt.Errorf("negative max_tokens for simplifier")
	}
	return nil
}
