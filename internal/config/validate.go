package config

import (
	"errors"
	"fmt"
)

// Validate checks internal consistency. Remote providers are optional (the
// keyword fallback needs no configuration), but whatever is configured must
// be usable.
func (c *Config) Validate() error {
	if c.Analysis.Cerebras.APIKey != "" && c.Analysis.Cerebras.Model == "" {
		return errors.New("analysis.cerebras.model is required when analysis.cerebras.api_key is set")
	}
	if c.Analysis.OpenAI.APIKey != "" && c.Analysis.OpenAI.Model == "" {
		return errors.New("analysis.openai.model is required when analysis.openai.api_key is set")
	}
	if c.Analysis.Gemini.APIKey != "" && c.Analysis.Gemini.Model == "" {
		return errors.New("analysis.gemini.model is required when analysis.gemini.api_key is set")
	}

	if c.Analysis.TimeoutSeconds <= 0 {
		return errors.New("analysis.timeout_seconds must be a positive integer")
	}
	if c.Analysis.MaxPromptSentences < 0 {
		return errors.New("analysis.max_prompt_sentences must not be negative")
	}

	if c.Fetch.TimeoutSeconds <= 0 {
		return errors.New("fetch.timeout_seconds must be a positive integer")
	}
	if c.Fetch.MaxBodyBytes <= 0 {
		return fmt.Errorf("fetch.max_body_bytes must be positive, got %d", c.Fetch.MaxBodyBytes)
	}

	if c.Server.Port == "" {
		return errors.New("server.port is required")
	}
	return nil
}
