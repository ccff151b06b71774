package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// ProviderConfig configures one OpenAI-compatible chat endpoint.
type ProviderConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
}

type Config struct {
	Analysis struct {
		// Cerebras is the primary provider (OpenAI-compatible endpoint).
		Cerebras ProviderConfig `mapstructure:"cerebras"`
		// OpenAI is an optional alternate OpenAI-compatible endpoint.
		OpenAI ProviderConfig `mapstructure:"openai"`
		Gemini struct {
			APIKey string `mapstructure:"api_key"`
			Model  string `mapstructure:"model"`
		} `mapstructure:"gemini"`
		// TimeoutSeconds bounds each remote model attempt.
		TimeoutSeconds int `mapstructure:"timeout_seconds"`
		// MaxPromptSentences caps how much input is placed in a remote
		// prompt. Zero disables excerpting.
		MaxPromptSentences int `mapstructure:"max_prompt_sentences"`
	} `mapstructure:"analysis"`

	Fetch struct {
		TimeoutSeconds int `mapstructure:"timeout_seconds"`
		MaxBodyBytes   int `mapstructure:"max_body_bytes"`
	} `mapstructure:"fetch"`

	Server struct {
		Addr string `mapstructure:"addr"`
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()
	// API keys are commonly supplied via environment rather than the yaml
	// file; bind the conventional variable names explicitly.
	viper.BindEnv("analysis.cerebras.api_key", "CEREBRAS_API_KEY")
	viper.BindEnv("analysis.openai.api_key", "OPENAI_API_KEY")
	viper.BindEnv("analysis.gemini.api_key", "GEMINI_API_KEY")

	viper.SetDefault("analysis.cerebras.base_url", "https://api.cerebras.ai/v1")
	viper.SetDefault("analysis.cerebras.model", "llama3.1-8b")
	viper.SetDefault("analysis.openai.model", "gpt-4o-mini")
	viper.SetDefault("analysis.gemini.model", "gemini-1.5-flash")
	viper.SetDefault("analysis.timeout_seconds", 15)
	viper.SetDefault("analysis.max_prompt_sentences", 40)
	viper.SetDefault("fetch.timeout_seconds", 20)
	viper.SetDefault("fetch.max_body_bytes", 2<<20)
	viper.SetDefault("server.addr", "0.0.0.0")
	viper.SetDefault("server.port", "8080")

	if err := viper.ReadInConfig(); err != nil {
		// A missing config file is fine; defaults plus env vars cover the
		// fallback-only mode.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}
	return &config, nil
}
