package moderation

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
	log "github.com/sirupsen/logrus"
)

// ChatCompleter is the minimal slice of the OpenAI client used here; it keeps
// the provider mockable in tests.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIProvider calls any OpenAI-compatible chat-completion endpoint.
// Cerebras and other compatible hosts work through BaseURL.
type OpenAIProvider struct {
	client ChatCompleter
	model  string
	label  string
}

// NewOpenAIProvider builds a provider for an OpenAI-compatible endpoint.
// baseURL may be empty for the default OpenAI host; label names the provider
// in logs and ModelUsed fields.
func NewOpenAIProvider(apiKey, baseURL, model, label string) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%s provider requires an API key", label)
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	log.Infof("%s provider initialized with model %s", label, model)
	return &OpenAIProvider{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		label:  label,
	}, nil
}

// NewOpenAIProviderWithClient injects a prebuilt client; used by tests.
func NewOpenAIProviderWithClient(client ChatCompleter, model, label string) *OpenAIProvider {
	return &OpenAIProvider{client: client, model: model, label: label}
}

// Name identifies the provider and model for ModelUsed.
func (p *OpenAIProvider) Name() string {
	return fmt.Sprintf("%s/%s", p.label, p.model)
}

// Complete issues one chat completion and returns the raw reply text.
func (p *OpenAIProvider) Complete(ctx context.Context, prompt string) (string, error) {
	if p.client == nil {
		return "", fmt.Errorf("%s provider is not initialized", p.label)
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("%s chat completion failed: %w", p.label, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s returned no choices", p.label)
	}
	return resp.Choices[0].Message.Content, nil
}
