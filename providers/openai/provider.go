// Package openai adapts the OpenAI Chat Completions API to the agentwire
// Provider interface, including the blocking fallback for legacy models
// that reject streaming or system prompts.
package openai

import (
	"context"

	openai "github.com/sashabaranov/go-openai"

	"github.com/haowjy/agentwire-go"
)

// ChatClient captures the subset of the go-openai client used by the
// provider. *openai.Client satisfies it.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
	CreateChatCompletionStream(ctx context.Context, request openai.ChatCompletionRequest) (*openai.ChatCompletionStream, error)
}

// Config holds construction-time configuration for the OpenAI provider.
type Config struct {
	// APIKey is the OpenAI API key. Required unless Client is set.
	APIKey string

	// Client overrides the SDK client, e.g. for tests or custom
	// transports. When set, APIKey and Options.BaseURL are ignored.
	Client ChatClient

	// Options is the shared request configuration (model, budgets).
	// Options.BaseURL points the client at an OpenAI-compatible endpoint.
	Options agentwire.Options
}

// Provider implements agentwire.Provider for OpenAI models.
type Provider struct {
	client ChatClient
	opts   agentwire.Options
	model  agentwire.SelectedModel
}

// New creates an OpenAI provider.
func New(cfg Config) (*Provider, error) {
	client := cfg.Client
	if client == nil {
		if cfg.APIKey == "" {
			return nil, agentwire.ErrInvalidAPIKey
		}
		clientCfg := openai.DefaultConfig(cfg.APIKey)
		if baseURL := cfg.Options.GetBaseURL(""); baseURL != "" {
			clientCfg.BaseURL = baseURL
		}
		client = openai.NewClientWithConfig(clientCfg)
	}
	if err := agentwire.ValidateOptions(&cfg.Options); err != nil {
		return nil, err
	}

	catalog := agentwire.GetCatalog()
	modelID := cfg.Options.GetModel(catalog.DefaultModel(agentwire.ProviderOpenAI))

	return &Provider{
		client: client,
		opts:   cfg.Options,
		model: agentwire.SelectedModel{
			ID:   modelID,
			Info: catalog.ModelInfoOrDefault(agentwire.ProviderOpenAI, modelID),
		},
	}, nil
}

// Name returns the provider identifier.
func (p *Provider) Name() agentwire.ProviderID {
	return agentwire.ProviderOpenAI
}

// Model returns the model this provider was configured with.
func (p *Provider) Model() agentwire.SelectedModel {
	return p.model
}
