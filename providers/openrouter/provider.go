// Package openrouter adapts OpenRouter's OpenAI-compatible chat completions
// API to the agentwire Provider interface.
//
// There is no official SDK; the adapter speaks raw JSON over net/http.
// OpenRouter extends the OpenAI wire format with features the typed OpenAI
// client cannot express (cache_control markers on content parts, the
// reasoning block), so the wire shapes are hand-rolled structs.
//
// Common issues:
//   - 404 errors: verify the model name at https://openrouter.ai/models
//     (models use "provider/model" format, e.g. "anthropic/claude-sonnet-4.5")
package openrouter

import (
	"net/http"
	"time"

	"github.com/haowjy/agentwire-go"
)

const defaultBaseURL = "https://openrouter.ai/api/v1"

// Attribution headers; OpenRouter uses these for app rankings.
const (
	attributionReferer = "https://github.com/haowjy/agentwire-go"
	attributionTitle   = "agentwire"
)

// Config holds construction-time configuration for the OpenRouter provider.
type Config struct {
	// APIKey is the OpenRouter API key. Required.
	APIKey string

	// Options is the shared request configuration (model, budgets,
	// thinking). Options.BaseURL overrides the public endpoint.
	Options agentwire.Options
}

// Provider implements agentwire.Provider for models proxied through
// OpenRouter.
type Provider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	opts       agentwire.Options
	model      agentwire.SelectedModel
}

// New creates an OpenRouter provider.
func New(cfg Config) (*Provider, error) {
	if cfg.APIKey == "" {
		return nil, agentwire.ErrInvalidAPIKey
	}
	if err := agentwire.ValidateOptions(&cfg.Options); err != nil {
		return nil, err
	}

	catalog := agentwire.GetCatalog()
	modelID := cfg.Options.GetModel(catalog.DefaultModel(agentwire.ProviderOpenRouter))

	return &Provider{
		apiKey:     cfg.APIKey,
		baseURL:    cfg.Options.GetBaseURL(defaultBaseURL),
		httpClient: &http.Client{Timeout: 120 * time.Second},
		opts:       cfg.Options,
		model: agentwire.SelectedModel{
			ID:   modelID,
			Info: catalog.ModelInfoOrDefault(agentwire.ProviderOpenRouter, modelID),
		},
	}, nil
}

// Name returns the provider identifier.
func (p *Provider) Name() agentwire.ProviderID {
	return agentwire.ProviderOpenRouter
}

// Model returns the model this provider was configured with.
func (p *Provider) Model() agentwire.SelectedModel {
	return p.model
}
