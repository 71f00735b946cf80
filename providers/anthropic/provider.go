// Package anthropic adapts the Anthropic Messages API to the agentwire
// Provider interface.
package anthropic

import (
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/haowjy/agentwire-go"
)

// Config holds construction-time configuration for the Anthropic provider.
type Config struct {
	// APIKey is the Anthropic API key. Required.
	APIKey string

	// Options is the shared request configuration (model, budgets,
	// thinking). The model variant is resolved once at construction.
	Options agentwire.Options
}

// Provider implements agentwire.Provider for Anthropic (Claude) models.
type Provider struct {
	client anthropic.Client
	opts   agentwire.Options
	model  agentwire.SelectedModel
}

// New creates an Anthropic provider.
func New(cfg Config) (*Provider, error) {
	if cfg.APIKey == "" {
		return nil, agentwire.ErrInvalidAPIKey
	}
	if err := agentwire.ValidateOptions(&cfg.Options); err != nil {
		return nil, err
	}

	clientOpts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if baseURL := cfg.Options.GetBaseURL(""); baseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(baseURL))
	}

	catalog := agentwire.GetCatalog()
	modelID := cfg.Options.GetModel(catalog.DefaultModel(agentwire.ProviderAnthropic))

	return &Provider{
		client: anthropic.NewClient(clientOpts...),
		opts:   cfg.Options,
		model: agentwire.SelectedModel{
			ID:   modelID,
			Info: catalog.ModelInfoOrDefault(agentwire.ProviderAnthropic, modelID),
		},
	}, nil
}

// Name returns the provider identifier.
func (p *Provider) Name() agentwire.ProviderID {
	return agentwire.ProviderAnthropic
}

// Model returns the model this provider was configured with.
func (p *Provider) Model() agentwire.SelectedModel {
	return p.model
}
