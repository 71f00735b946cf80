// Package bedrock adapts the AWS Bedrock Converse API to the agentwire
// Provider interface. The runtime client is injected so callers keep
// ownership of AWS configuration and credential resolution.
package bedrock

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"

	"github.com/haowjy/agentwire-go"
)

// RuntimeClient is the subset of *bedrockruntime.Client the provider uses.
type RuntimeClient interface {
	ConverseStream(ctx context.Context, params *bedrockruntime.ConverseStreamInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseStreamOutput, error)
}

// Config holds construction-time configuration for the Bedrock provider.
type Config struct {
	// Client is the Bedrock runtime client, typically
	// bedrockruntime.NewFromConfig(awsCfg). Required.
	Client RuntimeClient

	// Options is the shared request configuration (model, budgets,
	// thinking). The model variant is resolved once at construction.
	Options agentwire.Options
}

// Provider implements agentwire.Provider for models served through AWS
// Bedrock.
type Provider struct {
	client RuntimeClient
	opts   agentwire.Options
	model  agentwire.SelectedModel
}

// New creates a Bedrock provider.
func New(cfg Config) (*Provider, error) {
	if cfg.Client == nil {
		return nil, &agentwire.ConfigError{Field: "Client", Reason: "bedrock runtime client is required"}
	}
	if err := agentwire.ValidateOptions(&cfg.Options); err != nil {
		return nil, err
	}

	catalog := agentwire.GetCatalog()
	modelID := cfg.Options.GetModel(catalog.DefaultModel(agentwire.ProviderBedrock))

	return &Provider{
		client: cfg.Client,
		opts:   cfg.Options,
		model: agentwire.SelectedModel{
			ID:   modelID,
			Info: catalog.ModelInfoOrDefault(agentwire.ProviderBedrock, modelID),
		},
	}, nil
}

// Name returns the provider identifier.
func (p *Provider) Name() agentwire.ProviderID {
	return agentwire.ProviderBedrock
}

// Model returns the model this provider was configured with.
func (p *Provider) Model() agentwire.SelectedModel {
	return p.model
}
