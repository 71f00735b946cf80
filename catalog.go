package agentwire

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed config/catalog/*.yaml
var catalogFS embed.FS

// Catalog Philosophy:
//
// The catalog provides MODEL METADATA for request shaping, UX, and pricing
// estimates. It does NOT enforce validation - provider APIs are the source
// of truth.
//
// Use cases:
//  - Pick the default model for a provider
//  - Decide request shaping (prompt caching, thinking, the legacy fallback)
//  - Estimate cost from per-MTok pricing
//  - Feed the advisory warning rules
//
// The catalog may lag as providers release new models. Library users can
// override the embedded data by:
//  1. Calling LoadCatalogFromFile() with custom YAML
//  2. Calling RegisterModels() programmatically
//
// Unknown models never fail a request: lookups fall back to permissive
// defaults and the validation engine surfaces a warning.

// ModelInfo describes one model's limits, features, and pricing.
type ModelInfo struct {
	ContextWindow   int `yaml:"context_window"`
	MaxOutputTokens int `yaml:"max_output_tokens"`

	SupportsImages      bool `yaml:"supports_images"`
	SupportsPromptCache bool `yaml:"supports_prompt_cache"`
	SupportsThinking    bool `yaml:"supports_thinking"`
	SupportsStreaming   bool `yaml:"supports_streaming"`
	SupportsSystemRole  bool `yaml:"supports_system_role"`
	SupportsTemperature bool `yaml:"supports_temperature"`

	Pricing PricingInfo `yaml:"pricing"`
}

// PricingInfo contains model pricing in dollars per million tokens.
type PricingInfo struct {
	InputPer1M      float64 `yaml:"input_per_1m"`
	OutputPer1M     float64 `yaml:"output_per_1m"`
	CacheWritePer1M float64 `yaml:"cache_write_per_1m"`
	CacheReadPer1M  float64 `yaml:"cache_read_per_1m"`
}

// ProviderModels is the catalog entry for one provider.
type ProviderModels struct {
	Version      string               `yaml:"version"`      // Semantic version (e.g., "1.0.0")
	LastUpdated  string               `yaml:"last_updated"` // ISO 8601 date (e.g., "2026-08-01")
	Provider     string               `yaml:"provider"`
	DefaultModel string               `yaml:"default_model"`
	Models       map[string]ModelInfo `yaml:"models"`
}

// IsLegacy reports whether the model belongs to the legacy/limited
// exception class: no streaming, no system role, or fixed temperature.
// Adapters serve these models with a single non-streaming round trip
// re-expressed as stream events.
func (m ModelInfo) IsLegacy() bool {
	return !m.SupportsStreaming || !m.SupportsSystemRole || !m.SupportsTemperature
}

// DefaultModelInfo returns the permissive metadata used for models missing
// from the catalog.
func DefaultModelInfo() ModelInfo {
	return ModelInfo{
		ContextWindow:       128000,
		MaxOutputTokens:     DefaultMaxTokens,
		SupportsStreaming:   true,
		SupportsSystemRole:  true,
		SupportsTemperature: true,
	}
}

// Catalog manages per-provider model metadata.
type Catalog struct {
	providers map[string]*ProviderModels
	mu        sync.RWMutex
}

var (
	globalCatalog     *Catalog
	globalCatalogOnce sync.Once
)

// GetCatalog returns the global model catalog (singleton).
func GetCatalog() *Catalog {
	globalCatalogOnce.Do(func() {
		globalCatalog = &Catalog{
			providers: make(map[string]*ProviderModels),
		}
		if err := globalCatalog.loadEmbedded(); err != nil {
			// Don't panic - lookups fall back to defaults and validation
			// will surface the gap
			fmt.Printf("Warning: failed to load embedded model catalog: %v\n", err)
		}
	})
	return globalCatalog
}

// loadEmbedded loads every embedded per-provider YAML file.
func (c *Catalog) loadEmbedded() error {
	paths, err := fs.Glob(catalogFS, "config/catalog/*.yaml")
	if err != nil {
		return err
	}

	for _, path := range paths {
		data, err := catalogFS.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		var entry ProviderModels
		if err := yaml.Unmarshal(data, &entry); err != nil {
			return fmt.Errorf("failed to unmarshal %s: %w", path, err)
		}

		c.mu.Lock()
		c.providers[entry.Provider] = &entry
		c.mu.Unlock()
	}

	return nil
}

// GetProviderModels returns the catalog entry for a provider.
func (c *Catalog) GetProviderModels(provider ProviderID) (*ProviderModels, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.providers[provider.String()]
	if !ok {
		return nil, fmt.Errorf("no catalog entry for provider: %s", provider)
	}
	return entry, nil
}

// GetModelInfo returns metadata for a specific model.
func (c *Catalog) GetModelInfo(provider ProviderID, model string) (ModelInfo, error) {
	entry, err := c.GetProviderModels(provider)
	if err != nil {
		return ModelInfo{}, err
	}

	info, ok := entry.Models[model]
	if !ok {
		return ModelInfo{}, fmt.Errorf("model %s not found for provider %s", model, provider)
	}
	return info, nil
}

// ModelInfoOrDefault returns metadata for a model, falling back to
// permissive defaults when the model (or provider) is not in the catalog.
func (c *Catalog) ModelInfoOrDefault(provider ProviderID, model string) ModelInfo {
	info, err := c.GetModelInfo(provider, model)
	if err != nil {
		return DefaultModelInfo()
	}
	return info
}

// HasModel checks if a model is present in the catalog.
func (c *Catalog) HasModel(provider ProviderID, model string) bool {
	_, err := c.GetModelInfo(provider, model)
	return err == nil
}

// DefaultModel returns the provider's configured default model id, or ""
// when the provider has no catalog entry.
func (c *Catalog) DefaultModel(provider ProviderID) string {
	entry, err := c.GetProviderModels(provider)
	if err != nil {
		return ""
	}
	return entry.DefaultModel
}

// IsLegacyModel reports whether the model needs the non-streaming fallback.
// Models missing from the catalog get permissive defaults and are never
// legacy.
func (c *Catalog) IsLegacyModel(provider ProviderID, model string) bool {
	return c.ModelInfoOrDefault(provider, model).IsLegacy()
}

// LoadCatalogFromFile loads one provider's models from a YAML file,
// replacing any embedded entry for that provider. The file format matches
// the embedded YAML structure.
func (c *Catalog) LoadCatalogFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read catalog file: %w", err)
	}

	var entry ProviderModels
	if err := yaml.Unmarshal(data, &entry); err != nil {
		return fmt.Errorf("failed to unmarshal catalog: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.providers[entry.Provider] = &entry

	return nil
}

// RegisterModels programmatically registers a provider's models, replacing
// any embedded entry for that provider.
func (c *Catalog) RegisterModels(provider ProviderID, entry *ProviderModels) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.providers[provider.String()] = entry
}

// LoadCatalogFromFile is a convenience function that calls the global catalog's LoadCatalogFromFile.
func LoadCatalogFromFile(path string) error {
	return GetCatalog().LoadCatalogFromFile(path)
}

// RegisterModels is a convenience function that calls the global catalog's RegisterModels.
func RegisterModels(provider ProviderID, entry *ProviderModels) {
	GetCatalog().RegisterModels(provider, entry)
}
