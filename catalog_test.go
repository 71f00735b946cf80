package agentwire

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetCatalog_EmbeddedDefaults(t *testing.T) {
	catalog := GetCatalog()

	tests := []struct {
		provider ProviderID
		expected string
	}{
		{ProviderAnthropic, "claude-sonnet-4-5-20250929"},
		{ProviderOpenAI, "gpt-4.1"},
		{ProviderBedrock, "anthropic.claude-sonnet-4-5-20250929-v1:0"},
		{ProviderOpenRouter, "anthropic/claude-sonnet-4.5"},
		{ProviderLorem, "lorem-fast"},
	}

	for _, tt := range tests {
		t.Run(tt.provider.String(), func(t *testing.T) {
			if got := catalog.DefaultModel(tt.provider); got != tt.expected {
				t.Errorf("DefaultModel(%s) = %q, want %q", tt.provider, got, tt.expected)
			}
		})
	}
}

func TestCatalog_DefaultModel_UnknownProvider(t *testing.T) {
	if got := GetCatalog().DefaultModel(ProviderID("nonexistent")); got != "" {
		t.Errorf("DefaultModel() = %q, want empty string", got)
	}
}

func TestCatalog_GetModelInfo(t *testing.T) {
	catalog := GetCatalog()

	info, err := catalog.GetModelInfo(ProviderOpenAI, "o1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if info.SupportsStreaming {
		t.Error("o1 should not support streaming")
	}
	if info.SupportsSystemRole {
		t.Error("o1 should not support the system role")
	}
	if info.SupportsTemperature {
		t.Error("o1 should not support temperature")
	}
	if !info.SupportsPromptCache {
		t.Error("o1 should support prompt caching")
	}
	if info.Pricing.InputPer1M != 15.00 || info.Pricing.OutputPer1M != 60.00 {
		t.Errorf("pricing = %+v, want 15.00 input / 60.00 output", info.Pricing)
	}

	if _, err := catalog.GetModelInfo(ProviderOpenAI, "not-a-model"); err == nil {
		t.Error("expected error for unknown model")
	}
	if _, err := catalog.GetModelInfo(ProviderID("nonexistent"), "gpt-4.1"); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestCatalog_ModelInfoOrDefault_Fallback(t *testing.T) {
	catalog := GetCatalog()

	info := catalog.ModelInfoOrDefault(ProviderAnthropic, "claude-future-model")
	if info != DefaultModelInfo() {
		t.Errorf("fallback info = %+v, want permissive defaults", info)
	}

	known := catalog.ModelInfoOrDefault(ProviderAnthropic, "claude-sonnet-4-5-20250929")
	if known.ContextWindow != 200000 {
		t.Errorf("ContextWindow = %d, want 200000", known.ContextWindow)
	}
}

func TestCatalog_HasModel(t *testing.T) {
	catalog := GetCatalog()

	if !catalog.HasModel(ProviderLorem, "lorem-slow") {
		t.Error("lorem-slow should be in the catalog")
	}
	if catalog.HasModel(ProviderLorem, "lorem-imagined") {
		t.Error("lorem-imagined should not be in the catalog")
	}
}

func TestCatalog_IsLegacyModel(t *testing.T) {
	catalog := GetCatalog()

	tests := []struct {
		name     string
		provider ProviderID
		model    string
		expected bool
	}{
		{"o1 needs the fallback", ProviderOpenAI, "o1", true},
		{"gpt-4.1 streams", ProviderOpenAI, "gpt-4.1", false},
		{"unknown models are never legacy", ProviderOpenAI, "gpt-99", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := catalog.IsLegacyModel(tt.provider, tt.model); got != tt.expected {
				t.Errorf("IsLegacyModel(%s, %s) = %v, want %v", tt.provider, tt.model, got, tt.expected)
			}
		})
	}
}

func TestModelInfo_IsLegacy(t *testing.T) {
	tests := []struct {
		name     string
		info     ModelInfo
		expected bool
	}{
		{"full capability model", DefaultModelInfo(), false},
		{
			name:     "no streaming",
			info:     ModelInfo{SupportsSystemRole: true, SupportsTemperature: true},
			expected: true,
		},
		{
			name:     "no system role",
			info:     ModelInfo{SupportsStreaming: true, SupportsTemperature: true},
			expected: true,
		},
		{
			name:     "fixed temperature",
			info:     ModelInfo{SupportsStreaming: true, SupportsSystemRole: true},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.info.IsLegacy(); got != tt.expected {
				t.Errorf("IsLegacy() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCatalog_RegisterModels(t *testing.T) {
	// A private catalog keeps the global singleton untouched.
	catalog := &Catalog{providers: make(map[string]*ProviderModels)}

	catalog.RegisterModels(ProviderAnthropic, &ProviderModels{
		Provider:     "anthropic",
		DefaultModel: "claude-custom",
		Models: map[string]ModelInfo{
			"claude-custom": {ContextWindow: 1000, SupportsStreaming: true},
		},
	})

	if got := catalog.DefaultModel(ProviderAnthropic); got != "claude-custom" {
		t.Errorf("DefaultModel() = %q, want %q", got, "claude-custom")
	}
	info, err := catalog.GetModelInfo(ProviderAnthropic, "claude-custom")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.ContextWindow != 1000 {
		t.Errorf("ContextWindow = %d, want 1000", info.ContextWindow)
	}
}

func TestCatalog_LoadCatalogFromFile(t *testing.T) {
	yamlContent := `version: "9.9.9"
last_updated: "2026-08-22"
provider: anthropic
default_model: claude-override

models:
  claude-override:
    context_window: 50000
    max_output_tokens: 4096
    supports_images: false
    supports_prompt_cache: false
    supports_thinking: false
    supports_streaming: true
    supports_system_role: true
    supports_temperature: true
    pricing:
      input_per_1m: 1.00
      output_per_1m: 2.00
      cache_write_per_1m: 0.00
      cache_read_per_1m: 0.00
`
	path := filepath.Join(t.TempDir(), "anthropic.yaml")
	if err := os.WriteFile(path, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write catalog file: %v", err)
	}

	catalog := &Catalog{providers: make(map[string]*ProviderModels)}
	if err := catalog.LoadCatalogFromFile(path); err != nil {
		t.Fatalf("LoadCatalogFromFile() error = %v", err)
	}

	if got := catalog.DefaultModel(ProviderAnthropic); got != "claude-override" {
		t.Errorf("DefaultModel() = %q, want %q", got, "claude-override")
	}
	info, err := catalog.GetModelInfo(ProviderAnthropic, "claude-override")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.ContextWindow != 50000 {
		t.Errorf("ContextWindow = %d, want 50000", info.ContextWindow)
	}
	if info.Pricing.OutputPer1M != 2.00 {
		t.Errorf("OutputPer1M = %f, want 2.00", info.Pricing.OutputPer1M)
	}
}

func TestCatalog_LoadCatalogFromFile_MissingFile(t *testing.T) {
	catalog := &Catalog{providers: make(map[string]*ProviderModels)}

	if err := catalog.LoadCatalogFromFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
