package agentwire

import "fmt"

// Default request budgets
const (
	// DefaultMaxTokens is the output budget used when Options.MaxTokens is unset.
	DefaultMaxTokens = 8192

	// MinThinkingBudget is the floor for a reasoning token budget.
	MinThinkingBudget = 1024

	// ThinkingTemperature is forced whenever reasoning is enabled
	// (provider requirement).
	ThinkingTemperature = 1.0
)

// thinkingBudgetShare caps the reasoning budget at this fraction of the
// max output token budget.
const thinkingBudgetShare = 0.8

// Options holds the construction-time request configuration shared by all
// providers. All fields are optional pointers to distinguish "not set" from
// "set to zero value"; adapters apply their own defaults via the Get
// accessors.
type Options struct {
	// Model is the provider-side model identifier. Unset selects the
	// provider's catalog default.
	Model *string `json:"model,omitempty"`

	// MaxTokens sets the maximum number of output tokens to generate
	MaxTokens *int `json:"max_tokens,omitempty"`

	// Temperature controls randomness. Ignored (forced to
	// ThinkingTemperature) while reasoning is enabled, and omitted
	// entirely for fixed-temperature models.
	Temperature *float64 `json:"temperature,omitempty"`

	// ThinkingEnabled turns on the provider's reasoning/thinking mode
	ThinkingEnabled *bool `json:"thinking_enabled,omitempty"`

	// ThinkingBudget is the requested reasoning token budget. The
	// effective budget is clamped to thinkingBudgetShare of MaxTokens
	// with a MinThinkingBudget floor.
	ThinkingBudget *int `json:"thinking_budget,omitempty"`

	// BaseURL overrides the provider endpoint (OpenRouter and
	// OpenAI-compatible servers)
	BaseURL *string `json:"base_url,omitempty"`
}

// GetModel returns the model id with default fallback
func (o *Options) GetModel(defaultValue string) string {
	if o != nil && o.Model != nil && *o.Model != "" {
		return *o.Model
	}
	return defaultValue
}

// GetMaxTokens returns the output token budget with default fallback
func (o *Options) GetMaxTokens(defaultValue int) int {
	if o != nil && o.MaxTokens != nil {
		return *o.MaxTokens
	}
	return defaultValue
}

// GetTemperature returns the sampling temperature with default fallback
func (o *Options) GetTemperature(defaultValue float64) float64 {
	if o != nil && o.Temperature != nil {
		return *o.Temperature
	}
	return defaultValue
}

// GetBaseURL returns the endpoint override with default fallback
func (o *Options) GetBaseURL(defaultValue string) string {
	if o != nil && o.BaseURL != nil && *o.BaseURL != "" {
		return *o.BaseURL
	}
	return defaultValue
}

// GetThinkingBudget returns the requested reasoning budget with default
// fallback. Adapters should use EffectiveThinkingBudget, which applies the
// clamp.
func (o *Options) GetThinkingBudget(defaultValue int) int {
	if o != nil && o.ThinkingBudget != nil {
		return *o.ThinkingBudget
	}
	return defaultValue
}

// ThinkingRequested returns true if reasoning mode is enabled.
func (o *Options) ThinkingRequested() bool {
	return o != nil && o.ThinkingEnabled != nil && *o.ThinkingEnabled
}

// EffectiveThinkingBudget clamps the requested reasoning budget against the
// output token budget: at most thinkingBudgetShare of maxTokens, never below
// MinThinkingBudget. A zero or missing request gets the capped default.
func (o *Options) EffectiveThinkingBudget(maxTokens int) int {
	ceiling := int(float64(maxTokens) * thinkingBudgetShare)

	budget := ceiling
	if o != nil && o.ThinkingBudget != nil && *o.ThinkingBudget > 0 {
		budget = *o.ThinkingBudget
	}

	if budget > ceiling {
		budget = ceiling
	}
	if budget < MinThinkingBudget {
		budget = MinThinkingBudget
	}
	return budget
}

// ValidateOptions validates option ranges. A nil options value is valid.
func ValidateOptions(opts *Options) error {
	if opts == nil {
		return nil
	}

	if opts.Temperature != nil {
		if *opts.Temperature < 0.0 || *opts.Temperature > 2.0 {
			return fmt.Errorf("temperature must be between 0.0 and 2.0, got %f", *opts.Temperature)
		}
	}

	if opts.MaxTokens != nil {
		if *opts.MaxTokens < 1 {
			return fmt.Errorf("max_tokens must be positive, got %d", *opts.MaxTokens)
		}
	}

	if opts.ThinkingBudget != nil {
		if *opts.ThinkingBudget < 1 {
			return fmt.Errorf("thinking_budget must be positive, got %d", *opts.ThinkingBudget)
		}
	}

	return nil
}
