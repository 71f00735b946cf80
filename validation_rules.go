package agentwire

import (
	"fmt"
)

// ModelRule checks model-related warnings
type ModelRule struct {
	catalog *Catalog
}

func (r *ModelRule) Name() string {
	return "Model Validation"
}

func (r *ModelRule) Check(provider ProviderID, in *CheckInput) []Warning {
	var warnings []Warning

	// Check if the model exists in the catalog (catalog may be outdated)
	model := in.Opts.GetModel(r.catalog.DefaultModel(provider))
	if !r.catalog.HasModel(provider, model) {
		warnings = append(warnings, Warning{
			Code:     WarningCodeModelUnknown,
			Category: "model",
			Field:    "model",
			Value:    model,
			Message:  fmt.Sprintf("Model %s not found in %s catalog (catalog may be outdated)", model, provider),
			Severity: SeverityWarning,
		})
	}

	return warnings
}

// VisionRule checks image-content warnings
type VisionRule struct {
	catalog *Catalog
}

func (r *VisionRule) Name() string {
	return "Vision Validation"
}

func (r *VisionRule) Check(provider ProviderID, in *CheckInput) []Warning {
	var warnings []Warning

	if !hasImageContent(in.History) {
		return warnings
	}

	model := in.Opts.GetModel(r.catalog.DefaultModel(provider))
	info, err := r.catalog.GetModelInfo(provider, model)
	if err != nil {
		// Can't check without catalog data
		return warnings
	}

	if !info.SupportsImages {
		warnings = append(warnings, Warning{
			Code:     WarningCodeVisionUnsupported,
			Category: "vision",
			Field:    "messages",
			Value:    "contains images",
			Message:  fmt.Sprintf("Model %s might not support vision (check catalog)", model),
			Severity: SeverityWarning,
		})
	}

	return warnings
}

// ThinkingRule checks reasoning-mode warnings
type ThinkingRule struct {
	catalog *Catalog
}

func (r *ThinkingRule) Name() string {
	return "Thinking Validation"
}

func (r *ThinkingRule) Check(provider ProviderID, in *CheckInput) []Warning {
	var warnings []Warning

	if !in.Opts.ThinkingRequested() {
		return warnings
	}

	model := in.Opts.GetModel(r.catalog.DefaultModel(provider))
	info, err := r.catalog.GetModelInfo(provider, model)
	if err != nil {
		// Can't check without catalog data
		return warnings
	}

	if !info.SupportsThinking {
		warnings = append(warnings, Warning{
			Code:     WarningCodeThinkingUnsupported,
			Category: "thinking",
			Field:    "thinking_enabled",
			Value:    true,
			Message:  fmt.Sprintf("Model %s might not support extended thinking", model),
			Severity: SeverityWarning,
		})
		return warnings
	}

	// Check explicit budget against the clamp the adapter will apply
	if in.Opts.ThinkingBudget != nil {
		budget := *in.Opts.ThinkingBudget
		maxTokens := in.Opts.GetMaxTokens(DefaultMaxTokens)
		ceiling := int(float64(maxTokens) * thinkingBudgetShare)

		if budget > ceiling {
			warnings = append(warnings, Warning{
				Code:     WarningCodeThinkingBudgetTooHigh,
				Category: "thinking",
				Field:    "thinking_budget",
				Value:    budget,
				Message:  fmt.Sprintf("Thinking budget %d exceeds %d (80%% of max_tokens) and will be clamped", budget, ceiling),
				Severity: SeverityInfo,
			})
		}

		if budget < MinThinkingBudget {
			warnings = append(warnings, Warning{
				Code:     WarningCodeThinkingBudgetTooLow,
				Category: "thinking",
				Field:    "thinking_budget",
				Value:    budget,
				Message:  fmt.Sprintf("Thinking budget %d below minimum %d and will be raised", budget, MinThinkingBudget),
				Severity: SeverityInfo,
			})
		}
	}

	return warnings
}

// TemperatureRule checks temperature warnings
type TemperatureRule struct {
	catalog *Catalog
}

func (r *TemperatureRule) Name() string {
	return "Temperature Validation"
}

func (r *TemperatureRule) Check(provider ProviderID, in *CheckInput) []Warning {
	var warnings []Warning

	if in.Opts == nil || in.Opts.Temperature == nil {
		return warnings
	}
	temp := *in.Opts.Temperature

	if temp < 0.0 || temp > 2.0 {
		warnings = append(warnings, Warning{
			Code:     WarningCodeTemperatureOutOfRange,
			Category: "parameter",
			Field:    "temperature",
			Value:    temp,
			Message:  fmt.Sprintf("Temperature %.2f outside recommended range [0.00, 2.00]", temp),
			Severity: SeverityWarning,
		})
	}

	model := in.Opts.GetModel(r.catalog.DefaultModel(provider))
	info, err := r.catalog.GetModelInfo(provider, model)
	if err != nil {
		// Can't check without catalog data
		return warnings
	}

	if !info.SupportsTemperature {
		warnings = append(warnings, Warning{
			Code:     WarningCodeTemperatureIgnored,
			Category: "parameter",
			Field:    "temperature",
			Value:    temp,
			Message:  fmt.Sprintf("Model %s uses a fixed temperature; the configured value is dropped", model),
			Severity: SeverityWarning,
		})
	}

	if in.Opts.ThinkingRequested() && info.SupportsThinking && temp != ThinkingTemperature {
		warnings = append(warnings, Warning{
			Code:     WarningCodeTemperatureOverridden,
			Category: "parameter",
			Field:    "temperature",
			Value:    temp,
			Message:  fmt.Sprintf("Extended thinking forces temperature %.1f; the configured value is ignored", ThinkingTemperature),
			Severity: SeverityInfo,
		})
	}

	return warnings
}

// StreamingRule notes when a model gets the non-streaming fallback
type StreamingRule struct {
	catalog *Catalog
}

func (r *StreamingRule) Name() string {
	return "Streaming Validation"
}

func (r *StreamingRule) Check(provider ProviderID, in *CheckInput) []Warning {
	var warnings []Warning

	model := in.Opts.GetModel(r.catalog.DefaultModel(provider))
	info, err := r.catalog.GetModelInfo(provider, model)
	if err != nil {
		// Can't check without catalog data
		return warnings
	}

	if !info.SupportsStreaming {
		warnings = append(warnings, Warning{
			Code:     WarningCodeStreamingUnsupported,
			Category: "streaming",
			Field:    "model",
			Value:    model,
			Message:  fmt.Sprintf("Model %s does not stream; the adapter makes a single blocking request and replays it as events", model),
			Severity: SeverityInfo,
		})
	}

	return warnings
}

// hasImageContent reports whether the history carries any image blocks
func hasImageContent(messages []Message) bool {
	for _, msg := range messages {
		for _, block := range msg.Blocks {
			if block.IsImage() {
				return true
			}
		}
	}
	return false
}
