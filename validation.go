package agentwire

import (
	"sync"
)

// Severity grades a validation warning
type Severity string

const (
	SeverityInfo    Severity = "info"    // expected in some configurations
	SeverityWarning Severity = "warning" // probably a mistake
	SeverityError   Severity = "error"   // the provider will likely reject this
)

// WarningCode is the stable machine-readable identifier of one warning kind
type WarningCode string

const (
	// Model warnings
	WarningCodeModelUnknown WarningCode = "MODEL_UNKNOWN"

	// Vision warnings
	WarningCodeVisionUnsupported WarningCode = "VISION_UNSUPPORTED"

	// Thinking warnings
	WarningCodeThinkingUnsupported   WarningCode = "THINKING_UNSUPPORTED"
	WarningCodeThinkingBudgetTooLow  WarningCode = "THINKING_BUDGET_TOO_LOW"
	WarningCodeThinkingBudgetTooHigh WarningCode = "THINKING_BUDGET_TOO_HIGH"

	// Parameter warnings
	WarningCodeTemperatureOutOfRange WarningCode = "TEMPERATURE_OUT_OF_RANGE"
	WarningCodeTemperatureIgnored    WarningCode = "TEMPERATURE_IGNORED"
	WarningCodeTemperatureOverridden WarningCode = "TEMPERATURE_OVERRIDDEN"

	// Streaming warnings
	WarningCodeStreamingUnsupported WarningCode = "STREAMING_UNSUPPORTED"
)

// Warning represents a potential issue with a request configuration.
// These are informational - the library doesn't block requests based on
// warnings. Provider APIs are the source of truth for validation.
type Warning struct {
	Code     WarningCode // see the WarningCode constants
	Category string      // "model", "vision", "thinking", "parameter", "streaming"
	Field    string      // options or request field the warning is about
	Value    any         // offending value
	Message  string      // human-readable explanation
	Severity Severity    // info, warning, or error
}

// CheckInput is what validation rules inspect: the request options plus
// the message history they would be sent with (history may be nil when
// only options are being checked).
type CheckInput struct {
	Opts    *Options
	History []Message
}

// ValidationRule is one advisory check; callers can register their own.
type ValidationRule interface {
	// Name identifies the rule for RemoveRule
	Name() string

	// Check inspects a request configuration and returns warnings
	Check(provider ProviderID, in *CheckInput) []Warning
}

// ValidationEngine holds the ordered rule list behind a lock.
type ValidationEngine struct {
	rules []ValidationRule
	mu    sync.RWMutex
}

var (
	globalValidationEngine     *ValidationEngine
	globalValidationEngineOnce sync.Once
)

// GetValidationEngine returns the lazily-built shared engine.
func GetValidationEngine() *ValidationEngine {
	globalValidationEngineOnce.Do(func() {
		globalValidationEngine = &ValidationEngine{
			rules: make([]ValidationRule, 0),
		}
		globalValidationEngine.registerDefaultRules()
	})
	return globalValidationEngine
}

// registerDefaultRules installs the built-in rule set.
func (ve *ValidationEngine) registerDefaultRules() {
	catalog := GetCatalog()

	ve.AddRule(&ModelRule{catalog: catalog})
	ve.AddRule(&VisionRule{catalog: catalog})
	ve.AddRule(&ThinkingRule{catalog: catalog})
	ve.AddRule(&TemperatureRule{catalog: catalog})
	ve.AddRule(&StreamingRule{catalog: catalog})
}

// AddRule appends a rule to the list
func (ve *ValidationEngine) AddRule(rule ValidationRule) {
	ve.mu.Lock()
	defer ve.mu.Unlock()
	ve.rules = append(ve.rules, rule)
}

// RemoveRule drops the first rule whose Name matches, reporting whether
// one did.
func (ve *ValidationEngine) RemoveRule(name string) bool {
	ve.mu.Lock()
	defer ve.mu.Unlock()

	for i, rule := range ve.rules {
		if rule.Name() == name {
			ve.rules = append(ve.rules[:i], ve.rules[i+1:]...)
			return true
		}
	}
	return false
}

// Validate runs every rule in order and concatenates their warnings.
func (ve *ValidationEngine) Validate(provider ProviderID, in *CheckInput) []Warning {
	ve.mu.RLock()
	defer ve.mu.RUnlock()

	var warnings []Warning
	for _, rule := range ve.rules {
		warnings = append(warnings, rule.Check(provider, in)...)
	}
	return warnings
}

// CheckOptions returns potential issues with a request configuration.
// These are INFORMATIONAL - callers can choose to show warnings or ignore
// them. The library does NOT block requests based on warnings. Provider
// APIs validate requests - trust the source of truth.
func CheckOptions(provider ProviderID, opts *Options) []Warning {
	return CheckRequest(provider, opts, nil)
}

// CheckRequest is CheckOptions plus message-content checks (for example,
// image blocks sent to a model without vision support).
func CheckRequest(provider ProviderID, opts *Options, history []Message) []Warning {
	return GetValidationEngine().Validate(provider, &CheckInput{Opts: opts, History: history})
}

// FilterWarningsBySeverity keeps warnings at any of the given severities
func FilterWarningsBySeverity(warnings []Warning, severities ...Severity) []Warning {
	filtered := make([]Warning, 0)
	severityMap := make(map[Severity]bool)
	for _, s := range severities {
		severityMap[s] = true
	}

	for _, w := range warnings {
		if severityMap[w.Severity] {
			filtered = append(filtered, w)
		}
	}
	return filtered
}

// FilterWarningsByCategory keeps warnings in any of the given categories
func FilterWarningsByCategory(warnings []Warning, categories ...string) []Warning {
	filtered := make([]Warning, 0)
	categoryMap := make(map[string]bool)
	for _, c := range categories {
		categoryMap[c] = true
	}

	for _, w := range warnings {
		if categoryMap[w.Category] {
			filtered = append(filtered, w)
		}
	}
	return filtered
}

// FilterWarningsByCode keeps warnings with any of the given codes
func FilterWarningsByCode(warnings []Warning, codes ...WarningCode) []Warning {
	filtered := make([]Warning, 0)
	codeMap := make(map[WarningCode]bool)
	for _, c := range codes {
		codeMap[c] = true
	}

	for _, w := range warnings {
		if codeMap[w.Code] {
			filtered = append(filtered, w)
		}
	}
	return filtered
}
