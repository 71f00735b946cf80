package agentwire

import (
	"errors"
	"fmt"
)

// Sentinel errors for the common failure modes, matched with errors.Is.
var (
	// ErrInvalidModel reports a model id the provider does not serve.
	ErrInvalidModel = errors.New("agentwire: invalid or unsupported model")

	// ErrInvalidAPIKey reports a missing or rejected API key.
	ErrInvalidAPIKey = errors.New("agentwire: invalid API key")

	// ErrRateLimited reports that the provider throttled the request.
	ErrRateLimited = errors.New("agentwire: rate limit exceeded")

	// ErrPaymentRequired reports an out-of-credit account.
	ErrPaymentRequired = errors.New("agentwire: payment required")

	// ErrInvalidRequest reports request parameters the provider rejected.
	ErrInvalidRequest = errors.New("agentwire: invalid request")

	// ErrTimeout reports that the provider gave up serving the request.
	ErrTimeout = errors.New("agentwire: request timed out")

	// ErrProviderUnavailable reports a provider outage.
	ErrProviderUnavailable = errors.New("agentwire: provider unavailable")
)

// ModelError describes a model id that failed validation or resolution.
type ModelError struct {
	Model    string // requested model id
	Provider string // provider family
	Reason   string // human-readable detail
	Err      error  // wrapped sentinel, usually ErrInvalidModel
}

func (e *ModelError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("model '%s' for provider '%s': %s (%v)", e.Model, e.Provider, e.Reason, e.Err)
	}
	return fmt.Sprintf("model '%s' for provider '%s': %s", e.Model, e.Provider, e.Reason)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}

// ConfigError describes a construction-time Config field that cannot be used.
type ConfigError struct {
	Field  string // offending Config field
	Reason string // human-readable detail
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config field '%s': %s", e.Field, e.Reason)
}

// ProviderError carries a classified failure from a provider API.
type ProviderError struct {
	Provider   string // provider family
	StatusCode int    // HTTP status, 0 when not applicable
	Message    string // provider-reported message
	Err        error  // wrapped sentinel chosen by classification
}

func (e *ProviderError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("provider '%s' error (status %d): %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("provider '%s' error: %s", e.Provider, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// ClassifyStatus maps an HTTP status code from a provider API onto the
// matching sentinel error. Unmatched statuses in the 4xx range map to
// ErrInvalidRequest; 5xx maps to ErrProviderUnavailable.
func ClassifyStatus(status int) error {
	switch status {
	case 401, 403:
		return ErrInvalidAPIKey
	case 402:
		return ErrPaymentRequired
	case 404:
		return ErrInvalidModel
	case 408:
		return ErrTimeout
	case 429:
		return ErrRateLimited
	}
	if status >= 500 {
		return ErrProviderUnavailable
	}
	return ErrInvalidRequest
}

// IsRetryable checks if the failure is transient and may clear on retry.
// Retry policy itself belongs to the caller; this library only classifies.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, ErrRateLimited) {
		return true
	}

	if errors.Is(err, ErrTimeout) {
		return true
	}

	if errors.Is(err, ErrProviderUnavailable) {
		return true
	}

	return false
}

// IsInvalidRequest checks if the request itself was rejected; these failures
// need a changed request, not a retry.
func IsInvalidRequest(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, ErrInvalidRequest) {
		return true
	}

	if errors.Is(err, ErrInvalidModel) {
		return true
	}

	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// IsAuthError checks if the failure points at credentials, either through
// the sentinel or a provider response carrying an auth status.
func IsAuthError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, ErrInvalidAPIKey) {
		return true
	}

	var providerErr *ProviderError
	if errors.As(err, &providerErr) {
		return providerErr.StatusCode == 401 || providerErr.StatusCode == 403
	}

	return false
}
