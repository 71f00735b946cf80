package agentwire

// ProviderID names a provider family.
type ProviderID string

// Known provider identifiers
const (
	// ProviderAnthropic is Anthropic's Claude Messages API
	ProviderAnthropic ProviderID = "anthropic"

	// ProviderOpenAI is OpenAI's Chat Completions API
	ProviderOpenAI ProviderID = "openai"

	// ProviderBedrock is the AWS Bedrock Converse API
	ProviderBedrock ProviderID = "bedrock"

	// ProviderOpenRouter is the OpenRouter aggregation API
	ProviderOpenRouter ProviderID = "openrouter"

	// ProviderLorem is the offline lorem-ipsum provider for tests and demos
	ProviderLorem ProviderID = "lorem"
)

// String returns the identifier as a plain string
func (p ProviderID) String() string {
	return string(p)
}

// IsValid reports whether the id names a known provider
func (p ProviderID) IsValid() bool {
	switch p {
	case ProviderAnthropic, ProviderOpenAI, ProviderBedrock, ProviderOpenRouter, ProviderLorem:
		return true
	default:
		return false
	}
}

// AllProviders returns every known provider ID in display order.
func AllProviders() []ProviderID {
	return []ProviderID{
		ProviderAnthropic,
		ProviderOpenAI,
		ProviderBedrock,
		ProviderOpenRouter,
		ProviderLorem,
	}
}
