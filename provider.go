package agentwire

import "context"

// Provider is implemented once per upstream provider family. Each
// implementation hides its vendor's request shaping (message formatting,
// cache-control annotations, thinking parameters, streaming vs.
// non-streaming fallback) behind the same exchange operation.
//
// A Provider is a long-lived value constructed once per configuration; it
// holds its own client handle and is safe to reuse across turns. Model
// selection happens at construction time, not per call.
type Provider interface {
	// CreateMessage opens one model turn: it sends the system prompt and
	// conversation history and returns the normalized event sequence.
	//
	// The returned channel is closed when the turn completes; exhausting
	// it without seeing an Err event is the success condition. Errors
	// detected before anything is sent are returned directly; failures
	// after streaming starts arrive as a terminal Err event, with events
	// already delivered preserved.
	CreateMessage(ctx context.Context, systemPrompt string, history []Message) (<-chan StreamEvent, error)

	// Model returns the configured model id and its catalog metadata.
	Model() SelectedModel

	// Name returns the provider identifier.
	Name() ProviderID
}

// SelectedModel pairs a model id with its catalog metadata.
type SelectedModel struct {
	// ID is the provider-side model identifier.
	ID string

	// Info is the catalog metadata for the model. For models missing from
	// the catalog this holds permissive defaults.
	Info ModelInfo
}
