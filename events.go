package agentwire

// StreamEvent is a single normalized event from a provider exchange.
// Exactly one of Text, Reasoning, Usage, or Err is set per event.
//
// Events are delivered on the channel in production order. The channel
// closing without a prior Err event is the success signal; there is no
// explicit "done" event. An Err event is terminal: the channel closes
// immediately after it, and events already delivered remain valid.
type StreamEvent struct {
	// Text is a narrative (possibly tool-bearing) text delta.
	Text *string

	// Reasoning is a provider thinking delta. Reasoning text is shown
	// separately and never parsed for tool use.
	Reasoning *string

	// Usage is a token accounting delta. Several may arrive per turn
	// (e.g. cache stats at start, output counts at the end); the consumer
	// sums them.
	Usage *UsageDelta

	// Err is a terminal transport or provider failure.
	Err error
}

// UsageDelta carries incremental token accounting for a turn.
//
// InputTokens and OutputTokens are plain counts (zero when a given delta
// does not update them). The cache counters are pointers so that "provider
// does not report this" stays distinct from "zero tokens": adapters leave
// them nil unless the provider actually returned a value.
type UsageDelta struct {
	// InputTokens is the prompt token count.
	InputTokens int

	// OutputTokens is the completion token count.
	OutputTokens int

	// CacheWriteTokens is the number of tokens written to the provider's
	// prompt cache, or nil if unreported.
	CacheWriteTokens *int

	// CacheReadTokens is the number of tokens served from the provider's
	// prompt cache, or nil if unreported.
	CacheReadTokens *int
}

// TextEvent wraps a text delta in a StreamEvent.
func TextEvent(text string) StreamEvent {
	return StreamEvent{Text: &text}
}

// ReasoningEvent wraps a thinking delta in a StreamEvent.
func ReasoningEvent(text string) StreamEvent {
	return StreamEvent{Reasoning: &text}
}

// UsageEvent wraps a usage delta in a StreamEvent.
func UsageEvent(usage UsageDelta) StreamEvent {
	return StreamEvent{Usage: &usage}
}

// ErrorEvent wraps a terminal failure in a StreamEvent.
func ErrorEvent(err error) StreamEvent {
	return StreamEvent{Err: err}
}

// IsText returns true if this event carries a text delta.
func (e StreamEvent) IsText() bool {
	return e.Text != nil
}

// IsReasoning returns true if this event carries a thinking delta.
func (e StreamEvent) IsReasoning() bool {
	return e.Reasoning != nil
}

// IsUsage returns true if this event carries a usage delta.
func (e StreamEvent) IsUsage() bool {
	return e.Usage != nil
}

// IsError returns true if this event is a terminal failure.
func (e StreamEvent) IsError() bool {
	return e.Err != nil
}
