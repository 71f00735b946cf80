package anthropic

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/haowjy/agentwire-go"
)

// CreateMessage opens one streaming exchange and returns the normalized
// event sequence. Errors before the request is sent are returned directly;
// failures after streaming starts arrive as a terminal Err event, with
// events already delivered remaining valid.
func (p *Provider) CreateMessage(ctx context.Context, systemPrompt string, history []agentwire.Message) (<-chan agentwire.StreamEvent, error) {
	apiParams, err := buildMessageParams(p.model, p.opts, systemPrompt, history)
	if err != nil {
		return nil, err
	}

	eventChan := make(chan agentwire.StreamEvent, 10) // Buffered to prevent blocking

	go func() {
		defer close(eventChan)

		stream := p.client.Messages.NewStreaming(ctx, apiParams)

		for stream.Next() {
			event, ok := transformStreamEvent(stream.Current())
			if !ok {
				continue
			}

			select {
			case <-ctx.Done():
				eventChan <- agentwire.ErrorEvent(ctx.Err())
				return
			case eventChan <- event:
			}
		}

		if err := stream.Err(); err != nil {
			eventChan <- agentwire.ErrorEvent(fmt.Errorf("anthropic streaming: %w", err))
		}
	}()

	return eventChan, nil
}

// transformStreamEvent converts an Anthropic streaming event to a library
// StreamEvent. The second return is false for SDK events with nothing to
// forward (block boundaries, signatures, message_stop).
//
// Anthropic reports usage twice per turn: input and cache counters in
// message_start, the output count in message_delta. Both are forwarded as
// separate Usage deltas for the consumer to sum.
func transformStreamEvent(event anthropic.MessageStreamEventUnion) (agentwire.StreamEvent, bool) {
	switch e := event.AsAny().(type) {
	case anthropic.MessageStartEvent:
		usage := agentwire.UsageDelta{
			InputTokens: int(e.Message.Usage.InputTokens),
		}
		// Plain ints on the wire: only a positive count proves the
		// cache was touched, so zero stays "unreported".
		if n := int(e.Message.Usage.CacheCreationInputTokens); n > 0 {
			usage.CacheWriteTokens = &n
		}
		if n := int(e.Message.Usage.CacheReadInputTokens); n > 0 {
			usage.CacheReadTokens = &n
		}
		return agentwire.UsageEvent(usage), true

	case anthropic.ContentBlockDeltaEvent:
		switch e.Delta.Type {
		case "text_delta":
			return agentwire.TextEvent(e.Delta.Text), true
		case "thinking_delta":
			return agentwire.ReasoningEvent(e.Delta.Thinking), true
		}
		// signature_delta and input_json_delta carry no narrative content
		return agentwire.StreamEvent{}, false

	case anthropic.MessageDeltaEvent:
		return agentwire.UsageEvent(agentwire.UsageDelta{
			OutputTokens: int(e.Usage.OutputTokens),
		}), true
	}

	return agentwire.StreamEvent{}, false
}
