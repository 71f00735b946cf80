package bedrock

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	brtypes "github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	smithy "github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"

	"github.com/haowjy/agentwire-go"
)

// CreateMessage opens one streaming exchange and returns the normalized
// event sequence. A rejected ConverseStream call is returned directly;
// failures after the stream opens arrive as a terminal Err event.
func (p *Provider) CreateMessage(ctx context.Context, systemPrompt string, history []agentwire.Message) (<-chan agentwire.StreamEvent, error) {
	input, err := buildStreamInput(p.model, p.opts, systemPrompt, history)
	if err != nil {
		return nil, err
	}

	output, err := p.client.ConverseStream(ctx, input)
	if err != nil {
		return nil, classifyError(err)
	}
	stream := output.GetStream()
	if stream == nil {
		return nil, errors.New("bedrock: stream output missing event stream")
	}

	eventChan := make(chan agentwire.StreamEvent, 10) // Buffered to prevent blocking
	go pumpEvents(ctx, stream, eventChan)
	return eventChan, nil
}

// pumpEvents forwards Converse stream events until the SDK closes its
// event channel, then surfaces any stream-level failure as a terminal Err.
func pumpEvents(ctx context.Context, stream *bedrockruntime.ConverseStreamEventStream, eventChan chan<- agentwire.StreamEvent) {
	defer close(eventChan)
	defer func() { _ = stream.Close() }()

	for raw := range stream.Events() {
		event, ok := transformStreamEvent(raw)
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
		eventChan <- agentwire.ErrorEvent(classifyError(err))
	}
}

// transformStreamEvent converts one Converse stream event to a library
// StreamEvent. The second return is false for events with nothing to
// forward (message boundaries, block starts and stops).
//
// Unlike Anthropic's split accounting, Converse reports the whole turn's
// usage in a single metadata event.
func transformStreamEvent(event brtypes.ConverseStreamOutput) (agentwire.StreamEvent, bool) {
	switch e := event.(type) {
	case *brtypes.ConverseStreamOutputMemberContentBlockDelta:
		switch delta := e.Value.Delta.(type) {
		case *brtypes.ContentBlockDeltaMemberText:
			return agentwire.TextEvent(delta.Value), true
		case *brtypes.ContentBlockDeltaMemberReasoningContent:
			if text, ok := delta.Value.(*brtypes.ReasoningContentBlockDeltaMemberText); ok {
				return agentwire.ReasoningEvent(text.Value), true
			}
			// redacted and signature reasoning variants carry no
			// displayable content
		}

	case *brtypes.ConverseStreamOutputMemberMetadata:
		if usage := e.Value.Usage; usage != nil {
			return agentwire.UsageEvent(usageDelta(usage)), true
		}
	}

	return agentwire.StreamEvent{}, false
}

// usageDelta converts Converse token counts. The SDK's pointer fields
// already distinguish "unreported" from zero; that distinction is kept for
// the cache counters.
func usageDelta(usage *brtypes.TokenUsage) agentwire.UsageDelta {
	var delta agentwire.UsageDelta
	if t := usage.InputTokens; t != nil {
		delta.InputTokens = int(*t)
	}
	if t := usage.OutputTokens; t != nil {
		delta.OutputTokens = int(*t)
	}
	if t := usage.CacheWriteInputTokens; t != nil {
		n := int(*t)
		delta.CacheWriteTokens = &n
	}
	if t := usage.CacheReadInputTokens; t != nil {
		n := int(*t)
		delta.CacheReadTokens = &n
	}
	return delta
}

// classifyError maps SDK failures onto the shared sentinel taxonomy.
// Bedrock signals throttling and validation through typed smithy error
// codes rather than bare HTTP statuses, so codes are checked first.
func classifyError(err error) error {
	status := 0
	var respErr *smithyhttp.ResponseError
	if errors.As(err, &respErr) {
		status = respErr.HTTPStatusCode()
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		var sentinel error
		switch apiErr.ErrorCode() {
		case "ThrottlingException", "TooManyRequestsException":
			sentinel = agentwire.ErrRateLimited
		case "AccessDeniedException", "UnrecognizedClientException":
			sentinel = agentwire.ErrInvalidAPIKey
		case "ResourceNotFoundException":
			sentinel = agentwire.ErrInvalidModel
		case "ValidationException":
			sentinel = agentwire.ErrInvalidRequest
		case "ModelTimeoutException":
			sentinel = agentwire.ErrTimeout
		case "ServiceUnavailableException", "ModelNotReadyException":
			sentinel = agentwire.ErrProviderUnavailable
		}
		if sentinel != nil {
			return &agentwire.ProviderError{
				Provider:   string(agentwire.ProviderBedrock),
				StatusCode: status,
				Message:    apiErr.ErrorMessage(),
				Err:        sentinel,
			}
		}
	}

	if status > 0 {
		return &agentwire.ProviderError{
			Provider:   string(agentwire.ProviderBedrock),
			StatusCode: status,
			Message:    err.Error(),
			Err:        agentwire.ClassifyStatus(status),
		}
	}

	return fmt.Errorf("bedrock: %w", err)
}
