package openai

import (
	"context"
	"errors"
	"fmt"
	"io"

	openai "github.com/sashabaranov/go-openai"

	"github.com/haowjy/agentwire-go"
)

// CreateMessage opens one exchange and returns the normalized event
// sequence. Models flagged legacy in the catalog take the blocking path
// and have the single response replayed as events, so the consumer sees
// the same channel contract either way.
func (p *Provider) CreateMessage(ctx context.Context, systemPrompt string, history []agentwire.Message) (<-chan agentwire.StreamEvent, error) {
	if p.model.Info.IsLegacy() {
		return p.createLegacyMessage(ctx, systemPrompt, history)
	}

	request, err := buildRequest(p.model, p.opts, systemPrompt, history)
	if err != nil {
		return nil, err
	}

	eventChan := make(chan agentwire.StreamEvent, 10) // Buffered to prevent blocking

	go func() {
		defer close(eventChan)

		stream, err := p.client.CreateChatCompletionStream(ctx, request)
		if err != nil {
			eventChan <- agentwire.ErrorEvent(classifyError(err))
			return
		}
		defer stream.Close()

		for {
			chunk, err := stream.Recv()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				eventChan <- agentwire.ErrorEvent(classifyError(err))
				return
			}

			event, ok := transformChunk(chunk)
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
	}()

	return eventChan, nil
}

// createLegacyMessage performs one blocking completion and replays the
// response as at most one Text event followed by one Usage event. The
// buffer absorbs both sends without coordination.
func (p *Provider) createLegacyMessage(ctx context.Context, systemPrompt string, history []agentwire.Message) (<-chan agentwire.StreamEvent, error) {
	request, err := buildLegacyRequest(p.model, p.opts, systemPrompt, history)
	if err != nil {
		return nil, err
	}

	eventChan := make(chan agentwire.StreamEvent, 10)

	go func() {
		defer close(eventChan)

		response, err := p.client.CreateChatCompletion(ctx, request)
		if err != nil {
			eventChan <- agentwire.ErrorEvent(classifyError(err))
			return
		}

		if len(response.Choices) > 0 {
			if content := response.Choices[0].Message.Content; content != "" {
				eventChan <- agentwire.TextEvent(content)
			}
		}
		eventChan <- agentwire.UsageEvent(usageDelta(response.Usage))
	}()

	return eventChan, nil
}

// transformChunk maps one stream chunk onto a normalized event. With usage
// reporting on, the final chunk has no choices and a non-nil Usage.
func transformChunk(chunk openai.ChatCompletionStreamResponse) (agentwire.StreamEvent, bool) {
	if chunk.Usage != nil {
		return agentwire.UsageEvent(usageDelta(*chunk.Usage)), true
	}
	if len(chunk.Choices) > 0 {
		if content := chunk.Choices[0].Delta.Content; content != "" {
			return agentwire.TextEvent(content), true
		}
	}
	return agentwire.StreamEvent{}, false
}

// usageDelta converts SDK usage totals. The cached prompt count stays nil
// unless the API reported one, keeping "unreported" distinct from zero.
func usageDelta(usage openai.Usage) agentwire.UsageDelta {
	delta := agentwire.UsageDelta{
		InputTokens:  usage.PromptTokens,
		OutputTokens: usage.CompletionTokens,
	}
	if usage.PromptTokensDetails != nil && usage.PromptTokensDetails.CachedTokens > 0 {
		cached := usage.PromptTokensDetails.CachedTokens
		delta.CacheReadTokens = &cached
	}
	return delta
}

// classifyError maps SDK errors onto the shared sentinel taxonomy so
// callers can errors.Is against the library's error set.
func classifyError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &agentwire.ProviderError{
			Provider:   string(agentwire.ProviderOpenAI),
			StatusCode: apiErr.HTTPStatusCode,
			Message:    apiErr.Message,
			Err:        agentwire.ClassifyStatus(apiErr.HTTPStatusCode),
		}
	}
	return fmt.Errorf("openai: %w", err)
}
