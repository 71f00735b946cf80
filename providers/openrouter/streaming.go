package openrouter

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/haowjy/agentwire-go"
)

// streamChunk is one SSE data payload. Error is populated instead of
// Choices when OpenRouter reports an upstream failure mid-stream.
type streamChunk struct {
	Choices []chunkChoice `json:"choices"`
	Usage   *wireUsage    `json:"usage"`
	Error   *wireError    `json:"error"`
}

type chunkChoice struct {
	Delta chunkDelta `json:"delta"`
}

type chunkDelta struct {
	Content   *string `json:"content"`
	Reasoning *string `json:"reasoning"`
}

type wireError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// wireUsage arrives on the final chunk when stream_options requests it.
type wireUsage struct {
	PromptTokens        int                  `json:"prompt_tokens"`
	CompletionTokens    int                  `json:"completion_tokens"`
	PromptTokensDetails *promptTokensDetails `json:"prompt_tokens_details"`
}

type promptTokensDetails struct {
	CachedTokens int `json:"cached_tokens"`
}

// CreateMessage opens one streaming exchange and returns the normalized
// event sequence. A non-200 response is classified and returned before any
// event is emitted; failures after streaming starts arrive as a terminal
// Err event, with events already delivered remaining valid.
func (p *Provider) CreateMessage(ctx context.Context, systemPrompt string, history []agentwire.Message) (<-chan agentwire.StreamEvent, error) {
	payload, err := buildChatRequest(p.model, p.opts, systemPrompt, history)
	if err != nil {
		return nil, err
	}

	httpReq, err := p.newHTTPRequest(ctx, payload)
	if err != nil {
		return nil, err
	}

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("openrouter: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return nil, p.errorFromResponse(resp)
	}

	eventChan := make(chan agentwire.StreamEvent, 10) // Buffered to prevent blocking

	go func() {
		defer close(eventChan)
		defer resp.Body.Close()

		if err := scanStream(ctx, resp.Body, eventChan); err != nil {
			eventChan <- agentwire.ErrorEvent(err)
		}
	}()

	return eventChan, nil
}

// newHTTPRequest builds the POST with auth and attribution headers.
func (p *Provider) newHTTPRequest(ctx context.Context, payload *chatRequest) (*http.Request, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")
	httpReq.Header.Set("HTTP-Referer", attributionReferer)
	httpReq.Header.Set("X-Title", attributionTitle)

	return httpReq, nil
}

// errorFromResponse maps a non-200 response to a sentinel-classified error.
// The body is either OpenRouter's structured error object or plain text.
func (p *Provider) errorFromResponse(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	message := strings.TrimSpace(string(body))
	var errResp struct {
		Error wireError `json:"error"`
	}
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
		message = errResp.Error.Message
	}

	return &agentwire.ProviderError{
		Provider:   string(agentwire.ProviderOpenRouter),
		StatusCode: resp.StatusCode,
		Message:    message,
		Err:        agentwire.ClassifyStatus(resp.StatusCode),
	}
}

// scanStream reads SSE data lines and forwards normalized events until the
// [DONE] sentinel or EOF. A non-nil return becomes the terminal Err event.
func scanStream(ctx context.Context, body io.Reader, eventChan chan<- agentwire.StreamEvent) error {
	scanner := bufio.NewScanner(body)

	for scanner.Scan() {
		line := scanner.Text()

		// SSE framing: blank separators and comment lines carry no data.
		if line == "" || strings.HasPrefix(line, ":") {
			continue
		}
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		data := strings.TrimPrefix(line, "data: ")

		if data == "[DONE]" {
			return nil
		}

		var chunk streamChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			// Keep-alives and other non-chunk payloads are skipped.
			continue
		}

		if chunk.Error != nil {
			return streamError(chunk.Error)
		}

		for _, event := range transformChunk(&chunk) {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case eventChan <- event:
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("openrouter: read stream: %w", err)
	}

	return nil
}

// transformChunk converts one parsed chunk into zero or more normalized
// events. Reasoning, content, and usage are extracted independently; the
// trailing usage chunk arrives with an empty choices array.
func transformChunk(chunk *streamChunk) []agentwire.StreamEvent {
	var events []agentwire.StreamEvent

	if len(chunk.Choices) > 0 {
		delta := chunk.Choices[0].Delta
		if delta.Reasoning != nil && *delta.Reasoning != "" {
			events = append(events, agentwire.ReasoningEvent(*delta.Reasoning))
		}
		if delta.Content != nil && *delta.Content != "" {
			events = append(events, agentwire.TextEvent(*delta.Content))
		}
	}

	if chunk.Usage != nil {
		events = append(events, agentwire.UsageEvent(usageDelta(chunk.Usage)))
	}

	return events
}

// streamError converts an in-band error payload into the terminal error.
// OpenRouter reports upstream failures mid-stream with an HTTP-style code.
func streamError(we *wireError) error {
	if we.Code > 0 {
		return &agentwire.ProviderError{
			Provider:   string(agentwire.ProviderOpenRouter),
			StatusCode: we.Code,
			Message:    we.Message,
			Err:        agentwire.ClassifyStatus(we.Code),
		}
	}
	return fmt.Errorf("openrouter streaming: %s", we.Message)
}

// usageDelta maps wire usage onto the normalized delta. Cached-token counts
// are only forwarded when the details object reports a positive count.
func usageDelta(usage *wireUsage) agentwire.UsageDelta {
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
