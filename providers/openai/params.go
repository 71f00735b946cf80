package openai

import (
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/haowjy/agentwire-go"
)

// buildRequest shapes a streaming chat request. Usage reporting is always
// requested so the final chunk carries the turn's token totals.
func buildRequest(model agentwire.SelectedModel, opts agentwire.Options, systemPrompt string, history []agentwire.Message) (openai.ChatCompletionRequest, error) {
	messages, err := convertMessages(history)
	if err != nil {
		return openai.ChatCompletionRequest{}, fmt.Errorf("convert messages: %w", err)
	}
	if systemPrompt != "" {
		system := openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: systemPrompt,
		}
		messages = append([]openai.ChatCompletionMessage{system}, messages...)
	}

	request := openai.ChatCompletionRequest{
		Model:         model.ID,
		Messages:      messages,
		MaxTokens:     opts.GetMaxTokens(agentwire.DefaultMaxTokens),
		Stream:        true,
		StreamOptions: &openai.StreamOptions{IncludeUsage: true},
	}
	if opts.Temperature != nil {
		// The SDK drops a zero temperature from the wire (omitempty), in
		// which case the provider default applies.
		request.Temperature = float32(*opts.Temperature)
	}
	return request, nil
}

// buildLegacyRequest shapes the blocking request for legacy models. These
// reject the system role, so the prompt is folded into a leading user
// message; temperature is fixed server-side and therefore omitted, and the
// output budget goes through the newer completion-token field.
func buildLegacyRequest(model agentwire.SelectedModel, opts agentwire.Options, systemPrompt string, history []agentwire.Message) (openai.ChatCompletionRequest, error) {
	messages, err := convertMessages(history)
	if err != nil {
		return openai.ChatCompletionRequest{}, fmt.Errorf("convert messages: %w", err)
	}
	if systemPrompt != "" {
		lead := openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleUser,
			Content: systemPrompt,
		}
		messages = append([]openai.ChatCompletionMessage{lead}, messages...)
	}

	return openai.ChatCompletionRequest{
		Model:               model.ID,
		Messages:            messages,
		MaxCompletionTokens: opts.GetMaxTokens(agentwire.DefaultMaxTokens),
	}, nil
}
