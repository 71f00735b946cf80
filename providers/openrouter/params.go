package openrouter

import (
	"fmt"

	"github.com/haowjy/agentwire-go"
)

// chatRequest is the OpenRouter chat completions payload. OpenAI-compatible,
// plus the OpenRouter extensions this adapter exists for.
type chatRequest struct {
	Model         string            `json:"model"`
	Messages      []chatMessage     `json:"messages"`
	MaxTokens     int               `json:"max_tokens"`
	Temperature   *float64          `json:"temperature,omitempty"`
	Stream        bool              `json:"stream"`
	StreamOptions *streamOptions    `json:"stream_options,omitempty"`
	Reasoning     *reasoningOptions `json:"reasoning,omitempty"`
}

// chatMessage is one wire message. Content is either a plain string or a
// []contentPart; the part form is required for images and cache markers.
type chatMessage struct {
	Role    string `json:"role"` // "system", "user", "assistant"
	Content any    `json:"content"`
}

// contentPart is one element of multimodal message content.
type contentPart struct {
	Type         string        `json:"type"` // "text", "image_url"
	Text         string        `json:"text,omitempty"`
	ImageURL     *imageURL     `json:"image_url,omitempty"`
	CacheControl *cacheControl `json:"cache_control,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

// cacheControl marks a content part as a prompt cache boundary. OpenRouter
// forwards the marker to upstream providers that price cached prefixes.
type cacheControl struct {
	Type string `json:"type"` // "ephemeral"
}

// reasoningOptions requests extended thinking with an explicit token budget.
type reasoningOptions struct {
	MaxTokens int `json:"max_tokens"`
}

type streamOptions struct {
	IncludeUsage bool `json:"include_usage"`
}

// buildChatRequest constructs the OpenRouter payload from the selected
// model, options, system prompt, and history.
func buildChatRequest(model agentwire.SelectedModel, opts agentwire.Options, systemPrompt string, history []agentwire.Message) (*chatRequest, error) {
	messages, err := convertMessages(history)
	if err != nil {
		return nil, fmt.Errorf("convert messages: %w", err)
	}

	// Cache markers go on history indices, so mark before the system
	// message shifts everything down by one.
	if model.Info.SupportsPromptCache {
		markCacheBoundaries(messages, history)
	}

	if systemPrompt != "" {
		system := chatMessage{Role: "system", Content: systemPrompt}
		messages = append([]chatMessage{system}, messages...)
	}

	maxTokens := opts.GetMaxTokens(agentwire.DefaultMaxTokens)

	req := &chatRequest{
		Model:         model.ID,
		Messages:      messages,
		MaxTokens:     maxTokens,
		Stream:        true,
		StreamOptions: &streamOptions{IncludeUsage: true},
	}

	if opts.ThinkingRequested() && model.Info.SupportsThinking {
		req.Reasoning = &reasoningOptions{
			MaxTokens: opts.EffectiveThinkingBudget(maxTokens),
		}
		// Provider requirement: temperature is pinned while thinking is on.
		temp := agentwire.ThinkingTemperature
		req.Temperature = &temp
	} else if opts.Temperature != nil {
		req.Temperature = opts.Temperature
	}

	return req, nil
}
