package anthropic

import (
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/haowjy/agentwire-go"
)

// buildMessageParams constructs Anthropic API parameters from the selected
// model, options, system prompt, and history.
func buildMessageParams(model agentwire.SelectedModel, opts agentwire.Options, systemPrompt string, history []agentwire.Message) (anthropic.MessageNewParams, error) {
	messages, err := convertMessages(history)
	if err != nil {
		return anthropic.MessageNewParams{}, fmt.Errorf("convert messages: %w", err)
	}

	if model.Info.SupportsPromptCache {
		markCacheBoundaries(messages, history)
	}

	maxTokens := opts.GetMaxTokens(agentwire.DefaultMaxTokens)

	apiParams := anthropic.MessageNewParams{
		Model:     anthropic.Model(model.ID),
		Messages:  messages,
		MaxTokens: int64(maxTokens),
	}

	if systemPrompt != "" {
		system := anthropic.TextBlockParam{
			Type: "text",
			Text: systemPrompt,
		}
		// The system prompt is the stable prefix the message markers
		// build on; cache it too.
		if model.Info.SupportsPromptCache {
			system.CacheControl = anthropic.NewCacheControlEphemeralParam()
		}
		apiParams.System = []anthropic.TextBlockParam{system}
	}

	if opts.ThinkingRequested() && model.Info.SupportsThinking {
		budget := opts.EffectiveThinkingBudget(maxTokens)
		apiParams.Thinking = anthropic.ThinkingConfigParamOfEnabled(int64(budget))
		// Provider requirement: temperature is pinned while thinking is on.
		apiParams.Temperature = anthropic.Float(agentwire.ThinkingTemperature)
	} else if opts.Temperature != nil {
		apiParams.Temperature = anthropic.Float(*opts.Temperature)
	}

	return apiParams, nil
}
