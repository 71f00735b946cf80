package bedrock

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/document"
	brtypes "github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"

	"github.com/haowjy/agentwire-go"
)

// buildStreamInput shapes the ConverseStream request: system blocks, cache
// checkpoints, inference configuration, and the thinking passthrough.
func buildStreamInput(model agentwire.SelectedModel, opts agentwire.Options, systemPrompt string, history []agentwire.Message) (*bedrockruntime.ConverseStreamInput, error) {
	messages, err := convertMessages(history)
	if err != nil {
		return nil, fmt.Errorf("convert messages: %w", err)
	}
	if model.Info.SupportsPromptCache {
		markCacheBoundaries(messages, history)
	}

	input := &bedrockruntime.ConverseStreamInput{
		ModelId:  aws.String(model.ID),
		Messages: messages,
	}

	if systemPrompt != "" {
		system := []brtypes.SystemContentBlock{
			&brtypes.SystemContentBlockMemberText{Value: systemPrompt},
		}
		if model.Info.SupportsPromptCache {
			// The system prompt is the stable prefix the message
			// checkpoints build on; cache it too.
			system = append(system, &brtypes.SystemContentBlockMemberCachePoint{
				Value: brtypes.CachePointBlock{Type: brtypes.CachePointTypeDefault},
			})
		}
		input.System = system
	}

	maxTokens := opts.GetMaxTokens(agentwire.DefaultMaxTokens)
	cfg := brtypes.InferenceConfiguration{
		MaxTokens: aws.Int32(int32(maxTokens)),
	}

	if opts.ThinkingRequested() && model.Info.SupportsThinking {
		// Converse has no first-class thinking parameter; it rides in
		// the model-specific passthrough fields.
		fields := map[string]any{
			"thinking": map[string]any{
				"type":          "enabled",
				"budget_tokens": opts.EffectiveThinkingBudget(maxTokens),
			},
		}
		input.AdditionalModelRequestFields = document.NewLazyDocument(&fields)
		// Provider requirement: temperature is pinned while thinking is on.
		cfg.Temperature = aws.Float32(float32(agentwire.ThinkingTemperature))
	} else if opts.Temperature != nil {
		cfg.Temperature = aws.Float32(float32(*opts.Temperature))
	}

	input.InferenceConfig = &cfg
	return input, nil
}
