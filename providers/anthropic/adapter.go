package anthropic

import (
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/haowjy/agentwire-go"
)

// convertMessages converts library history to Anthropic SDK format.
func convertMessages(history []agentwire.Message) ([]anthropic.MessageParam, error) {
	result := make([]anthropic.MessageParam, 0, len(history))

	for i, msg := range history {
		blocks := make([]anthropic.ContentBlockParamUnion, 0, len(msg.Blocks))

		for j, block := range msg.Blocks {
			switch block.Type {
			case agentwire.BlockTypeText:
				blocks = append(blocks, anthropic.NewTextBlock(block.Text))

			case agentwire.BlockTypeImage:
				if block.Image == nil {
					return nil, fmt.Errorf("message %d, block %d: image block missing source", i, j)
				}
				blocks = append(blocks, anthropic.NewImageBlockBase64(block.Image.MediaType, block.Image.Data))

			default:
				return nil, fmt.Errorf("message %d, block %d: unsupported block type '%s'", i, j, block.Type)
			}
		}

		switch msg.Role {
		case agentwire.RoleUser:
			result = append(result, anthropic.NewUserMessage(blocks...))
		case agentwire.RoleAssistant:
			result = append(result, anthropic.NewAssistantMessage(blocks...))
		default:
			return nil, fmt.Errorf("message %d: unsupported role '%s'", i, msg.Role)
		}
	}

	return result, nil
}

// markCacheBoundaries annotates the final content block of the last and
// second-to-last user messages with an ephemeral cache marker. Exactly two
// marks: the prefix-cache contract rewards a rolling two-turn window, so
// marking more wastes cache writes and marking fewer forfeits reuse.
func markCacheBoundaries(messages []anthropic.MessageParam, history []agentwire.Message) {
	last, secondLast := agentwire.LastUserIndices(history)
	for _, idx := range []int{secondLast, last} {
		if idx < 0 || idx >= len(messages) {
			continue
		}
		markFinalBlock(&messages[idx])
	}
}

func markFinalBlock(msg *anthropic.MessageParam) {
	if len(msg.Content) == 0 {
		return
	}
	block := &msg.Content[len(msg.Content)-1]
	switch {
	case block.OfText != nil:
		block.OfText.CacheControl = anthropic.NewCacheControlEphemeralParam()
	case block.OfImage != nil:
		block.OfImage.CacheControl = anthropic.NewCacheControlEphemeralParam()
	}
}
