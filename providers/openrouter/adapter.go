package openrouter

import (
	"fmt"

	"github.com/haowjy/agentwire-go"
)

// convertMessages converts library messages to OpenRouter's OpenAI-style
// wire form. Text-only messages use plain string content; messages with
// images use the content-part array.
func convertMessages(history []agentwire.Message) ([]chatMessage, error) {
	result := make([]chatMessage, 0, len(history))

	for i, msg := range history {
		var role string
		switch msg.Role {
		case agentwire.RoleUser:
			role = "user"
		case agentwire.RoleAssistant:
			role = "assistant"
		default:
			return nil, fmt.Errorf("message %d: unsupported role %q", i, msg.Role)
		}

		if !msg.HasImages() {
			result = append(result, chatMessage{Role: role, Content: msg.JoinText()})
			continue
		}

		parts := make([]contentPart, 0, len(msg.Blocks))
		for j, block := range msg.Blocks {
			switch block.Type {
			case agentwire.BlockTypeText:
				parts = append(parts, contentPart{Type: "text", Text: block.Text})
			case agentwire.BlockTypeImage:
				if block.Image == nil {
					return nil, fmt.Errorf("message %d, block %d: image block has no source", i, j)
				}
				parts = append(parts, contentPart{
					Type:     "image_url",
					ImageURL: &imageURL{URL: dataURL(block.Image.MediaType, block.Image.Data)},
				})
			default:
				return nil, fmt.Errorf("message %d, block %d: unsupported block type %q", i, j, block.Type)
			}
		}

		result = append(result, chatMessage{Role: role, Content: parts})
	}

	return result, nil
}

// dataURL packs a base64 image into the inline data URL form the OpenAI
// wire format expects.
func dataURL(mediaType, base64Data string) string {
	return fmt.Sprintf("data:%s;base64,%s", mediaType, base64Data)
}

// markCacheBoundaries attaches ephemeral cache markers to the last two user
// messages. The next turn extends today's prefix, so the newest marker is
// tomorrow's cache hit and the older one covers the prefix that produced it.
//
// The messages slice must be index-aligned with history (no system message
// prepended yet).
func markCacheBoundaries(messages []chatMessage, history []agentwire.Message) {
	last, secondLast := agentwire.LastUserIndices(history)

	for _, idx := range []int{secondLast, last} {
		if idx < 0 || idx >= len(messages) {
			continue
		}
		markFinalTextPart(&messages[idx])
	}
}

// markFinalTextPart sets cache_control on the message's final text part,
// rewriting plain string content into part form first. The marker only
// attaches to text parts; a message of bare images is left unmarked.
func markFinalTextPart(msg *chatMessage) {
	switch content := msg.Content.(type) {
	case string:
		msg.Content = []contentPart{{
			Type:         "text",
			Text:         content,
			CacheControl: &cacheControl{Type: "ephemeral"},
		}}
	case []contentPart:
		for i := len(content) - 1; i >= 0; i-- {
			if content[i].Type == "text" {
				content[i].CacheControl = &cacheControl{Type: "ephemeral"}
				return
			}
		}
	}
}
