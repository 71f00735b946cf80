package openai

import (
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/haowjy/agentwire-go"
)

// convertMessages maps the shared history onto Chat Completions messages.
// Text-only messages use the plain Content field; image-bearing messages
// switch to MultiContent parts with inline data URLs.
func convertMessages(history []agentwire.Message) ([]openai.ChatCompletionMessage, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(history))

	for i, msg := range history {
		var role string
		switch msg.Role {
		case agentwire.RoleUser:
			role = openai.ChatMessageRoleUser
		case agentwire.RoleAssistant:
			role = openai.ChatMessageRoleAssistant
		default:
			return nil, fmt.Errorf("message %d: unsupported role %q", i, msg.Role)
		}

		if !msg.HasImages() {
			messages = append(messages, openai.ChatCompletionMessage{
				Role:    role,
				Content: msg.JoinText(),
			})
			continue
		}

		parts := make([]openai.ChatMessagePart, 0, len(msg.Blocks))
		for j, block := range msg.Blocks {
			switch block.Type {
			case agentwire.BlockTypeText:
				parts = append(parts, openai.ChatMessagePart{
					Type: openai.ChatMessagePartTypeText,
					Text: block.Text,
				})
			case agentwire.BlockTypeImage:
				if block.Image == nil {
					return nil, fmt.Errorf("message %d, block %d: image block without source", i, j)
				}
				parts = append(parts, openai.ChatMessagePart{
					Type: openai.ChatMessagePartTypeImageURL,
					ImageURL: &openai.ChatMessageImageURL{
						URL: dataURL(block.Image.MediaType, block.Image.Data),
					},
				})
			default:
				return nil, fmt.Errorf("message %d, block %d: unsupported block type %q", i, j, block.Type)
			}
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:         role,
			MultiContent: parts,
		})
	}

	return messages, nil
}

// dataURL encodes an image attachment as an inline data URL.
func dataURL(mediaType, base64Data string) string {
	return fmt.Sprintf("data:%s;base64,%s", mediaType, base64Data)
}
