package bedrock

import (
	"encoding/base64"
	"fmt"

	brtypes "github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"

	"github.com/haowjy/agentwire-go"
)

// convertMessages maps the shared history onto Converse messages.
func convertMessages(history []agentwire.Message) ([]brtypes.Message, error) {
	messages := make([]brtypes.Message, 0, len(history))

	for i, msg := range history {
		var role brtypes.ConversationRole
		switch msg.Role {
		case agentwire.RoleUser:
			role = brtypes.ConversationRoleUser
		case agentwire.RoleAssistant:
			role = brtypes.ConversationRoleAssistant
		default:
			return nil, fmt.Errorf("message %d: unsupported role %q", i, msg.Role)
		}

		blocks := make([]brtypes.ContentBlock, 0, len(msg.Blocks))
		for j, block := range msg.Blocks {
			switch block.Type {
			case agentwire.BlockTypeText:
				blocks = append(blocks, &brtypes.ContentBlockMemberText{Value: block.Text})
			case agentwire.BlockTypeImage:
				if block.Image == nil {
					return nil, fmt.Errorf("message %d, block %d: image block without source", i, j)
				}
				img, err := convertImage(block.Image)
				if err != nil {
					return nil, fmt.Errorf("message %d, block %d: %w", i, j, err)
				}
				blocks = append(blocks, img)
			default:
				return nil, fmt.Errorf("message %d, block %d: unsupported block type %q", i, j, block.Type)
			}
		}

		messages = append(messages, brtypes.Message{Role: role, Content: blocks})
	}

	return messages, nil
}

// convertImage decodes a base64 attachment into the raw-byte image block
// the Converse API expects.
func convertImage(src *agentwire.ImageSource) (*brtypes.ContentBlockMemberImage, error) {
	var format brtypes.ImageFormat
	switch src.MediaType {
	case "image/png":
		format = brtypes.ImageFormatPng
	case "image/jpeg":
		format = brtypes.ImageFormatJpeg
	case "image/gif":
		format = brtypes.ImageFormatGif
	case "image/webp":
		format = brtypes.ImageFormatWebp
	default:
		return nil, fmt.Errorf("unsupported image media type %q", src.MediaType)
	}

	raw, err := base64.StdEncoding.DecodeString(src.Data)
	if err != nil {
		return nil, fmt.Errorf("decode image data: %w", err)
	}

	return &brtypes.ContentBlockMemberImage{
		Value: brtypes.ImageBlock{
			Format: format,
			Source: &brtypes.ImageSourceMemberBytes{Value: raw},
		},
	}, nil
}

// markCacheBoundaries appends cache checkpoints to the last and
// second-to-last user turns. Converse caches the prefix up to each
// checkpoint, so the repeated prefix of the next request is a read hit
// while the newest turn writes the extension.
func markCacheBoundaries(messages []brtypes.Message, history []agentwire.Message) {
	last, secondLast := agentwire.LastUserIndices(history)
	for _, idx := range []int{secondLast, last} {
		if idx < 0 || idx >= len(messages) {
			continue
		}
		messages[idx].Content = append(messages[idx].Content, cachePoint())
	}
}

func cachePoint() *brtypes.ContentBlockMemberCachePoint {
	return &brtypes.ContentBlockMemberCachePoint{
		Value: brtypes.CachePointBlock{Type: brtypes.CachePointTypeDefault},
	}
}
