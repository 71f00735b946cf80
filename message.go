package agentwire

import "strings"

// Message roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Block type constants
const (
	BlockTypeText  = "text"
	BlockTypeImage = "image"
)

// Message represents a single turn in the conversation history.
type Message struct {
	// Role is either "user" or "assistant"
	Role string

	// Blocks is the ordered content of this turn
	Blocks []Block
}

// Block is a single piece of message content: plain text or an attached
// image. Exactly one payload field is populated per block, selected by Type.
type Block struct {
	// Type is BlockTypeText or BlockTypeImage
	Type string

	// Text is the content for text blocks
	Text string

	// Image is the content for image blocks
	Image *ImageSource
}

// ImageSource is a base64-encoded image attachment.
type ImageSource struct {
	// MediaType is the MIME type: "image/png", "image/jpeg", "image/gif",
	// or "image/webp"
	MediaType string

	// Data is the base64-encoded image payload (no data: URL prefix)
	Data string
}

// NewTextBlock creates a text content block.
func NewTextBlock(text string) Block {
	return Block{Type: BlockTypeText, Text: text}
}

// NewImageBlock creates an image content block.
func NewImageBlock(mediaType, data string) Block {
	return Block{
		Type:  BlockTypeImage,
		Image: &ImageSource{MediaType: mediaType, Data: data},
	}
}

// NewTextMessage creates a message holding a single text block.
func NewTextMessage(role, text string) Message {
	return Message{Role: role, Blocks: []Block{NewTextBlock(text)}}
}

// NewUserMessage creates a user message from content blocks.
func NewUserMessage(blocks ...Block) Message {
	return Message{Role: RoleUser, Blocks: blocks}
}

// NewAssistantMessage creates an assistant message from content blocks.
func NewAssistantMessage(blocks ...Block) Message {
	return Message{Role: RoleAssistant, Blocks: blocks}
}

// IsText returns true if this is a text block.
func (b Block) IsText() bool {
	return b.Type == BlockTypeText
}

// IsImage returns true if this is an image block with a payload.
func (b Block) IsImage() bool {
	return b.Type == BlockTypeImage && b.Image != nil
}

// HasImages returns true if any block in the message is an image.
func (m Message) HasImages() bool {
	for _, b := range m.Blocks {
		if b.IsImage() {
			return true
		}
	}
	return false
}

// JoinText concatenates the message's text blocks with newlines. Image
// blocks are skipped. Used by adapters that can only submit plain strings
// (the legacy fallback path and the lorem provider).
func (m Message) JoinText() string {
	parts := make([]string, 0, len(m.Blocks))
	for _, b := range m.Blocks {
		if b.IsText() && b.Text != "" {
			parts = append(parts, b.Text)
		}
	}
	return strings.Join(parts, "\n")
}

// LastUserIndices returns the indices of the last and second-to-last user
// messages in history, in that order. An absent entry is -1.
//
// Providers that support prompt caching mark exactly these two turns with a
// cache boundary: the provider's prefix-cache contract rewards a rolling
// two-turn window, so marking more wastes cache writes and marking fewer
// forfeits reuse.
func LastUserIndices(history []Message) (last, secondLast int) {
	last, secondLast = -1, -1
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role != RoleUser {
			continue
		}
		if last == -1 {
			last = i
			continue
		}
		secondLast = i
		break
	}
	return last, secondLast
}
