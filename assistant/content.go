package assistant

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// TextContent is a narrative text span from a model turn.
type TextContent struct {
	Content string

	// Partial is true while the span may still grow on the next parse
	// call (the buffer ended inside it).
	Partial bool
}

// ToolUse is a structured tool invocation reconstructed from the text
// stream.
//
// Params preserves the order parameters first appeared in; re-assigning a
// parameter keeps its original position (last write wins on the value).
type ToolUse struct {
	Name   ToolName
	Params *orderedmap.OrderedMap[ParamName, string]

	// Partial is true until the tool's closing tag has been observed.
	Partial bool
}

// NewToolUse returns an open tool block with an empty parameter map.
func NewToolUse(name ToolName) *ToolUse {
	return &ToolUse{
		Name:    name,
		Params:  orderedmap.New[ParamName, string](),
		Partial: true,
	}
}

// Param returns the named parameter value and whether it has been set.
func (t *ToolUse) Param(name ParamName) (string, bool) {
	if t == nil || t.Params == nil {
		return "", false
	}
	return t.Params.Get(name)
}

// ParamNames returns the parameter names in first-set order.
func (t *ToolUse) ParamNames() []ParamName {
	if t == nil || t.Params == nil {
		return nil
	}
	names := make([]ParamName, 0, t.Params.Len())
	for pair := t.Params.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// ContentBlock is one parsed span of a model turn. Exactly one of Text or
// Tool is set.
//
// Blocks are fresh values on every parse call: no block carries identity
// across calls, so a caller may discard and replace its block list at any
// time.
type ContentBlock struct {
	Text *TextContent
	Tool *ToolUse
}

// TextBlock wraps a text span in a ContentBlock.
func TextBlock(content string, partial bool) ContentBlock {
	return ContentBlock{Text: &TextContent{Content: content, Partial: partial}}
}

// ToolBlock wraps a tool invocation in a ContentBlock.
func ToolBlock(tool *ToolUse) ContentBlock {
	return ContentBlock{Tool: tool}
}

// IsText returns true if this block is a text span.
func (b ContentBlock) IsText() bool {
	return b.Text != nil
}

// IsTool returns true if this block is a tool invocation.
func (b ContentBlock) IsTool() bool {
	return b.Tool != nil
}

// IsPartial returns true if the block's closing delimiter has not been
// observed yet.
func (b ContentBlock) IsPartial() bool {
	switch {
	case b.Text != nil:
		return b.Text.Partial
	case b.Tool != nil:
		return b.Tool.Partial
	}
	return false
}
