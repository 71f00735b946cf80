// Package assistant reconstructs structured tool-use blocks from the
// free-form text a model produces.
//
// Models embed tool invocations in their text output as angle-bracket tag
// pairs (<tool_name>...</tool_name> wrapping <param>...</param> spans).
// Because the text arrives in arbitrary-sized fragments and may be cut off
// mid-tag at any moment, the caller accumulates the whole turn into one
// buffer and re-parses the entire buffer after every append. Parse is pure
// and stateless between calls, which makes redundant calls safe and makes
// cancellation trivial: the last returned block list is always complete
// for the buffer it was computed from.
package assistant

import (
	"strings"
)

// Parse splits a turn buffer into text and tool-use blocks using the
// built-in tool vocabulary. See Vocabulary.Parse.
func Parse(buffer string) []ContentBlock {
	return DefaultVocabulary().Parse(buffer)
}

// Parse splits a turn buffer into an ordered list of content blocks.
//
// The scan is a single forward pass rebuilding its state machine on every
// call: Outside (accumulating text, hunting for a tool opening tag),
// InTool (hunting for a parameter opening tag or the tool's closing tag)
// and InParam (hunting for the parameter's closing tag). Tag-shaped text
// that matches no vocabulary name is ordinary text; there is no failure
// mode.
//
// A block whose closing tag has not appeared yet is returned with
// Partial=true and may grow on the next call. Blocks already closed are
// stable: they reappear unchanged, in the same order, on every later call
// with an extended buffer.
func (v *Vocabulary) Parse(buffer string) []ContentBlock {
	var blocks []ContentBlock

	var curTool *ToolUse
	var curParam ParamName

	textStart := -1 // start of the open text span, -1 when none
	toolStart := 0  // index just past the current tool's opening tag
	paramStart := 0 // index just past the current parameter's opening tag

	contentOpen := openTag(string(ParamContent))
	contentClose := closeTag(string(ParamContent))

	for i := 0; i < len(buffer); i++ {
		acc := buffer[:i+1]

		// InParam: only the parameter's closing tag matters.
		if curTool != nil && curParam != "" {
			value := acc[paramStart:]
			closing := v.paramClose[curParam]
			if strings.HasSuffix(value, closing) {
				curTool.Params.Set(curParam, strings.TrimSpace(strings.TrimSuffix(value, closing)))
				curParam = ""
			}
			continue
		}

		// InTool: closing tag, then a parameter opening tag, then the
		// content re-slice.
		if curTool != nil {
			span := acc[toolStart:]
			if strings.HasSuffix(span, v.toolClose[curTool.Name]) {
				curTool.Partial = false
				blocks = append(blocks, ToolBlock(curTool))
				curTool = nil
				continue
			}

			for pi, open := range v.paramOpen {
				if strings.HasSuffix(acc, open) {
					curParam = v.params[pi]
					paramStart = i + 1
					break
				}
			}

			// A content value may legitimately contain the literal
			// closing tag, so an earlier match truncated it. Whenever
			// another closing tag shows up, re-slice from the first
			// opening tag to the LAST closing tag seen so far and
			// overwrite.
			if curParam == "" && v.Declares(curTool.Name, ParamContent) && strings.HasSuffix(span, contentClose) {
				if start := strings.Index(span, contentOpen); start != -1 {
					start += len(contentOpen)
					if end := strings.LastIndex(span, contentClose); end > start {
						curTool.Params.Set(ParamContent, strings.TrimSpace(span[start:end]))
					}
				}
			}
			continue
		}

		// Outside: a tool opening tag ends the text span, first match in
		// enumeration order wins.
		startedTool := false
		for ti, open := range v.toolOpen {
			if !strings.HasSuffix(acc, open) {
				continue
			}
			curTool = NewToolUse(v.tools[ti].Name)
			toolStart = i + 1

			if textStart != -1 {
				text := strings.TrimSpace(strings.TrimSuffix(buffer[textStart:i+1], open))
				if text != "" {
					blocks = append(blocks, TextBlock(text, false))
				}
				textStart = -1
			}
			startedTool = true
			break
		}
		if !startedTool && textStart == -1 {
			textStart = i
		}
	}

	// End of buffer: at most one block is still open, a tool (possibly
	// with an open parameter, which keeps its raw trailing text) or a
	// text span. Never both.
	if curTool != nil {
		if curParam != "" {
			curTool.Params.Set(curParam, strings.TrimSpace(buffer[paramStart:]))
		}
		blocks = append(blocks, ToolBlock(curTool))
	}
	if textStart != -1 {
		if text := strings.TrimSpace(buffer[textStart:]); text != "" {
			blocks = append(blocks, TextBlock(text, true))
		}
	}

	return blocks
}
