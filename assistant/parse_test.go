package assistant

import (
	"fmt"
	"strings"
	"testing"
)

// wantBlock describes one expected content block. A non-empty tool name
// means a ToolUse with the given params in order; otherwise a text span.
type wantBlock struct {
	text    string
	tool    ToolName
	params  [][2]string
	partial bool
}

func checkBlocks(t *testing.T, got []ContentBlock, want []wantBlock) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("got %d blocks, want %d\ngot: %s", len(got), len(want), describeBlocks(got))
	}

	for i, w := range want {
		b := got[i]
		if w.tool != "" {
			if !b.IsTool() {
				t.Fatalf("block %d: want tool %s, got %s", i, w.tool, describeBlocks(got[i:i+1]))
			}
			if b.Tool.Name != w.tool {
				t.Errorf("block %d: tool name = %s, want %s", i, b.Tool.Name, w.tool)
			}
			if b.Tool.Partial != w.partial {
				t.Errorf("block %d: tool partial = %v, want %v", i, b.Tool.Partial, w.partial)
			}
			names := b.Tool.ParamNames()
			if len(names) != len(w.params) {
				t.Fatalf("block %d: got %d params %v, want %d", i, len(names), names, len(w.params))
			}
			for j, kv := range w.params {
				if string(names[j]) != kv[0] {
					t.Errorf("block %d: param %d = %s, want %s", i, j, names[j], kv[0])
				}
				if v, _ := b.Tool.Param(ParamName(kv[0])); v != kv[1] {
					t.Errorf("block %d: param %s = %q, want %q", i, kv[0], v, kv[1])
				}
			}
			continue
		}

		if !b.IsText() {
			t.Fatalf("block %d: want text %q, got %s", i, w.text, describeBlocks(got[i:i+1]))
		}
		if b.Text.Content != w.text {
			t.Errorf("block %d: text = %q, want %q", i, b.Text.Content, w.text)
		}
		if b.Text.Partial != w.partial {
			t.Errorf("block %d: text partial = %v, want %v", i, b.Text.Partial, w.partial)
		}
	}
}

func describeBlocks(blocks []ContentBlock) string {
	var sb strings.Builder
	for i, b := range blocks {
		if i > 0 {
			sb.WriteString(", ")
		}
		switch {
		case b.IsText():
			fmt.Fprintf(&sb, "Text(%q, partial=%v)", b.Text.Content, b.Text.Partial)
		case b.IsTool():
			fmt.Fprintf(&sb, "Tool(%s, params=%v, partial=%v)", b.Tool.Name, b.Tool.ParamNames(), b.Tool.Partial)
		default:
			sb.WriteString("<empty>")
		}
	}
	return sb.String()
}

func blockEqual(a, b ContentBlock) bool {
	switch {
	case a.IsText() && b.IsText():
		return a.Text.Content == b.Text.Content && a.Text.Partial == b.Text.Partial
	case a.IsTool() && b.IsTool():
		if a.Tool.Name != b.Tool.Name || a.Tool.Partial != b.Tool.Partial {
			return false
		}
		an, bn := a.Tool.ParamNames(), b.Tool.ParamNames()
		if len(an) != len(bn) {
			return false
		}
		for i := range an {
			if an[i] != bn[i] {
				return false
			}
			av, _ := a.Tool.Param(an[i])
			bv, _ := b.Tool.Param(bn[i])
			if av != bv {
				return false
			}
		}
		return true
	}
	return false
}

func TestParse_RoundTrip(t *testing.T) {
	buffer := "before text <read_file><path>src/main.go</path></read_file> after text"

	checkBlocks(t, Parse(buffer), []wantBlock{
		{text: "before text"},
		{tool: ToolReadFile, params: [][2]string{{"path", "src/main.go"}}},
		{text: "after text", partial: true},
	})
}

func TestParse_PartialTail(t *testing.T) {
	tests := []struct {
		name   string
		buffer string
		want   []wantBlock
	}{
		{
			name:   "tool without closing tag",
			buffer: "<write_to_file><path>a.txt</path>",
			want: []wantBlock{
				{tool: ToolWriteToFile, params: [][2]string{{"path", "a.txt"}}, partial: true},
			},
		},
		{
			name:   "open parameter keeps its raw trailing text",
			buffer: "<write_to_file><path> a.txt ",
			want: []wantBlock{
				{tool: ToolWriteToFile, params: [][2]string{{"path", "a.txt"}}, partial: true},
			},
		},
		{
			name:   "buffer ends inside the opening tag",
			buffer: "hello <execute_comm",
			want: []wantBlock{
				{text: "hello <execute_comm", partial: true},
			},
		},
		{
			name:   "opening tag just completed",
			buffer: "hello <execute_command>",
			want: []wantBlock{
				{text: "hello"},
				{tool: ToolExecuteCommand, partial: true},
			},
		},
		{
			name:   "closing tag cut off mid-way",
			buffer: "<execute_command><command>ls</command></execute_comm",
			want: []wantBlock{
				{tool: ToolExecuteCommand, params: [][2]string{{"command", "ls"}}, partial: true},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkBlocks(t, Parse(tt.buffer), tt.want)
		})
	}
}

func TestParse_EmbeddedContentClosingTag(t *testing.T) {
	tests := []struct {
		name        string
		buffer      string
		wantContent string
	}{
		{
			name:        "payload containing one literal closing tag",
			buffer:      "<write_to_file><path>f.txt</path><content>line1\n</content>\nline2</content></write_to_file>",
			wantContent: "line1\n</content>\nline2",
		},
		{
			name:        "payload containing several literal closing tags",
			buffer:      "<write_to_file><path>f.txt</path><content>c1</content>c2</content>c3</content></write_to_file>",
			wantContent: "c1</content>c2</content>c3",
		},
		{
			name:        "stray closing tag after the payload extends the slice",
			buffer:      "<write_to_file><path>f.txt</path><content>x</content> stray </content></write_to_file>",
			wantContent: "x</content> stray",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkBlocks(t, Parse(tt.buffer), []wantBlock{
				{tool: ToolWriteToFile, params: [][2]string{{"path", "f.txt"}, {"content", tt.wantContent}}},
			})
		})
	}
}

func TestParse_UnknownTagIsText(t *testing.T) {
	tests := []struct {
		name   string
		buffer string
		want   []wantBlock
	}{
		{
			name:   "unknown tool tag stays literal text",
			buffer: "<notARealTool>hi</notARealTool>",
			want: []wantBlock{
				{text: "<notARealTool>hi</notARealTool>", partial: true},
			},
		},
		{
			name:   "unknown parameter tag inside a tool is ignored",
			buffer: "<read_file><path>a.go</path><bogus>x</bogus></read_file>",
			want: []wantBlock{
				{tool: ToolReadFile, params: [][2]string{{"path", "a.go"}}},
			},
		},
		{
			name:   "angle brackets in plain prose",
			buffer: "compare a < b and b > a",
			want: []wantBlock{
				{text: "compare a < b and b > a", partial: true},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkBlocks(t, Parse(tt.buffer), tt.want)
		})
	}
}

func TestParse_Idempotence(t *testing.T) {
	buffers := []string{
		"",
		"just text",
		"<read_file><path>a.go</path></read_file>",
		"text <write_to_file><path>f</path><content>x</content>",
		"<execute_command><command>ls -la</comm",
	}

	for _, buffer := range buffers {
		first := Parse(buffer)
		second := Parse(buffer)

		if len(first) != len(second) {
			t.Fatalf("parse(%q) not stable: %d blocks then %d", buffer, len(first), len(second))
		}
		for i := range first {
			if !blockEqual(first[i], second[i]) {
				t.Errorf("parse(%q) block %d differs between calls:\n%s\n%s",
					buffer, i, describeBlocks(first[i:i+1]), describeBlocks(second[i:i+1]))
			}
		}
	}
}

// Feeding the parser ever-longer prefixes of one turn must never change or
// reorder a block that was already complete: completed blocks only ever
// gain successors. This sweeps every split point, including splits inside
// opening and closing tags.
func TestParse_MonotonicConvergence(t *testing.T) {
	buffer := "Plan:\n" +
		"<execute_command><command>go test ./...</command><requires_approval>false</requires_approval></execute_command>\n" +
		"Now the file:\n" +
		"<write_to_file><path>notes.md</path><content>alpha\n</content>\nbeta</content></write_to_file>\n" +
		"done"

	var prev []ContentBlock
	for i := 0; i <= len(buffer); i++ {
		var completed []ContentBlock
		for _, b := range Parse(buffer[:i]) {
			if !b.IsPartial() {
				completed = append(completed, b)
			}
		}

		if len(completed) < len(prev) {
			t.Fatalf("prefix %d: completed blocks shrank from %d to %d", i, len(prev), len(completed))
		}
		for j := range prev {
			if !blockEqual(prev[j], completed[j]) {
				t.Fatalf("prefix %d: completed block %d changed:\nwas %s\nnow %s",
					i, j, describeBlocks(prev[j:j+1]), describeBlocks(completed[j:j+1]))
			}
		}
		prev = completed
	}

	checkBlocks(t, Parse(buffer), []wantBlock{
		{text: "Plan:"},
		{tool: ToolExecuteCommand, params: [][2]string{{"command", "go test ./..."}, {"requires_approval", "false"}}},
		{text: "Now the file:"},
		{tool: ToolWriteToFile, params: [][2]string{{"path", "notes.md"}, {"content", "alpha\n</content>\nbeta"}}},
		{text: "done", partial: true},
	})
}

func TestParse_TextAndToolBoundaries(t *testing.T) {
	tests := []struct {
		name   string
		buffer string
		want   []wantBlock
	}{
		{
			name:   "empty buffer",
			buffer: "",
			want:   nil,
		},
		{
			name:   "whitespace around a tool is dropped",
			buffer: "  <read_file><path>a</path></read_file>  ",
			want: []wantBlock{
				{tool: ToolReadFile, params: [][2]string{{"path", "a"}}},
			},
		},
		{
			name:   "back to back tools without text between",
			buffer: "<read_file><path>a</path></read_file><list_files><path>.</path><recursive>true</recursive></list_files>",
			want: []wantBlock{
				{tool: ToolReadFile, params: [][2]string{{"path", "a"}}},
				{tool: ToolListFiles, params: [][2]string{{"path", "."}, {"recursive", "true"}}},
			},
		},
		{
			name:   "multibyte text around a tool",
			buffer: "héllo ✓ <read_file><path>a</path></read_file> gøød",
			want: []wantBlock{
				{text: "héllo ✓"},
				{tool: ToolReadFile, params: [][2]string{{"path", "a"}}},
				{text: "gøød", partial: true},
			},
		},
		{
			name:   "tool with no parameters",
			buffer: "<load_mcp_documentation></load_mcp_documentation>",
			want: []wantBlock{
				{tool: ToolLoadMCPDocumentation},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkBlocks(t, Parse(tt.buffer), tt.want)
		})
	}
}

func TestParse_Params(t *testing.T) {
	tests := []struct {
		name   string
		buffer string
		want   []wantBlock
	}{
		{
			name:   "params keep first-appearance order",
			buffer: "<use_mcp_tool><server_name>fs</server_name><tool_name>stat</tool_name><arguments>{}</arguments></use_mcp_tool>",
			want: []wantBlock{
				{tool: ToolUseMCPTool, params: [][2]string{{"server_name", "fs"}, {"tool_name", "stat"}, {"arguments", "{}"}}},
			},
		},
		{
			name:   "repeated param keeps position, last value wins",
			buffer: "<read_file><path>a</path><path>b</path></read_file>",
			want: []wantBlock{
				{tool: ToolReadFile, params: [][2]string{{"path", "b"}}},
			},
		},
		{
			name:   "parameter values are trimmed",
			buffer: "<execute_command><command>\n  ls -la\n</command></execute_command>",
			want: []wantBlock{
				{tool: ToolExecuteCommand, params: [][2]string{{"command", "ls -la"}}},
			},
		},
		{
			name:   "parameters from the shared vocabulary match in any tool",
			buffer: "<read_file><regex>x</regex></read_file>",
			want: []wantBlock{
				{tool: ToolReadFile, params: [][2]string{{"regex", "x"}}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkBlocks(t, Parse(tt.buffer), tt.want)
		})
	}
}
