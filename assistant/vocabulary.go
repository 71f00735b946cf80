package assistant

import (
	"fmt"
	"sync"
)

// ToolName identifies a tool the model can invoke.
type ToolName string

// The built-in assistant tool set.
const (
	ToolExecuteCommand          ToolName = "execute_command"
	ToolReadFile                ToolName = "read_file"
	ToolWriteToFile             ToolName = "write_to_file"
	ToolReplaceInFile           ToolName = "replace_in_file"
	ToolSearchFiles             ToolName = "search_files"
	ToolListFiles               ToolName = "list_files"
	ToolListCodeDefinitionNames ToolName = "list_code_definition_names"
	ToolBrowserAction           ToolName = "browser_action"
	ToolUseMCPTool              ToolName = "use_mcp_tool"
	ToolAccessMCPResource       ToolName = "access_mcp_resource"
	ToolAskFollowupQuestion     ToolName = "ask_followup_question"
	ToolNewTask                 ToolName = "new_task"
	ToolPlanModeRespond         ToolName = "plan_mode_respond"
	ToolAttemptCompletion       ToolName = "attempt_completion"
	ToolLoadMCPDocumentation    ToolName = "load_mcp_documentation"
)

// ParamName identifies a tool parameter.
type ParamName string

// Parameter names used by the built-in tool set.
const (
	ParamCommand          ParamName = "command"
	ParamRequiresApproval ParamName = "requires_approval"
	ParamPath             ParamName = "path"

	// ParamContent is the one parameter whose value may legitimately
	// contain its own closing tag (file contents). The parser matches its
	// LAST closing delimiter inside the tool span instead of the first.
	ParamContent ParamName = "content"

	ParamDiff        ParamName = "diff"
	ParamRegex       ParamName = "regex"
	ParamFilePattern ParamName = "file_pattern"
	ParamRecursive   ParamName = "recursive"
	ParamAction      ParamName = "action"
	ParamURL         ParamName = "url"
	ParamCoordinate  ParamName = "coordinate"
	ParamText        ParamName = "text"
	ParamServerName  ParamName = "server_name"
	ParamToolName    ParamName = "tool_name"
	ParamArguments   ParamName = "arguments"
	ParamURI         ParamName = "uri"
	ParamQuestion    ParamName = "question"
	ParamOptions     ParamName = "options"
	ParamContext     ParamName = "context"
	ParamResponse    ParamName = "response"
	ParamResult      ParamName = "result"
)

// ToolSpec declares one tool: its tag name and the parameters it accepts,
// in enumeration order.
type ToolSpec struct {
	Name   ToolName
	Params []ParamName
}

// Vocabulary is the closed set of tools the parser recognizes.
//
// Order matters: when more than one opening tag could match at the same
// buffer position, the first name in enumeration order wins. Keeping tag
// names unambiguous is the caller's obligation when supplying a custom
// vocabulary, not a runtime check.
type Vocabulary struct {
	tools  []ToolSpec
	byName map[ToolName]ToolSpec

	// Parameter opening tags are matched against the whole parameter
	// vocabulary (first occurrence across tools, in tool order), not just
	// the current tool's declared set.
	params []ParamName

	toolOpen   []string // parallel to tools
	toolClose  map[ToolName]string
	paramOpen  []string // parallel to params
	paramClose map[ParamName]string
}

// NewVocabulary builds a vocabulary from tool specs. Tool and parameter
// names must be non-empty; duplicate tool names and duplicate parameters
// within one tool are rejected.
func NewVocabulary(tools []ToolSpec) (*Vocabulary, error) {
	if len(tools) == 0 {
		return nil, fmt.Errorf("vocabulary must declare at least one tool")
	}

	v := &Vocabulary{
		tools:      make([]ToolSpec, 0, len(tools)),
		byName:     make(map[ToolName]ToolSpec, len(tools)),
		toolClose:  make(map[ToolName]string, len(tools)),
		paramClose: make(map[ParamName]string),
	}

	seenParam := make(map[ParamName]bool)
	for _, spec := range tools {
		if spec.Name == "" {
			return nil, fmt.Errorf("tool name must not be empty")
		}
		if _, dup := v.byName[spec.Name]; dup {
			return nil, fmt.Errorf("duplicate tool name: %s", spec.Name)
		}

		perTool := make(map[ParamName]bool, len(spec.Params))
		for _, p := range spec.Params {
			if p == "" {
				return nil, fmt.Errorf("tool %s: parameter name must not be empty", spec.Name)
			}
			if perTool[p] {
				return nil, fmt.Errorf("tool %s: duplicate parameter: %s", spec.Name, p)
			}
			perTool[p] = true

			if !seenParam[p] {
				seenParam[p] = true
				v.params = append(v.params, p)
				v.paramOpen = append(v.paramOpen, openTag(string(p)))
				v.paramClose[p] = closeTag(string(p))
			}
		}

		v.tools = append(v.tools, spec)
		v.byName[spec.Name] = spec
		v.toolOpen = append(v.toolOpen, openTag(string(spec.Name)))
		v.toolClose[spec.Name] = closeTag(string(spec.Name))
	}

	return v, nil
}

var (
	defaultVocabulary     *Vocabulary
	defaultVocabularyOnce sync.Once
)

// DefaultVocabulary returns the built-in assistant tool set (constructed
// once).
func DefaultVocabulary() *Vocabulary {
	defaultVocabularyOnce.Do(func() {
		v, err := NewVocabulary(defaultToolSpecs())
		if err != nil {
			// The built-in specs are static; this cannot fail.
			panic(fmt.Sprintf("assistant: invalid built-in vocabulary: %v", err))
		}
		defaultVocabulary = v
	})
	return defaultVocabulary
}

func defaultToolSpecs() []ToolSpec {
	return []ToolSpec{
		{Name: ToolExecuteCommand, Params: []ParamName{ParamCommand, ParamRequiresApproval}},
		{Name: ToolReadFile, Params: []ParamName{ParamPath}},
		{Name: ToolWriteToFile, Params: []ParamName{ParamPath, ParamContent}},
		{Name: ToolReplaceInFile, Params: []ParamName{ParamPath, ParamDiff}},
		{Name: ToolSearchFiles, Params: []ParamName{ParamPath, ParamRegex, ParamFilePattern}},
		{Name: ToolListFiles, Params: []ParamName{ParamPath, ParamRecursive}},
		{Name: ToolListCodeDefinitionNames, Params: []ParamName{ParamPath}},
		{Name: ToolBrowserAction, Params: []ParamName{ParamAction, ParamURL, ParamCoordinate, ParamText}},
		{Name: ToolUseMCPTool, Params: []ParamName{ParamServerName, ParamToolName, ParamArguments}},
		{Name: ToolAccessMCPResource, Params: []ParamName{ParamServerName, ParamURI}},
		{Name: ToolAskFollowupQuestion, Params: []ParamName{ParamQuestion, ParamOptions}},
		{Name: ToolNewTask, Params: []ParamName{ParamContext}},
		{Name: ToolPlanModeRespond, Params: []ParamName{ParamResponse}},
		{Name: ToolAttemptCompletion, Params: []ParamName{ParamResult, ParamCommand}},
		{Name: ToolLoadMCPDocumentation, Params: nil},
	}
}

// Tools returns the tool specs in enumeration order. Callers must not
// modify the returned slice.
func (v *Vocabulary) Tools() []ToolSpec {
	return v.tools
}

// Lookup returns the spec for a tool name.
func (v *Vocabulary) Lookup(name ToolName) (ToolSpec, bool) {
	spec, ok := v.byName[name]
	return spec, ok
}

// Declares reports whether the tool accepts the named parameter.
func (v *Vocabulary) Declares(tool ToolName, param ParamName) bool {
	spec, ok := v.byName[tool]
	if !ok {
		return false
	}
	for _, p := range spec.Params {
		if p == param {
			return true
		}
	}
	return false
}

func openTag(name string) string {
	return "<" + name + ">"
}

func closeTag(name string) string {
	return "</" + name + ">"
}
