package assistant

import (
	"strings"
	"testing"
)

func TestNewVocabulary_Validation(t *testing.T) {
	tests := []struct {
		name    string
		tools   []ToolSpec
		wantErr string
	}{
		{
			name:    "empty vocabulary",
			tools:   nil,
			wantErr: "at least one tool",
		},
		{
			name:    "empty tool name",
			tools:   []ToolSpec{{Name: ""}},
			wantErr: "must not be empty",
		},
		{
			name: "duplicate tool name",
			tools: []ToolSpec{
				{Name: "alpha"},
				{Name: "alpha"},
			},
			wantErr: "duplicate tool name",
		},
		{
			name: "empty parameter name",
			tools: []ToolSpec{
				{Name: "alpha", Params: []ParamName{""}},
			},
			wantErr: "parameter name must not be empty",
		},
		{
			name: "duplicate parameter within one tool",
			tools: []ToolSpec{
				{Name: "alpha", Params: []ParamName{"p", "p"}},
			},
			wantErr: "duplicate parameter",
		},
		{
			name: "shared parameter across tools is fine",
			tools: []ToolSpec{
				{Name: "alpha", Params: []ParamName{"p"}},
				{Name: "beta", Params: []ParamName{"p", "q"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := NewVocabulary(tt.tools)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("NewVocabulary() error = %v, want nil", err)
				}
				if v == nil {
					t.Fatal("NewVocabulary() returned nil vocabulary without error")
				}
				return
			}
			if err == nil {
				t.Fatalf("NewVocabulary() error = nil, want %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("NewVocabulary() error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultVocabulary_ToolSet(t *testing.T) {
	v := DefaultVocabulary()

	wantOrder := []ToolName{
		ToolExecuteCommand,
		ToolReadFile,
		ToolWriteToFile,
		ToolReplaceInFile,
		ToolSearchFiles,
		ToolListFiles,
		ToolListCodeDefinitionNames,
		ToolBrowserAction,
		ToolUseMCPTool,
		ToolAccessMCPResource,
		ToolAskFollowupQuestion,
		ToolNewTask,
		ToolPlanModeRespond,
		ToolAttemptCompletion,
		ToolLoadMCPDocumentation,
	}

	tools := v.Tools()
	if len(tools) != len(wantOrder) {
		t.Fatalf("got %d tools, want %d", len(tools), len(wantOrder))
	}
	for i, name := range wantOrder {
		if tools[i].Name != name {
			t.Errorf("tool %d = %s, want %s", i, tools[i].Name, name)
		}
	}

	// Same value on every call
	if v != DefaultVocabulary() {
		t.Error("DefaultVocabulary() should return the same instance")
	}
}

func TestVocabulary_Lookup(t *testing.T) {
	v := DefaultVocabulary()

	spec, ok := v.Lookup(ToolWriteToFile)
	if !ok {
		t.Fatalf("Lookup(%s) not found", ToolWriteToFile)
	}
	if spec.Name != ToolWriteToFile {
		t.Errorf("Lookup(%s).Name = %s", ToolWriteToFile, spec.Name)
	}
	if len(spec.Params) != 2 || spec.Params[0] != ParamPath || spec.Params[1] != ParamContent {
		t.Errorf("Lookup(%s).Params = %v, want [path content]", ToolWriteToFile, spec.Params)
	}

	if _, ok := v.Lookup("not_a_tool"); ok {
		t.Error("Lookup(not_a_tool) should not be found")
	}
}

func TestVocabulary_Declares(t *testing.T) {
	v := DefaultVocabulary()

	tests := []struct {
		tool  ToolName
		param ParamName
		want  bool
	}{
		{ToolWriteToFile, ParamContent, true},
		{ToolWriteToFile, ParamPath, true},
		{ToolReadFile, ParamContent, false},
		{ToolReplaceInFile, ParamContent, false},
		{ToolLoadMCPDocumentation, ParamPath, false},
		{"not_a_tool", ParamPath, false},
	}

	for _, tt := range tests {
		if got := v.Declares(tt.tool, tt.param); got != tt.want {
			t.Errorf("Declares(%s, %s) = %v, want %v", tt.tool, tt.param, got, tt.want)
		}
	}
}
