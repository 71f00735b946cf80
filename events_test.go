package agentwire

import (
	"errors"
	"testing"
)

func TestStreamEvent_ExactlyOneField(t *testing.T) {
	streamErr := errors.New("stream cut")

	tests := []struct {
		name          string
		event         StreamEvent
		wantText      bool
		wantReasoning bool
		wantUsage     bool
		wantError     bool
	}{
		{"text event", TextEvent("hello"), true, false, false, false},
		{"empty text event", TextEvent(""), true, false, false, false},
		{"reasoning event", ReasoningEvent("hmm"), false, true, false, false},
		{"usage event", UsageEvent(UsageDelta{InputTokens: 1}), false, false, true, false},
		{"error event", ErrorEvent(streamErr), false, false, false, true},
		{"zero value", StreamEvent{}, false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.event.IsText(); got != tt.wantText {
				t.Errorf("IsText() = %v, want %v", got, tt.wantText)
			}
			if got := tt.event.IsReasoning(); got != tt.wantReasoning {
				t.Errorf("IsReasoning() = %v, want %v", got, tt.wantReasoning)
			}
			if got := tt.event.IsUsage(); got != tt.wantUsage {
				t.Errorf("IsUsage() = %v, want %v", got, tt.wantUsage)
			}
			if got := tt.event.IsError(); got != tt.wantError {
				t.Errorf("IsError() = %v, want %v", got, tt.wantError)
			}
		})
	}
}

func TestTextEvent_Payload(t *testing.T) {
	event := TextEvent("delta text")

	if event.Text == nil || *event.Text != "delta text" {
		t.Error("Text payload not set correctly")
	}
}

func TestUsageEvent_CopiesDelta(t *testing.T) {
	delta := UsageDelta{InputTokens: 5, OutputTokens: 2}
	event := UsageEvent(delta)

	delta.InputTokens = 99

	if event.Usage.InputTokens != 5 {
		t.Errorf("InputTokens = %d, want 5", event.Usage.InputTokens)
	}
	if event.Usage.OutputTokens != 2 {
		t.Errorf("OutputTokens = %d, want 2", event.Usage.OutputTokens)
	}
}

func TestErrorEvent_PreservesCause(t *testing.T) {
	cause := errors.New("connection reset")
	event := ErrorEvent(cause)

	if !errors.Is(event.Err, cause) {
		t.Error("Err should preserve the original error for errors.Is")
	}
}
