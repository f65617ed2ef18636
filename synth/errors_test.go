package synth

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestCodeOf(t *testing.T) {
	cause := errors.New("cuda oom")

	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"nil", nil, Code("")},
		{"coded", codedError(CodeEmptyInput, "no text"), CodeEmptyInput},
		{"wrapped cause", wrapError(CodeGenerationFailed, cause, "backend failed"), CodeGenerationFailed},
		{"coded error inside fmt wrap", fmt.Errorf("outer: %w", codedError(CodeUnknownReference, "gone")), CodeUnknownReference},
		{"plain error", errors.New("something"), CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.want {
				t.Errorf("CodeOf = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorPreservesCause(t *testing.T) {
	cause := errors.New("cuda oom")
	err := wrapError(CodeGenerationFailed, cause, "backend failed")

	if !errors.Is(err, cause) {
		t.Error("wrapped cause should satisfy errors.Is")
	}
	if !strings.Contains(err.Error(), "cuda oom") {
		t.Errorf("cause detail missing from message: %q", err.Error())
	}
	if !strings.Contains(err.Error(), string(CodeGenerationFailed)) {
		t.Errorf("code missing from message: %q", err.Error())
	}
}
