package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNewFormatsMessage(t *testing.T) {
	err := New(ErrCodeInsufficientHeight, "needs %gmm, %gmm available", 100.0, 40.0)

	if err.Code != ErrCodeInsufficientHeight || err.Message != "needs 100mm, 40mm available" {
		t.Errorf("New() = %+v", err)
	}
	if want := "INSUFFICIENT_HEIGHT: needs 100mm, 40mm available"; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := fmt.Errorf("unexpected end of JSON input")
	err := Wrap(ErrCodeInvalidFormat, cause, "decode design")

	if errors.Unwrap(err) != cause || !errors.Is(err, cause) {
		t.Errorf("cause lost: %v", err)
	}
	if GetCode(fmt.Errorf("read design.json: %w", err)) != ErrCodeInvalidFormat {
		t.Error("code should survive fmt.Errorf wrapping")
	}
}

func TestCodeHelpers(t *testing.T) {
	plain := errors.New("disk full")
	nested := Wrap(ErrCodeInternal, New(ErrCodePanelNotFound, "panel p9"), "edit")

	tests := []struct {
		name      string
		err       error
		code      Code
		wantIs    bool
		wantCode  Code
		wantMsg   string
		rejection bool
	}{
		{"coded", New(ErrCodeInvalidRule, "rule r1: no id"), ErrCodeInvalidRule, true, ErrCodeInvalidRule, "rule r1: no id", false},
		{"other code", New(ErrCodeInvalidRule, "x"), ErrCodeInternal, false, ErrCodeInvalidRule, "x", false},
		{"outermost code wins", nested, ErrCodeInternal, true, ErrCodeInternal, "edit", false},
		{"plain", plain, ErrCodeInternal, false, "", "disk full", false},
		{"insufficient height", New(ErrCodeInsufficientHeight, "no room"), ErrCodeInsufficientHeight, true, ErrCodeInsufficientHeight, "no room", true},
		{"missing required", New(ErrCodeMissingRequired, "needs PE bar"), ErrCodeMissingRequired, true, ErrCodeMissingRequired, "needs PE bar", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.wantIs {
				t.Errorf("Is() = %v, want %v", got, tt.wantIs)
			}
			if got := GetCode(tt.err); got != tt.wantCode {
				t.Errorf("GetCode() = %q, want %q", got, tt.wantCode)
			}
			if got := UserMessage(tt.err); got != tt.wantMsg {
				t.Errorf("UserMessage() = %q, want %q", got, tt.wantMsg)
			}
			if got := IsRejection(tt.err); got != tt.rejection {
				t.Errorf("IsRejection() = %v, want %v", got, tt.rejection)
			}
		})
	}
}

func TestNilError(t *testing.T) {
	if Is(nil, ErrCodeInternal) || GetCode(nil) != "" || IsRejection(nil) {
		t.Error("nil error should carry no code")
	}
}
