package errors

import (
	"strings"
	"testing"
)

func TestValidateID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "panel-1", false},
		{"uuid", "3f2a0c5e-8a44-4c1b-9d7e-0c1f2a3b4c5d", false},
		{"dots and underscores", "mcb_16a.2p", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 129), true},
		{"space", "panel 1", true},
		{"tab", "panel\t1", true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateID("panel", tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("ValidateID(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidInput)
			}
		})
	}
}

func TestValidateRuleFilePath(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode Code
	}{
		{"json", "rules.json", ""},
		{"yaml", "config/rules.yaml", ""},
		{"yml upper", "RULES.YML", ""},
		{"toml", "rules.toml", ""},

		{"empty", "", ErrCodeInvalidPath},
		{"null byte", "rules\x00.json", ErrCodeInvalidPath},
		{"no extension", "rules", ErrCodeInvalidFormat},
		{"xml", "rules.xml", ErrCodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRuleFilePath(tt.input)
			if got := GetCode(err); got != tt.wantCode {
				t.Errorf("ValidateRuleFilePath(%q) code = %q, want %q", tt.input, got, tt.wantCode)
			}
		})
	}
}
