package errors

import (
	"strings"
	"testing"
)

func TestValidatePersistentID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "explorer", false},
		{"valid with dash", "output-panel", false},
		{"valid with dot", "editor.main", false},
		{"valid with space inside", "tool panel", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", MaxIdentifierLength+1), true},
		{"slash", "tools/explorer", true},
		{"backslash", "tools\\explorer", true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
		{"leading space", " explorer", true},
		{"trailing space", "explorer ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePersistentID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePersistentID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidDockable) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidDockable)
			}
		})
	}
}

func TestValidateLayoutName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", "default", false},
		{"valid with dash", "debug-layout", false},
		{"hidden", ".secret", true},
		{"empty", "", true},
		{"path", "../escape", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLayoutName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLayoutName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidLayout) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidLayout)
			}
		})
	}
}
