package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// ValidateID validates an entity identifier (panel, component, rule, placement).
//
// Identifiers end up in gap placement ids ("gap-top-<panelId>"), cache keys
// and log lines, so the rules are conservative:
//   - No empty ids
//   - No control characters or whitespace
//   - Maximum length of 128 characters
func ValidateID(kind, id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "%s id cannot be empty", kind)
	}
	if len(id) > 128 {
		return New(ErrCodeInvalidInput, "%s id too long (max 128 characters)", kind)
	}
	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "%s id %q contains invalid characters", kind, id)
		}
	}
	return nil
}

// ruleFileExtensions lists the file extensions accepted for rule files.
var ruleFileExtensions = map[string]bool{
	".json": true,
	".yaml": true,
	".yml":  true,
	".toml": true,
}

// ValidateRuleFilePath validates a rule file path for import or export.
// It requires a known extension and rejects empty paths and null bytes.
func ValidateRuleFilePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}
	if strings.ContainsRune(path, '\x00') {
		return New(ErrCodeInvalidPath, "path contains invalid characters")
	}
	ext := strings.ToLower(filepath.Ext(path))
	if !ruleFileExtensions[ext] {
		return New(ErrCodeInvalidFormat, "unsupported rule file extension %q (must be .json, .yaml, .yml or .toml)", ext)
	}
	return nil
}
