package rules

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/cabinetry/pkg/errors"
)

// envelope is the object form of a rule file: {"rules": [...]}.
type envelope struct {
	Rules []Rule `json:"rules"`
}

// Decode parses a JSON rule set. Both a bare array of rules and an object
// with a "rules" array are accepted.
func Decode(data []byte) ([]Rule, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "empty rule file")
	}
	if data[0] == '[' {
		var rs []Rule
		if err := json.Unmarshal(data, &rs); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode rules")
		}
		return rs, nil
	}
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode rules")
	}
	return env.Rules, nil
}

// Encode renders rules as the indented JSON array the rule editor imports.
func Encode(rs []Rule) ([]byte, error) {
	if rs == nil {
		rs = []Rule{}
	}
	return json.MarshalIndent(rs, "", "  ")
}

// ReadFile loads a rule set, choosing the codec by file extension
// (.json, .yaml, .yml or .toml).
func ReadFile(path string) ([]Rule, error) {
	if err := errors.ValidateRuleFilePath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	switch ext(path) {
	case ".yaml", ".yml":
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse %s", path)
		}
		data, err = json.Marshal(doc)
	case ".toml":
		var doc map[string]any
		if _, err := toml.Decode(string(data), &doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse %s", path)
		}
		data, err = json.Marshal(doc)
	}
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", path, err)
	}

	rs, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rs, nil
}

// WriteFile stores a rule set, choosing the codec by file extension.
// YAML files hold a bare list; TOML files hold a [[rules]] table array since
// TOML has no top-level arrays.
func WriteFile(path string, rs []Rule) error {
	if err := errors.ValidateRuleFilePath(path); err != nil {
		return err
	}
	data, err := Encode(rs)
	if err != nil {
		return fmt.Errorf("encode rules: %w", err)
	}

	switch ext(path) {
	case ".yaml", ".yml":
		var doc any
		if err := json.Unmarshal(data, &doc); err != nil {
			return err
		}
		if data, err = yaml.Marshal(doc); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
	case ".toml":
		var list []any
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(map[string]any{"rules": list}); err != nil {
			return fmt.Errorf("encode toml: %w", err)
		}
		data = buf.Bytes()
	default:
		data = append(data, '\n')
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func ext(path string) string {
	return strings.ToLower(filepath.Ext(path))
}
