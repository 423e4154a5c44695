package data

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFile reads a JSON or YAML document from disk and returns its top-level
// mapping.
func LoadFile(path string) (map[string]any, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("data: file path is required")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("data: read %s: %w", path, err)
	}
	return Parse(raw, path)
}

// LoadFS behaves like LoadFile but reads from an fs.FS.
func LoadFS(fsys fs.FS, path string) (map[string]any, error) {
	if fsys == nil {
		return nil, errors.New("data: filesystem is required")
	}
	raw, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("data: read %s: %w", path, err)
	}
	return Parse(raw, path)
}

// Parse decodes raw as JSON, falling back to YAML. The document must be a
// mapping. source only appears in error messages; a .json extension skips the
// YAML fallback so JSON syntax errors are reported as such.
func Parse(raw []byte, source string) (map[string]any, error) {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil, fmt.Errorf("data: file %s is empty", source)
	}

	var doc any
	jsonErr := json.Unmarshal(raw, &doc)
	if jsonErr != nil {
		if strings.EqualFold(filepath.Ext(source), ".json") {
			return nil, fmt.Errorf("data: parse %s: %w", source, jsonErr)
		}
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("data: parse %s: invalid JSON or YAML: %w", source, err)
		}
	}

	out, ok := stringKeys(doc).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("data: %s must contain a mapping at the top level, got %T", source, doc)
	}
	return out, nil
}

// stringKeys rewrites map[any]any produced by YAML into map[string]any so
// the result can be walked with string paths.
func stringKeys(value any) any {
	switch v := value.(type) {
	case map[string]any:
		for key, item := range v {
			v[key] = stringKeys(item)
		}
		return v
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[fmt.Sprint(key)] = stringKeys(item)
		}
		return out
	case []any:
		for i, item := range v {
			v[i] = stringKeys(item)
		}
		return v
	default:
		return value
	}
}
