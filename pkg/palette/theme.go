package palette

import (
	"errors"
	"fmt"
	"os"
	"strings"

	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"
)

// ThemeFile is the on-disk shape read by LoadTheme.
type ThemeFile struct {
	Name     string                       `yaml:"name"`
	Version  string                       `yaml:"version"`
	Tokens   map[string]string            `yaml:"tokens"`
	Variants map[string]map[string]string `yaml:"variants"`
	Colors   []Color                      `yaml:"colors"`
}

// LoadTheme reads a YAML (or JSON) theme file and returns the manifest and
// the colours it declares. Files without colours yield DefaultColors.
func LoadTheme(path string) (*theme.Manifest, []Color, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil, errors.New("palette: theme path is required")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("palette: read theme %s: %w", path, err)
	}
	return ParseTheme(raw, path)
}

// ParseTheme decodes a theme document. source only appears in errors.
func ParseTheme(raw []byte, source string) (*theme.Manifest, []Color, error) {
	var file ThemeFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, nil, fmt.Errorf("palette: parse theme %s: %w", source, err)
	}
	if strings.TrimSpace(file.Name) == "" {
		return nil, nil, fmt.Errorf("palette: theme %s has no name", source)
	}

	manifest := &theme.Manifest{
		Name:    file.Name,
		Version: file.Version,
		Tokens:  file.Tokens,
	}
	if len(file.Variants) > 0 {
		manifest.Variants = make(map[string]theme.Variant, len(file.Variants))
		for name, tokens := range file.Variants {
			manifest.Variants[name] = theme.Variant{Tokens: tokens}
		}
	}

	colors := file.Colors
	if len(colors) == 0 {
		colors = DefaultColors()
	}
	return manifest, colors, nil
}
