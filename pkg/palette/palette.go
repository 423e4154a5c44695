package palette

import (
	_ "embed"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	theme "github.com/goliatone/go-theme"
)

const (
	baseTone       = "500"
	darkTextColor  = "var(--color-black)"
	lightTextColor = "var(--color-white)"
)

//go:embed palette.tpl
var defaultTemplate string

// Template returns the built-in swatch page template.
func Template() string {
	return defaultTemplate
}

// Color describes one palette row. An empty entry in Shades renders as a
// spacer. Tones at or above DarkFrom get dark text.
type Color struct {
	Name     string   `json:"name" yaml:"name"`
	Shades   []string `json:"shades" yaml:"shades"`
	DarkFrom int      `json:"darkFrom" yaml:"darkFrom"`
}

// Palette is the template data for one colour row.
type Palette struct {
	Name   string  `json:"name"`
	Shades []Shade `json:"shades"`
}

// Shade is the template data for one swatch.
type Shade struct {
	IsSpacer   bool   `json:"isSpacer"`
	Label      string `json:"label,omitempty"`
	Tone       string `json:"tone,omitempty"`
	CSSVar     string `json:"cssVar,omitempty"`
	DisplayHex string `json:"displayHex,omitempty"`
	TextColor  string `json:"textColor,omitempty"`
	Classes    string `json:"classes,omitempty"`
}

// Lookup resolves a CSS custom property name such as
// "--color-amber-gold-500" to its value.
type Lookup func(cssVar string) string

var whitespace = regexp.MustCompile(`\s+`)

// Slug lowercases name and joins whitespace-separated words with hyphens.
func Slug(name string) string {
	return whitespace.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
}

// CSSVar returns the custom property holding a colour's tone.
func CSSVar(name, tone string) string {
	return fmt.Sprintf("--color-%s-%s", Slug(name), tone)
}

// Build derives palette rows from colours. A nil lookup leaves DisplayHex
// empty.
func Build(colors []Color, lookup Lookup) []Palette {
	out := make([]Palette, 0, len(colors))
	for _, color := range colors {
		row := Palette{
			Name:   color.Name,
			Shades: make([]Shade, 0, len(color.Shades)),
		}
		for _, tone := range color.Shades {
			row.Shades = append(row.Shades, buildShade(color, strings.TrimSpace(tone), lookup))
		}
		out = append(out, row)
	}
	return out
}

func buildShade(color Color, tone string, lookup Lookup) Shade {
	if tone == "" {
		return Shade{IsSpacer: true}
	}

	cssVar := CSSVar(color.Name, tone)
	shade := Shade{
		Tone:      tone,
		CSSVar:    cssVar,
		TextColor: textColor(tone, color.DarkFrom),
		Classes:   "shade",
	}
	if lookup != nil {
		shade.DisplayHex = strings.ToUpper(strings.TrimSpace(lookup(cssVar)))
	}
	if tone == baseTone {
		shade.Label = color.Name
		shade.Classes = "shade shade--base"
	}
	return shade
}

func textColor(tone string, darkFrom int) string {
	n, err := strconv.Atoi(tone)
	if err == nil && n >= darkFrom {
		return darkTextColor
	}
	return lightTextColor
}

// TokenLookup resolves custom properties from a token map. Keys may be
// written with or without the leading "--".
func TokenLookup(tokens map[string]string) Lookup {
	return func(cssVar string) string {
		if value, ok := tokens[cssVar]; ok {
			return value
		}
		return tokens[strings.TrimPrefix(cssVar, "--")]
	}
}

// FromManifest builds palettes using a theme manifest's tokens as the
// lookup. When variant is set its tokens override the base tokens.
func FromManifest(manifest *theme.Manifest, variant string, colors []Color) ([]Palette, error) {
	if manifest == nil {
		return nil, errors.New("palette: manifest is required")
	}

	tokens := make(map[string]string, len(manifest.Tokens))
	for key, value := range manifest.Tokens {
		tokens[key] = value
	}

	if variant = strings.TrimSpace(variant); variant != "" {
		v, ok := manifest.Variants[variant]
		if !ok {
			return nil, fmt.Errorf("palette: theme %q has no variant %q", manifest.Name, variant)
		}
		for key, value := range v.Tokens {
			tokens[key] = value
		}
	}

	return Build(colors, TokenLookup(tokens)), nil
}

// Context wraps palettes in the map shape the built-in template expects.
func Context(palettes []Palette) map[string]any {
	return map[string]any{"palettes": palettes}
}

// DefaultColors returns the stock palette definitions.
func DefaultColors() []Color {
	full := []string{"100", "200", "300", "400", "500", "600", "700", "800", "900"}
	return []Color{
		{Name: "Pacific Cyan", Shades: full, DarkFrom: 600},
		{Name: "Bubblegum Pink", Shades: full, DarkFrom: 600},
		{Name: "Amber Gold", Shades: full, DarkFrom: 500},
		{Name: "Deep Space Blue", Shades: []string{"", "", "300", "400", "500", "600", "700", "800", "900"}, DarkFrom: 600},
		{Name: "Tropical Mint", Shades: []string{"100", "200", "300", "400", "500", "600", "700", "", ""}, DarkFrom: 500},
	}
}
