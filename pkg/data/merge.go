package data

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Merge returns a new map holding base overlaid with each overlay in order.
// Nested maps are merged recursively; any other value replaces what was there.
// Inputs are not modified.
func Merge(base map[string]any, overlays ...map[string]any) map[string]any {
	out := make(map[string]any, len(base))
	for key, value := range base {
		out[key] = value
	}
	for _, overlay := range overlays {
		for key, value := range overlay {
			existing, okExisting := out[key].(map[string]any)
			incoming, okIncoming := value.(map[string]any)
			if okExisting && okIncoming {
				out[key] = Merge(existing, incoming)
				continue
			}
			out[key] = value
		}
	}
	return out
}

// ParseAssignments turns key=value pairs into a context. Dotted keys create
// nested maps ("site.title=Docs"). Values are decoded as YAML scalars, so
// "true", "3" and "[a, b]" become a bool, an int and a list; anything that
// does not decode stays a string.
func ParseAssignments(pairs []string) (map[string]any, error) {
	out := make(map[string]any)
	for _, pair := range pairs {
		key, raw, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("data: assignment %q must look like key=value", pair)
		}
		if err := assign(out, strings.Split(key, "."), scalar(raw)); err != nil {
			return nil, fmt.Errorf("data: assignment %q: %w", pair, err)
		}
	}
	return out, nil
}

func assign(target map[string]any, path []string, value any) error {
	for i, segment := range path {
		if segment == "" {
			return errors.New("empty key segment")
		}
		if i == len(path)-1 {
			target[segment] = value
			return nil
		}
		next, ok := target[segment].(map[string]any)
		if !ok {
			if _, exists := target[segment]; exists {
				return fmt.Errorf("%q is already set to a non-mapping value", segment)
			}
			next = make(map[string]any)
			target[segment] = next
		}
		target = next
	}
	return nil
}

func scalar(raw string) any {
	var value any
	if err := yaml.Unmarshal([]byte(raw), &value); err != nil || value == nil {
		return raw
	}
	if _, isMap := value.(map[string]any); isMap {
		return raw
	}
	return stringKeys(value)
}
