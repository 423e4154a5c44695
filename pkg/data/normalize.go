package data

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// Normalize converts data into a plain map[string]any tree. Maps and slices
// are walked; structs and other values go through a JSON round trip so their
// json tags apply. Functions are kept as-is. Blank keys are dropped.
func Normalize(data any) (map[string]any, error) {
	switch v := data.(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		return normalizeMap(v)
	default:
		raw, err := jsonRoundTrip(v)
		if err != nil {
			return nil, fmt.Errorf("data: normalize %T: %w", data, err)
		}
		m, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("data: normalize %T: not a mapping", data)
		}
		return normalizeMap(m)
	}
}

func normalizeMap(in map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(in))
	for key, value := range in {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		converted, err := normalizeValue(value)
		if err != nil {
			return nil, fmt.Errorf("data: key %q: %w", key, err)
		}
		out[key] = converted
	}
	return out, nil
}

func normalizeValue(value any) (any, error) {
	if value == nil {
		return nil, nil
	}
	if reflect.ValueOf(value).Kind() == reflect.Func {
		return value, nil
	}

	switch v := value.(type) {
	case string, bool, float64, int, int64:
		return v, nil
	case map[string]any:
		return normalizeMap(v)
	case []any:
		out := make([]any, 0, len(v))
		for _, item := range v {
			converted, err := normalizeValue(item)
			if err != nil {
				return nil, err
			}
			out = append(out, converted)
		}
		return out, nil
	default:
		raw, err := jsonRoundTrip(v)
		if err != nil {
			return nil, err
		}
		return normalizeValue(raw)
	}
}

func jsonRoundTrip(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}
