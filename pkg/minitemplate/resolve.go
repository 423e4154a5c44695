package minitemplate

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Reserved keys bound in every #each iteration scope.
const (
	ThisKey  = "this"
	IndexKey = "@index"
)

// Resolve looks up a dotted path such as "user.name" in data. Maps (keys of
// other types match on their fmt.Sprint form), structs (exported fields, honouring json tag names), and
// numeric indexes into slices are walked; pointers and interfaces are
// followed. The second result is false when any segment is missing or nil.
func Resolve(data any, expr string) (any, bool) {
	if expr == "" {
		return nil, false
	}
	if expr == ThisKey || expr == IndexKey {
		return lookup(data, expr)
	}

	current := data
	for _, segment := range strings.Split(expr, ".") {
		if isNil(current) {
			return nil, false
		}
		next, ok := lookup(current, segment)
		if !ok {
			return nil, false
		}
		current = next
	}

	if isNil(current) {
		return nil, false
	}
	return current, true
}

func lookup(data any, key string) (any, bool) {
	if m, ok := data.(map[string]any); ok {
		v, found := m[key]
		return v, found && !isNil(v)
	}

	rv := indirect(reflect.ValueOf(data))
	if !rv.IsValid() {
		return nil, false
	}

	var out reflect.Value
	switch rv.Kind() {
	case reflect.Map:
		out = mapIndex(rv, key)
	case reflect.Struct:
		out = structField(rv, key)
	case reflect.Slice, reflect.Array:
		idx, err := strconv.Atoi(key)
		if err != nil || idx < 0 || idx >= rv.Len() {
			return nil, false
		}
		out = rv.Index(idx)
	default:
		return nil, false
	}

	if !out.IsValid() || !out.CanInterface() {
		return nil, false
	}
	v := out.Interface()
	return v, !isNil(v)
}

// mapIndex finds key in a map value. String-kinded keys are indexed
// directly; interface keys try the string itself first, then any key whose
// fmt.Sprint form equals key.
func mapIndex(rv reflect.Value, key string) reflect.Value {
	keyType := rv.Type().Key()
	switch keyType.Kind() {
	case reflect.String:
		return rv.MapIndex(reflect.ValueOf(key).Convert(keyType))
	case reflect.Interface:
		if v := rv.MapIndex(reflect.ValueOf(key)); v.IsValid() {
			return v
		}
	}

	iter := rv.MapRange()
	for iter.Next() {
		if mapKey(iter.Key()) == key {
			return iter.Value()
		}
	}
	return reflect.Value{}
}

func mapKey(k reflect.Value) string {
	if k.Kind() == reflect.String {
		return k.String()
	}
	if !k.CanInterface() {
		return ""
	}
	return fmt.Sprint(k.Interface())
}

func structField(rv reflect.Value, key string) reflect.Value {
	for _, f := range reflect.VisibleFields(rv.Type()) {
		if !f.IsExported() || f.Anonymous {
			continue
		}
		if fieldName(f) != key {
			continue
		}
		v, err := rv.FieldByIndexErr(f.Index)
		if err != nil {
			return reflect.Value{}
		}
		return v
	}
	return reflect.Value{}
}

func fieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "":
		return f.Name
	case "-":
		return ""
	default:
		return name
	}
}

// Fields returns the top-level properties of a mapping value the way Resolve
// sees them: map entries keyed by their string form and exported struct
// fields under their json names. Scalars and sequences have none and yield
// nil. A map[string]any is returned as is.
func Fields(data any) map[string]any {
	return fields(data)
}

func fields(data any) map[string]any {
	if m, ok := data.(map[string]any); ok {
		return m
	}

	rv := indirect(reflect.ValueOf(data))
	if !rv.IsValid() {
		return nil
	}

	switch rv.Kind() {
	case reflect.Map:
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			if !iter.Value().CanInterface() {
				continue
			}
			out[mapKey(iter.Key())] = iter.Value().Interface()
		}
		return out
	case reflect.Struct:
		out := make(map[string]any)
		for _, f := range reflect.VisibleFields(rv.Type()) {
			if !f.IsExported() || f.Anonymous {
				continue
			}
			name := fieldName(f)
			if name == "" {
				continue
			}
			if v, err := rv.FieldByIndexErr(f.Index); err == nil && v.CanInterface() {
				out[name] = v.Interface()
			}
		}
		return out
	default:
		return nil
	}
}

// childContext builds the scope for one #each iteration: the parent's
// properties, then the item's, then the reserved keys.
func childContext(parent, item any, index int) map[string]any {
	base := fields(parent)
	own := fields(item)

	out := make(map[string]any, len(base)+len(own)+2)
	for k, v := range base {
		out[k] = v
	}
	for k, v := range own {
		out[k] = v
	}
	out[ThisKey] = item
	out[IndexKey] = index
	return out
}

// sequence returns the elements of a slice or array. Byte slices are
// treated as scalars.
func sequence(data any) ([]any, bool) {
	if items, ok := data.([]any); ok {
		return items, true
	}

	rv := indirect(reflect.ValueOf(data))
	if !rv.IsValid() {
		return nil, false
	}
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	if rv.Type().Elem().Kind() == reflect.Uint8 {
		return nil, false
	}

	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return items, true
}

// truthy decides which #if branch renders. Empty collections are truthy;
// nil collections are not.
func truthy(data any) bool {
	switch v := data.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	}

	rv := reflect.ValueOf(data)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return false
		}
		return truthy(rv.Elem().Interface())
	case reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return !rv.IsNil()
	case reflect.Bool:
		return rv.Bool()
	case reflect.String:
		return rv.Len() > 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f != 0 && !math.IsNaN(f)
	default:
		return true
	}
}

func indirect(rv reflect.Value) reflect.Value {
	for rv.IsValid() && (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) {
		if rv.IsNil() {
			return reflect.Value{}
		}
		rv = rv.Elem()
	}
	return rv
}

func isNil(data any) bool {
	if data == nil {
		return true
	}
	rv := reflect.ValueOf(data)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
