package minitemplate

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

var htmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
	"`", "&#x60;",
	"=", "&#x3D;",
)

// EscapeHTML replaces the characters & < > " ' ` = with entity references.
func EscapeHTML(s string) string {
	return htmlReplacer.Replace(s)
}

// display converts a resolved value to the text substituted for a tag.
func display(data any) string {
	switch v := data.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case float64:
		return formatFloat(v, 64)
	case fmt.Stringer:
		return v.String()
	case error:
		return v.Error()
	}

	rv := reflect.ValueOf(data)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return ""
		}
		return display(rv.Elem().Interface())
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32:
		return formatFloat(rv.Float(), 32)
	case reflect.Float64:
		return formatFloat(rv.Float(), 64)
	}

	if items, ok := sequence(data); ok {
		parts := make([]string, len(items))
		for i, item := range items {
			parts[i] = display(item)
		}
		return strings.Join(parts, ",")
	}

	return fmt.Sprint(data)
}

// formatFloat prints integral floats without a fraction and switches to
// exponent notation only for very large or very small magnitudes. Exponents
// carry no zero padding and infinities print as Infinity.
func formatFloat(f float64, bits int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}

	abs := math.Abs(f)
	if abs >= 1e21 || (abs != 0 && abs < 1e-6) {
		s := strconv.FormatFloat(f, 'e', -1, bits)
		mantissa, exp, _ := strings.Cut(s, "e")
		sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
		return mantissa + "e" + sign + digits
	}
	return strconv.FormatFloat(f, 'f', -1, bits)
}
