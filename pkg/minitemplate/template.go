package minitemplate

import "strings"

// Render expands template against data. It never fails; see the package
// documentation for how malformed input degrades.
func Render(template string, data any) string {
	var out strings.Builder
	out.Grow(len(template))
	render(&out, template, data)
	return out.String()
}

func render(out *strings.Builder, src string, data any) {
	pos := 0
	for pos < len(src) {
		t, ok := findTag(src, pos)
		if !ok {
			out.WriteString(src[pos:])
			return
		}

		if t.open > 0 && src[t.open-1] == '\\' {
			out.WriteString(src[pos : t.open-1])
			out.WriteString(src[t.open:t.end()])
			pos = t.end()
			continue
		}

		out.WriteString(src[pos:t.open])
		pos = t.end()

		if b, ok := parseBlock(t.text); ok {
			body, end := extractBlock(src, pos, b.kind)
			switch b.kind {
			case blockEach:
				renderEach(out, b.expr, body, data)
			case blockIf:
				renderIf(out, b.expr, body, data)
			}
			pos = end
			continue
		}

		if isStructural(t.text) {
			continue
		}

		renderValue(out, t, data)
	}
}

func renderEach(out *strings.Builder, expr, body string, data any) {
	value, _ := Resolve(data, expr)
	items, ok := sequence(value)
	if !ok {
		return
	}
	for i, item := range items {
		render(out, body, childContext(data, item, i))
	}
}

func renderIf(out *strings.Builder, expr, body string, data any) {
	truthyPart, falsyPart := splitElse(body)
	value, _ := Resolve(data, expr)
	if truthy(value) {
		render(out, truthyPart, data)
		return
	}
	render(out, falsyPart, data)
}

func renderValue(out *strings.Builder, t tag, data any) {
	value, ok := Resolve(data, t.text)
	if !ok {
		return
	}
	text := display(value)
	if t.raw {
		out.WriteString(text)
		return
	}
	out.WriteString(EscapeHTML(text))
}
