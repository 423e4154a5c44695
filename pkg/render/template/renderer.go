package template

import (
	"io"
	"strings"
)

// TemplateRenderer is the seam engines plug into. Every render method returns
// the output and also copies it to each writer in out.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}

// WriteAll copies rendered to every writer, stopping at the first failure.
func WriteAll(rendered string, out ...io.Writer) error {
	for _, w := range out {
		if w == nil {
			continue
		}
		if _, err := io.WriteString(w, rendered); err != nil {
			return err
		}
	}
	return nil
}

// IsTemplateContent reports whether name looks like inline template source
// rather than a template name.
func IsTemplateContent(name string) bool {
	return strings.Contains(name, "{{") || strings.Contains(name, "{%")
}
