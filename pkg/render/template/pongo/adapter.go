package pongo

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"reflect"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-minitemplate/pkg/data"
	"github.com/goliatone/go-minitemplate/pkg/render/template"
)

// Option configures the pongo2 adapter before construction.
type Option func(*config)

type config struct {
	baseDir    string
	templates  fs.FS
	extension  string
	filters    map[string]pongo2.FilterFunction
	globalData map[string]any
}

// WithBaseDir loads templates from a base directory on disk.
func WithBaseDir(dir string) Option {
	return func(cfg *config) {
		cfg.baseDir = strings.TrimSpace(dir)
	}
}

// WithFS loads templates from an fs.FS.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templates = files
	}
}

// WithExtension overrides the extension appended to template names.
func WithExtension(ext string) Option {
	return func(cfg *config) {
		trimmed := strings.TrimSpace(ext)
		if trimmed == "" {
			return
		}
		if !strings.HasPrefix(trimmed, ".") {
			trimmed = "." + trimmed
		}
		cfg.extension = trimmed
	}
}

// WithFilters registers pongo2 filters when the engine is built. Filters
// that already exist are left alone.
func WithFilters(filters map[string]pongo2.FilterFunction) Option {
	return func(cfg *config) {
		if len(filters) == 0 {
			return
		}
		if cfg.filters == nil {
			cfg.filters = make(map[string]pongo2.FilterFunction, len(filters))
		}
		for name, fn := range filters {
			cfg.filters[strings.TrimSpace(name)] = fn
		}
	}
}

// WithGlobalData seeds global context values available to every template.
func WithGlobalData(values map[string]any) Option {
	return func(cfg *config) {
		if len(values) == 0 {
			return
		}
		if cfg.globalData == nil {
			cfg.globalData = make(map[string]any, len(values))
		}
		for key, value := range values {
			cfg.globalData[strings.TrimSpace(key)] = value
		}
	}
}

// Engine satisfies template.TemplateRenderer with a pongo2 template set. It
// exists so the same data can be rendered through an established engine
// with Django syntax for comparison.
type Engine struct {
	mu sync.RWMutex

	templateSet *pongo2.TemplateSet
	tplExt      string
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New constructs an Engine. Without a loader only RenderString works.
func New(options ...Option) (*Engine, error) {
	cfg := &config{
		extension: ".tpl",
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	var loaders []pongo2.TemplateLoader
	if cfg.baseDir != "" {
		loader, err := pongo2.NewLocalFileSystemLoader(cfg.baseDir)
		if err != nil {
			return nil, fmt.Errorf("pongo: create local loader: %w", err)
		}
		loaders = append(loaders, loader)
	}
	if cfg.templates != nil {
		loaders = append(loaders, pongo2.NewFSLoader(cfg.templates))
	}
	if len(loaders) == 0 {
		loaders = append(loaders, pongo2.MustNewLocalFileSystemLoader(""))
	}

	engine := &Engine{
		templateSet: pongo2.NewSet("minitemplate", loaders...),
		tplExt:      cfg.extension,
	}

	for name, fn := range cfg.filters {
		if name == "" || fn == nil || pongo2.FilterExists(name) {
			continue
		}
		if err := pongo2.RegisterFilter(name, fn); err != nil {
			return nil, fmt.Errorf("pongo: register filter %q: %w", name, err)
		}
	}

	if err := engine.GlobalContext(cfg.globalData); err != nil {
		return nil, fmt.Errorf("pongo: apply global data: %w", err)
	}
	return engine, nil
}

// Render treats name as inline content when it contains tag delimiters.
func (e *Engine) Render(name string, data any, out ...io.Writer) (string, error) {
	if template.IsTemplateContent(name) {
		return e.RenderString(name, data, out...)
	}
	return e.RenderTemplate(name, data, out...)
}

// RenderTemplate loads and executes a named template.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.templateSet == nil {
		return "", errors.New("pongo: engine is nil")
	}
	templatePath := strings.TrimPrefix(strings.TrimSpace(name), "/")
	if !strings.HasSuffix(templatePath, e.tplExt) {
		templatePath += e.tplExt
	}

	tmpl, err := e.templateSet.FromFile(templatePath)
	if err != nil {
		return "", fmt.Errorf("pongo: load template %q: %w", templatePath, err)
	}
	return e.execute(tmpl, data, fmt.Sprintf("template %q", templatePath), out...)
}

// RenderString parses and executes templateContent.
func (e *Engine) RenderString(templateContent string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.templateSet == nil {
		return "", errors.New("pongo: engine is nil")
	}

	tmpl, err := e.templateSet.FromString(templateContent)
	if err != nil {
		return "", fmt.Errorf("pongo: parse template string: %w", err)
	}
	return e.execute(tmpl, data, "template string", out...)
}

func (e *Engine) execute(tmpl *pongo2.Template, values any, label string, out ...io.Writer) (string, error) {
	viewContext, err := toContext(values)
	if err != nil {
		return "", fmt.Errorf("pongo: convert data: %w", err)
	}

	var buf bytes.Buffer

	e.mu.RLock()
	err = tmpl.ExecuteWriter(viewContext, &buf)
	e.mu.RUnlock()

	if err != nil {
		return "", fmt.Errorf("pongo: execute %s: %w", label, err)
	}

	rendered := buf.String()
	if err := template.WriteAll(rendered, out...); err != nil {
		return "", err
	}
	return rendered, nil
}

// RegisterFilter adapts a plain function into a pongo2 filter. Filters are
// global to pongo2, so registering an existing name fails.
func (e *Engine) RegisterFilter(name string, fn func(input any, param any) (any, error)) error {
	if strings.TrimSpace(name) == "" || fn == nil {
		return errors.New("pongo: filter name and function required")
	}

	filter := func(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		var paramVal any
		if param != nil {
			paramVal = param.Interface()
		}
		result, err := fn(in.Interface(), paramVal)
		if err != nil {
			return nil, &pongo2.Error{Sender: "custom_filter", OrigError: err}
		}
		return pongo2.AsValue(result), nil
	}

	if pongo2.FilterExists(name) {
		return fmt.Errorf("pongo: filter %q already exists", name)
	}
	return pongo2.RegisterFilter(name, filter)
}

// GlobalContext seeds global data on the template set.
func (e *Engine) GlobalContext(values any) error {
	if e == nil || e.templateSet == nil {
		return errors.New("pongo: engine is nil")
	}
	if values == nil {
		return nil
	}

	globalCtx, err := toContext(values)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.templateSet.Globals == nil {
		e.templateSet.Globals = make(pongo2.Context)
	}
	e.templateSet.Globals.Update(globalCtx)
	return nil
}

func toContext(values any) (pongo2.Context, error) {
	if ctx, ok := values.(pongo2.Context); ok {
		values = map[string]any(ctx)
	}
	if isNilValue(values) {
		return pongo2.Context{}, nil
	}
	normalized, err := data.Normalize(values)
	if err != nil {
		return nil, err
	}
	return pongo2.Context(normalized), nil
}

func isNilValue(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
