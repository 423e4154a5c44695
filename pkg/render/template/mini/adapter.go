package mini

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-minitemplate/pkg/data"
	"github.com/goliatone/go-minitemplate/pkg/minitemplate"
	"github.com/goliatone/go-minitemplate/pkg/render/template"
)

// ErrFiltersUnsupported is returned by RegisterFilter; the engine has no
// helper or filter mechanism.
var ErrFiltersUnsupported = errors.New("mini: filters are not supported")

// Option configures the engine before construction.
type Option func(*config)

type config struct {
	baseDir    string
	templates  fs.FS
	extension  string
	globalData map[string]any
	sanitizer  *bluemonday.Policy
}

// WithBaseDir loads named templates from a directory on disk.
func WithBaseDir(dir string) Option {
	return func(cfg *config) {
		cfg.baseDir = strings.TrimSpace(dir)
	}
}

// WithFS loads named templates from an fs.FS. When combined with WithBaseDir
// the directory is searched first.
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

// WithGlobalData seeds values visible to every render. Call data wins over
// globals with the same key.
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

// WithSanitizer passes every rendered document through policy. Use it when
// raw {{{ }}} tags may carry untrusted markup.
func WithSanitizer(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		cfg.sanitizer = policy
	}
}

// Engine satisfies template.TemplateRenderer with the minitemplate engine.
// Named templates are read on every call; nothing is cached.
type Engine struct {
	mu sync.RWMutex

	sources   []fs.FS
	ext       string
	globals   map[string]any
	sanitizer *bluemonday.Policy
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New constructs an Engine. Without WithBaseDir or WithFS only RenderString
// and inline content passed to Render are available.
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

	engine := &Engine{
		ext:       cfg.extension,
		sanitizer: cfg.sanitizer,
	}
	if cfg.baseDir != "" {
		info, err := os.Stat(cfg.baseDir)
		if err != nil {
			return nil, fmt.Errorf("mini: base dir: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("mini: base dir %s is not a directory", cfg.baseDir)
		}
		engine.sources = append(engine.sources, os.DirFS(cfg.baseDir))
	}
	if cfg.templates != nil {
		engine.sources = append(engine.sources, cfg.templates)
	}

	if err := engine.GlobalContext(cfg.globalData); err != nil {
		return nil, fmt.Errorf("mini: apply global data: %w", err)
	}
	return engine, nil
}

// Render treats name as inline template content when it contains tag
// delimiters and as a template name otherwise.
func (e *Engine) Render(name string, data any, out ...io.Writer) (string, error) {
	if template.IsTemplateContent(name) {
		return e.RenderString(name, data, out...)
	}
	return e.RenderTemplate(name, data, out...)
}

// RenderTemplate loads the named template and renders it.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	if e == nil {
		return "", errors.New("mini: engine is nil")
	}
	content, err := e.load(name)
	if err != nil {
		return "", err
	}
	return e.RenderString(content, data, out...)
}

// RenderString renders templateContent against data layered over the global
// context.
func (e *Engine) RenderString(templateContent string, data any, out ...io.Writer) (string, error) {
	if e == nil {
		return "", errors.New("mini: engine is nil")
	}

	rendered := minitemplate.Render(templateContent, e.viewContext(data))
	if e.sanitizer != nil {
		rendered = e.sanitizer.Sanitize(rendered)
	}

	if err := template.WriteAll(rendered, out...); err != nil {
		return "", err
	}
	return rendered, nil
}

// RegisterFilter always fails with ErrFiltersUnsupported.
func (e *Engine) RegisterFilter(name string, _ func(input any, param any) (any, error)) error {
	return fmt.Errorf("%w: %q", ErrFiltersUnsupported, name)
}

// GlobalContext merges the properties of values into the data visible to
// every render. values must be a map or struct.
func (e *Engine) GlobalContext(values any) error {
	if e == nil {
		return errors.New("mini: engine is nil")
	}
	if values == nil {
		return nil
	}

	props := minitemplate.Fields(values)
	if props == nil {
		return fmt.Errorf("mini: global data must be a map or struct, got %T", values)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.globals = data.Merge(e.globals, props)
	return nil
}

// viewContext layers call data over the globals. Values are taken as the
// engine resolves them, so a struct renders the same with or without
// globals configured. Call data without properties only sees the globals.
func (e *Engine) viewContext(values any) any {
	e.mu.RLock()
	globals := e.globals
	e.mu.RUnlock()

	if len(globals) == 0 {
		return values
	}
	return data.Merge(globals, minitemplate.Fields(values))
}

func (e *Engine) load(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", errors.New("mini: template name is required")
	}
	if len(e.sources) == 0 {
		return "", fmt.Errorf("mini: cannot load %q: no template directory or fs.FS configured", trimmed)
	}

	path := strings.TrimPrefix(trimmed, "/")
	if !strings.HasSuffix(path, e.ext) {
		path += e.ext
	}

	var lastErr error
	for _, source := range e.sources {
		raw, err := fs.ReadFile(source, path)
		if err == nil {
			return string(raw), nil
		}
		lastErr = err
	}
	return "", fmt.Errorf("mini: load template %q: %w", path, lastErr)
}
