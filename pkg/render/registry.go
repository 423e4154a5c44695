package render

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-minitemplate/pkg/render/template"
	"github.com/goliatone/go-minitemplate/pkg/render/template/mini"
	"github.com/goliatone/go-minitemplate/pkg/render/template/pongo"
)

// Engine names registered by NewDefaultRegistry.
const (
	EngineMini  = "minitemplate"
	EnginePongo = "pongo2"
)

// Registry stores template engines by name, providing discovery and
// duplication safeguards.
type Registry struct {
	mu      sync.RWMutex
	engines map[string]template.TemplateRenderer
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		engines: make(map[string]template.TemplateRenderer),
	}
}

// EngineConfig carries the options shared by every engine built by
// NewDefaultRegistry.
type EngineConfig struct {
	BaseDir    string
	Extension  string
	GlobalData map[string]any
	Sanitize   bool
}

// NewDefaultRegistry registers the minitemplate and pongo2 engines, both
// reading named templates from cfg.BaseDir when set.
func NewDefaultRegistry(cfg EngineConfig) (*Registry, error) {
	miniOpts := []mini.Option{
		mini.WithExtension(cfg.Extension),
		mini.WithGlobalData(cfg.GlobalData),
	}
	pongoOpts := []pongo.Option{
		pongo.WithExtension(cfg.Extension),
		pongo.WithGlobalData(cfg.GlobalData),
	}
	if dir := strings.TrimSpace(cfg.BaseDir); dir != "" {
		miniOpts = append(miniOpts, mini.WithBaseDir(dir))
		pongoOpts = append(pongoOpts, pongo.WithBaseDir(dir))
	}
	if cfg.Sanitize {
		miniOpts = append(miniOpts, mini.WithSanitizer(mini.MarkupPolicy()))
	}

	miniEngine, err := mini.New(miniOpts...)
	if err != nil {
		return nil, fmt.Errorf("render: build %s engine: %w", EngineMini, err)
	}
	pongoEngine, err := pongo.New(pongoOpts...)
	if err != nil {
		return nil, fmt.Errorf("render: build %s engine: %w", EnginePongo, err)
	}

	registry := NewRegistry()
	if err := registry.Register(EngineMini, miniEngine); err != nil {
		return nil, err
	}
	if err := registry.Register(EnginePongo, pongoEngine); err != nil {
		return nil, err
	}
	return registry, nil
}

// Register adds an engine under name. Duplicate names return an error.
func (r *Registry) Register(name string, engine template.TemplateRenderer) error {
	if engine == nil {
		return fmt.Errorf("render: engine is required")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("render: engine name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.engines[name]; exists {
		return fmt.Errorf("render: engine %q already registered", name)
	}

	r.engines[name] = engine
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(name string, engine template.TemplateRenderer) {
	if err := r.Register(name, engine); err != nil {
		panic(err)
	}
}

// Get retrieves an engine by name.
func (r *Registry) Get(name string) (template.TemplateRenderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	engine, ok := r.engines[name]
	if !ok {
		return nil, fmt.Errorf("render: engine %q not found (available: %s)", name, strings.Join(r.namesLocked(), ", "))
	}
	return engine, nil
}

// List returns a sorted list of engine names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.namesLocked()
}

// Has reports whether an engine is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.engines[name]
	return ok
}

func (r *Registry) namesLocked() []string {
	names := make([]string, 0, len(r.engines))
	for name := range r.engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
