package minitemplate

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-minitemplate/pkg/minitemplate"
	"github.com/goliatone/go-minitemplate/pkg/render"
	"github.com/goliatone/go-minitemplate/pkg/sitegen"
)

// Issue aliases minitemplate.Issue for callers linting templates from the
// top-level module.
type Issue = minitemplate.Issue

// EngineConfig aliases render.EngineConfig.
type EngineConfig = render.EngineConfig

// Report aliases sitegen.Report.
type Report = sitegen.Report

// Render expands template against data. It never fails.
func Render(template string, data any) string {
	return minitemplate.Render(template, data)
}

// EscapeHTML escapes & < > " ' ` and = for safe inclusion in HTML.
func EscapeHTML(s string) string {
	return minitemplate.EscapeHTML(s)
}

// Lint reports malformed constructs Render would degrade silently.
func Lint(template string) []Issue {
	return minitemplate.Lint(template)
}

// NewRegistry exposes the default engine registry from the top-level module.
func NewRegistry(cfg EngineConfig) (*render.Registry, error) {
	return render.NewDefaultRegistry(cfg)
}

// BuildSite renders every template in src into outDir with the built-in
// engine. It is the simplest entry point for static site generation.
func BuildSite(ctx context.Context, src fs.FS, outDir string, data map[string]any, options ...sitegen.Option) (Report, error) {
	registry, err := render.NewDefaultRegistry(EngineConfig{})
	if err != nil {
		return Report{}, err
	}
	engine, err := registry.Get(render.EngineMini)
	if err != nil {
		return Report{}, err
	}

	opts := append([]sitegen.Option{sitegen.WithOutputDir(outDir)}, options...)
	builder, err := sitegen.New(engine, opts...)
	if err != nil {
		return Report{}, err
	}
	return builder.Build(ctx, src, data)
}
