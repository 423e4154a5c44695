package sitegen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/natefinch/atomic"

	"github.com/goliatone/go-minitemplate/pkg/render/template"
)

var defaultExtensions = []string{".html", ".tpl", ".tmpl"}

// Option configures a Builder.
type Option func(*Builder)

// WithOutputDir sets the directory pages are written to.
func WithOutputDir(dir string) Option {
	return func(b *Builder) {
		b.outDir = strings.TrimSpace(dir)
	}
}

// WithExtensions replaces the set of extensions treated as templates.
func WithExtensions(exts ...string) Option {
	return func(b *Builder) {
		if len(exts) == 0 {
			return
		}
		b.exts = make(map[string]struct{}, len(exts))
		for _, ext := range exts {
			ext = strings.ToLower(strings.TrimSpace(ext))
			if ext == "" {
				continue
			}
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			b.exts[ext] = struct{}{}
		}
	}
}

// WithSourceDir names the directory on disk that the source fs.FS was opened
// from. When the output directory lies inside it, Build skips that subtree so
// earlier output is never treated as source.
func WithSourceDir(dir string) Option {
	return func(b *Builder) {
		b.srcDir = strings.TrimSpace(dir)
	}
}

// WithLogger sets the logger used for per-file progress.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// Builder renders source trees. It is safe to reuse across builds.
type Builder struct {
	engine template.TemplateRenderer
	outDir string
	srcDir string
	skip   string
	exts   map[string]struct{}
	logger *slog.Logger
}

// Report summarises a build.
type Report struct {
	Rendered int
	Copied   int
	Bytes    int64
	Files    []string
}

// Summary formats the report for humans.
func (r Report) Summary() string {
	return fmt.Sprintf("%d rendered, %d copied, %s written", r.Rendered, r.Copied, humanize.Bytes(uint64(r.Bytes)))
}

// New constructs a Builder around engine.
func New(engine template.TemplateRenderer, options ...Option) (*Builder, error) {
	if engine == nil {
		return nil, errors.New("sitegen: engine is required")
	}
	b := &Builder{
		engine: engine,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	WithExtensions(defaultExtensions...)(b)
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(b)
	}
	if b.outDir == "" {
		return nil, errors.New("sitegen: output directory is required")
	}
	if b.srcDir != "" {
		skip, err := nestedOutput(b.srcDir, b.outDir)
		if err != nil {
			return nil, err
		}
		b.skip = skip
	}
	return b, nil
}

// nestedOutput returns the slash-separated path of outDir relative to srcDir
// when outDir lies inside srcDir, and "" otherwise.
func nestedOutput(srcDir, outDir string) (string, error) {
	src, err := filepath.Abs(srcDir)
	if err != nil {
		return "", fmt.Errorf("sitegen: resolve source dir: %w", err)
	}
	out, err := filepath.Abs(outDir)
	if err != nil {
		return "", fmt.Errorf("sitegen: resolve output dir: %w", err)
	}
	rel, err := filepath.Rel(src, out)
	if err != nil {
		return "", nil
	}
	if rel == "." {
		return "", fmt.Errorf("sitegen: output directory %s is the source directory", outDir)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", nil
	}
	return filepath.ToSlash(rel), nil
}

// Build walks src, rendering templates with data and copying everything else
// into the output directory. Hidden files and directories are skipped. The
// walk stops at the first error or when ctx is cancelled.
func (b *Builder) Build(ctx context.Context, src fs.FS, data any) (Report, error) {
	var report Report
	if src == nil {
		return report, errors.New("sitegen: source filesystem is required")
	}

	err := fs.WalkDir(src, ".", func(name string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if name != "." && strings.HasPrefix(entry.Name(), ".") {
			if entry.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if entry.IsDir() {
			if b.skip != "" && name == b.skip {
				return fs.SkipDir
			}
			return nil
		}

		raw, err := fs.ReadFile(src, name)
		if err != nil {
			return fmt.Errorf("sitegen: read %s: %w", name, err)
		}

		target, isTemplate := b.outputName(name)
		payload := raw
		if isTemplate {
			rendered, err := b.engine.RenderString(string(raw), data)
			if err != nil {
				return fmt.Errorf("sitegen: render %s: %w", name, err)
			}
			payload = []byte(rendered)
		}

		dest := filepath.Join(b.outDir, filepath.FromSlash(target))
		if err := writeFile(dest, payload); err != nil {
			return err
		}

		if isTemplate {
			report.Rendered++
		} else {
			report.Copied++
		}
		report.Bytes += int64(len(payload))
		report.Files = append(report.Files, target)

		b.logger.DebugContext(ctx, "wrote file",
			slog.String("source", name),
			slog.String("target", target),
			slog.Bool("rendered", isTemplate),
			slog.String("size", humanize.Bytes(uint64(len(payload)))),
		)
		return nil
	})
	if err != nil {
		return report, err
	}

	b.logger.InfoContext(ctx, "site built", slog.String("out", b.outDir), slog.String("summary", report.Summary()))
	return report, nil
}

// outputName maps a source path to its output path. .tpl and .tmpl files
// lose their extension and become .html unless an inner extension remains
// (feed.xml.tpl becomes feed.xml).
func (b *Builder) outputName(name string) (string, bool) {
	ext := strings.ToLower(path.Ext(name))
	if _, ok := b.exts[ext]; !ok {
		return name, false
	}
	if ext == ".html" || ext == ".htm" {
		return name, true
	}
	trimmed := strings.TrimSuffix(name, path.Ext(name))
	if path.Ext(trimmed) == "" {
		trimmed += ".html"
	}
	return trimmed, true
}

func writeFile(dest string, payload []byte) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("sitegen: mkdir %s: %w", filepath.Dir(dest), err)
	}
	if err := atomic.WriteFile(dest, bytes.NewReader(payload)); err != nil {
		return fmt.Errorf("sitegen: write %s: %w", dest, err)
	}
	return nil
}
