package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-minitemplate/internal/prompt"
	"github.com/goliatone/go-minitemplate/pkg/render"
)

type renderOptions struct {
	contextFlags

	engine      string
	dir         string
	ext         string
	inline      string
	output      string
	sanitize    bool
	interactive bool
}

func (a *App) renderCommand() *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render [template-file]",
		Short: "Render one template",
		Long: "Render a template file, an --inline template, a template picked from --dir with --interactive, " +
			"or a template read from stdin when none of those is given.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRender(cmd, opts, args)
		},
	}

	opts.contextFlags.register(cmd)
	cmd.Flags().StringVar(&opts.engine, "engine", render.EngineMini, "Template engine. One of: "+render.EngineMini+"|"+render.EnginePongo)
	cmd.Flags().StringVar(&opts.dir, "dir", "", "Template directory used by --interactive")
	cmd.Flags().StringVar(&opts.ext, "ext", ".tpl", "Template extension listed by --interactive")
	cmd.Flags().StringVar(&opts.inline, "inline", "", "Template source given on the command line")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output file (stdout if empty)")
	cmd.Flags().BoolVar(&opts.sanitize, "sanitize", false, "Sanitize the rendered markup (minitemplate engine only)")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "Pick the template and output path interactively")
	return cmd
}

func (a *App) runRender(cmd *cobra.Command, opts *renderOptions, args []string) error {
	ctx := cmd.Context()

	values, err := opts.load()
	if err != nil {
		return err
	}

	registry, err := render.NewDefaultRegistry(render.EngineConfig{
		BaseDir:   opts.dir,
		Extension: opts.ext,
		Sanitize:  opts.sanitize,
	})
	if err != nil {
		return err
	}
	engine, err := registry.Get(opts.engine)
	if err != nil {
		return err
	}

	var rendered string
	switch {
	case opts.inline != "":
		rendered, err = engine.RenderString(opts.inline, values)
	case len(args) == 1:
		var raw []byte
		raw, err = os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read template: %w", err)
		}
		rendered, err = engine.RenderString(string(raw), values)
	case opts.interactive:
		var name string
		name, err = a.pickTemplate(cmd, opts)
		if err != nil {
			return err
		}
		rendered, err = engine.RenderTemplate(name, values)
	default:
		var raw []byte
		raw, err = io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read template from stdin: %w", err)
		}
		rendered, err = engine.RenderString(string(raw), values)
	}
	if err != nil {
		return err
	}

	output := opts.output
	if opts.interactive && output == "" {
		output, err = a.Prompt.Input(ctx, prompt.InputConfig{
			Message: "Output file (blank for stdout)",
		})
		if err != nil {
			return err
		}
		output = strings.TrimSpace(output)
		if output != "" {
			if _, statErr := os.Stat(output); statErr == nil {
				overwrite, err := a.Prompt.Confirm(ctx, prompt.ConfirmConfig{
					Message: fmt.Sprintf("%s exists. Overwrite?", output),
				})
				if err != nil {
					return err
				}
				if !overwrite {
					return prompt.ErrAborted
				}
			}
		}
	}

	slog.Debug("rendered template", slog.String("engine", opts.engine), slog.Int("bytes", len(rendered)))
	return emit(cmd.OutOrStdout(), output, rendered)
}

func (a *App) pickTemplate(cmd *cobra.Command, opts *renderOptions) (string, error) {
	if opts.dir == "" {
		return "", errors.New("--interactive needs --dir")
	}
	names, err := listTemplates(opts.dir, opts.ext)
	if err != nil {
		return "", err
	}
	if len(names) == 0 {
		return "", fmt.Errorf("no %s templates in %s", opts.ext, opts.dir)
	}

	idx, err := a.Prompt.Select(cmd.Context(), prompt.SelectConfig{
		Message:  "Template",
		Options:  names,
		PageSize: 15,
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(names) {
		return "", fmt.Errorf("invalid template selection %d", idx)
	}
	return names[idx], nil
}

// listTemplates returns slash-separated paths of files under dir ending in
// ext, sorted.
func listTemplates(dir, ext string) ([]string, error) {
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	var names []string
	err := fs.WalkDir(os.DirFS(dir), ".", func(name string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || !strings.HasSuffix(name, ext) {
			return nil
		}
		names = append(names, filepath.ToSlash(name))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list templates in %s: %w", dir, err)
	}
	sort.Strings(names)
	return names, nil
}
