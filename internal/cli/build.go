package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-minitemplate/pkg/render"
	"github.com/goliatone/go-minitemplate/pkg/sitegen"
)

type buildOptions struct {
	contextFlags

	engine     string
	out        string
	extensions []string
}

func (a *App) buildCommand() *cobra.Command {
	opts := &buildOptions{}

	cmd := &cobra.Command{
		Use:   "build <source-dir>",
		Short: "Render a directory of templates into a static site",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := opts.load()
			if err != nil {
				return err
			}

			registry, err := render.NewDefaultRegistry(render.EngineConfig{})
			if err != nil {
				return err
			}
			engine, err := registry.Get(opts.engine)
			if err != nil {
				return err
			}

			builder, err := sitegen.New(engine,
				sitegen.WithOutputDir(opts.out),
				sitegen.WithSourceDir(args[0]),
				sitegen.WithExtensions(opts.extensions...),
				sitegen.WithLogger(slog.Default()),
			)
			if err != nil {
				return err
			}

			report, err := builder.Build(cmd.Context(), os.DirFS(args[0]), values)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), report.Summary())
			return err
		},
	}

	opts.contextFlags.register(cmd)
	cmd.Flags().StringVar(&opts.engine, "engine", render.EngineMini, "Template engine. One of: "+render.EngineMini+"|"+render.EnginePongo)
	cmd.Flags().StringVarP(&opts.out, "out", "o", "public", "Output directory")
	cmd.Flags().StringSliceVar(&opts.extensions, "ext", nil, "Extensions rendered as templates (default .html,.tpl,.tmpl)")
	return cmd
}
