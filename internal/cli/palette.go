package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-minitemplate/pkg/palette"
	"github.com/goliatone/go-minitemplate/pkg/render/template/mini"
)

type paletteOptions struct {
	theme   string
	variant string
	output  string
	asJSON  bool
}

func (a *App) paletteCommand() *cobra.Command {
	opts := &paletteOptions{}

	cmd := &cobra.Command{
		Use:   "palette",
		Short: "Render the colour palette page",
		Long: "Render the built-in swatch page for the stock colours, or for the colours and tokens " +
			"declared in a --theme file.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			palettes := palette.Build(palette.DefaultColors(), nil)
			if opts.theme != "" {
				manifest, colors, err := palette.LoadTheme(opts.theme)
				if err != nil {
					return err
				}
				palettes, err = palette.FromManifest(manifest, opts.variant, colors)
				if err != nil {
					return err
				}
			}

			if opts.asJSON {
				payload, err := json.MarshalIndent(palette.Context(palettes), "", "  ")
				if err != nil {
					return err
				}
				return emit(cmd.OutOrStdout(), opts.output, string(payload)+"\n")
			}

			engine, err := mini.New()
			if err != nil {
				return err
			}
			rendered, err := engine.RenderString(palette.Template(), palette.Context(palettes))
			if err != nil {
				return err
			}
			return emit(cmd.OutOrStdout(), opts.output, rendered)
		},
	}

	cmd.Flags().StringVar(&opts.theme, "theme", "", "Theme file (YAML) with tokens, variants, and colours")
	cmd.Flags().StringVar(&opts.variant, "variant", "", "Theme variant whose tokens override the base tokens")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output file (stdout if empty)")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "Print the palette data instead of rendering it")
	return cmd
}
