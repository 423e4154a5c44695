package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-minitemplate/internal/prompt"
	"github.com/goliatone/go-minitemplate/pkg/data"
)

// Version is stamped at build time with -ldflags "-X ...cli.Version=v1.2.3".
var Version = "dev"

// App holds the process streams and terminal driver commands use. Tests
// swap them for buffers and fakes.
type App struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Prompt prompt.Driver

	logLevel  string
	logFormat string
}

// NewApp returns an App bound to the process streams and a survey driver.
func NewApp() *App {
	return &App{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Prompt: prompt.NewSurveyDriver(),
	}
}

// Command builds the root command.
func (a *App) Command() *cobra.Command {
	root := &cobra.Command{
		Use:   "minitemplate",
		Short: "Render {{ mustache }} style templates for docs and static sites",
		Long: "minitemplate renders templates with {{ expr }}, {{{ raw }}}, {{#each}} and {{#if}} tags " +
			"against JSON or YAML data, one file at a time or as a whole site.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := a.newLogger()
			if err != nil {
				return err
			}
			slog.SetDefault(logger)
			return nil
		},
	}
	root.SetIn(a.Stdin)
	root.SetOut(a.Stdout)
	root.SetErr(a.Stderr)

	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "info", "Log level. One of: debug|info|warn|error")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "text", "Log format. One of: text|json")

	root.AddCommand(a.renderCommand())
	root.AddCommand(a.buildCommand())
	root.AddCommand(a.paletteCommand())
	root.AddCommand(a.versionCommand())
	return root
}

func (a *App) newLogger() (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(a.logLevel)); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", a.logLevel, err)
	}
	opts := &slog.HandlerOptions{Level: level}

	switch strings.ToLower(a.logFormat) {
	case "", "text":
		return slog.New(slog.NewTextHandler(a.Stderr, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(a.Stderr, opts)), nil
	default:
		return nil, fmt.Errorf("invalid --log-format %q: want text or json", a.logFormat)
	}
}

// contextFlags are the data flags shared by render and build.
type contextFlags struct {
	files []string
	sets  []string
}

func (f *contextFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&f.files, "data", "d", nil, "JSON or YAML data file; repeat to merge several in order")
	cmd.Flags().StringArrayVar(&f.sets, "set", nil, "Set a value, e.g. --set site.title=Docs; applied after data files")
}

func (f *contextFlags) load() (map[string]any, error) {
	ctx := map[string]any{}
	for _, file := range f.files {
		loaded, err := data.LoadFile(file)
		if err != nil {
			return nil, err
		}
		ctx = data.Merge(ctx, loaded)
	}
	if len(f.sets) > 0 {
		assigned, err := data.ParseAssignments(f.sets)
		if err != nil {
			return nil, err
		}
		ctx = data.Merge(ctx, assigned)
	}
	return ctx, nil
}
