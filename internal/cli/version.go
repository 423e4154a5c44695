package cli

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type versionInfo struct {
	Version   string `json:"version" yaml:"version"`
	GoVersion string `json:"goVersion" yaml:"goVersion"`
	Platform  string `json:"platform" yaml:"platform"`
}

func (a *App) versionCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := versionInfo{
				Version:   Version,
				GoVersion: runtime.Version(),
				Platform:  runtime.GOOS + "/" + runtime.GOARCH,
			}
			out := cmd.OutOrStdout()

			switch output {
			case "json":
				payload, err := json.MarshalIndent(info, "", "  ")
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, string(payload))
				return err
			case "yaml":
				payload, err := yaml.Marshal(info)
				if err != nil {
					return err
				}
				_, err = fmt.Fprint(out, string(payload))
				return err
			case "short":
				_, err := fmt.Fprintf(out, "minitemplate %s\n", info.Version)
				return err
			case "":
				_, err := fmt.Fprintf(out, "minitemplate version: %s\nGo version: %s\nPlatform: %s\n", info.Version, info.GoVersion, info.Platform)
				return err
			default:
				return fmt.Errorf("unknown output format %q", output)
			}
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output format. One of: json|yaml|short")
	return cmd
}
