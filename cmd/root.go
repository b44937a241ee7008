package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wmhints/wmctl/internal/config"
	"github.com/wmhints/wmctl/internal/output"
	"github.com/wmhints/wmctl/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "wmctl",
	Short: "Query and control EWMH-compliant window managers",
	Long: `A client for the Extended Window Manager Hints protocol on X11.

wmctl reads window manager state (windows, desktops, the active window) and
requests changes. State the protocol reserves to the window manager is
requested with root window messages carrying a source indication, never
written directly.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("format", "", "Output format: yaml, json")
	rootCmd.PersistentFlags().String("display", "", "X display to connect to (default: $DISPLAY)")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if cfg.Display != "" {
			displayOverride = cfg.Display
		}
		if flag, _ := rootCmd.PersistentFlags().GetString("display"); flag != "" {
			displayOverride = flag
		}

		format, _ := rootCmd.PersistentFlags().GetString("format")
		if format == "" {
			format = cfg.Format
		}
		if format == "" {
			format = defaultFormat(output.IsOutputPiped())
		}
		switch format {
		case "yaml":
			output.OutputFormat = output.FormatYAML
		case "json":
			output.OutputFormat = output.FormatJSON
		default:
			return fmt.Errorf("unsupported format: %s (use yaml or json)", format)
		}
		if prettyFlag := cmd.Flags().Lookup("pretty"); prettyFlag != nil {
			if pretty, err := cmd.Flags().GetBool("pretty"); err == nil && pretty {
				output.PrettyOutput = true
			}
		}
		return nil
	}
}

// defaultFormat picks the output format when neither flag nor config chose
// one: yaml on a terminal, json when stdout feeds another program.
func defaultFormat(piped bool) string {
	if piped {
		return "json"
	}
	return "yaml"
}

// displayOverride is the resolved X display, from config or --display.
var displayOverride string
