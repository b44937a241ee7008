package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/wmhints/wmctl/internal/hints"
	"github.com/wmhints/wmctl/internal/output"
)

var wmCmd = &cobra.Command{
	Use:   "wm",
	Short: "Identify the running window manager",
	Long: `Identify the running window manager through _NET_SUPPORTING_WM_CHECK
and list the hints it advertises in _NET_SUPPORTED.`,
	RunE: runWM,
}

func init() {
	rootCmd.AddCommand(wmCmd)
	wmCmd.Flags().Bool("supported", false, "Include the advertised hint list")
	wmCmd.Flags().Bool("pretty", false, "Pretty-print JSON output")
}

// wmInfo is the output of `wmctl wm`.
type wmInfo struct {
	Name        string   `yaml:"name"                json:"name"`
	CheckWindow string   `yaml:"check_window"        json:"check_window"`
	Supported   []string `yaml:"supported,omitempty" json:"supported,omitempty"`
}

func runWM(cmd *cobra.Command, args []string) error {
	conn, client, err := connect()
	if err != nil {
		return err
	}
	defer conn.Close()

	check, err := client.SupportingWMCheck()
	if err != nil {
		if errors.Is(err, hints.ErrPropertyAbsent) {
			return errors.New("no EWMH-compliant window manager is running")
		}
		return err
	}

	info := wmInfo{CheckWindow: windowIDString(check)}
	if info.Name, err = client.WMName(); err != nil && !errors.Is(err, hints.ErrPropertyAbsent) {
		return err
	}

	if includeSupported, _ := cmd.Flags().GetBool("supported"); includeSupported {
		if info.Supported, err = client.Supported(); err != nil && !errors.Is(err, hints.ErrPropertyAbsent) {
			return err
		}
	}
	return output.Print(info)
}
