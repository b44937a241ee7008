package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wmhints/wmctl/internal/hints"
)

var activateCmd = &cobra.Command{
	Use:   "activate",
	Short: "Ask the window manager to activate a window",
	Long: `Ask the window manager to activate (focus, raise, unshade) a window.

Activation is requested with a root window message, never by writing
_NET_ACTIVE_WINDOW. The --source flag tells the window manager who is
asking: "user" for direct user action (the default for a command line
tool), "app" for automated requests, which focus stealing prevention may
downgrade to a demand for attention.`,
	RunE: runActivate,
}

func init() {
	rootCmd.AddCommand(activateCmd)
	activateCmd.Flags().String("id", "", "Target window id (decimal or 0x hex)")
	activateCmd.Flags().String("title", "", "Target window by title substring")
	activateCmd.Flags().String("source", "user", "Source indication: user, app")
}

func runActivate(cmd *cobra.Command, args []string) error {
	id, _ := cmd.Flags().GetString("id")
	title, _ := cmd.Flags().GetString("title")
	sourceFlag, _ := cmd.Flags().GetString("source")

	source, err := hints.ParseSource(sourceFlag)
	if err != nil {
		return err
	}

	conn, client, err := connect()
	if err != nil {
		return err
	}
	defer conn.Close()

	win, err := resolveWindow(client, id, title)
	if err != nil {
		return err
	}
	if err := client.Activate(win, source); err != nil {
		return fmt.Errorf("failed to activate window %s: %w", windowIDString(win), err)
	}
	return nil
}
