package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wmhints/wmctl/internal/hints"
)

var closeCmd = &cobra.Command{
	Use:   "close",
	Short: "Ask the window manager to close a window",
	Long: `Ask the window manager to close a window via _NET_CLOSE_WINDOW.

The window manager handles the close, so this works even when the
window's own process is hung and would never answer WM_DELETE_WINDOW.`,
	RunE: runClose,
}

func init() {
	rootCmd.AddCommand(closeCmd)
	closeCmd.Flags().String("id", "", "Target window id (decimal or 0x hex)")
	closeCmd.Flags().String("title", "", "Target window by title substring")
	closeCmd.Flags().String("source", "user", "Source indication: user, app")
}

func runClose(cmd *cobra.Command, args []string) error {
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
	if err := client.CloseWindow(win, source); err != nil {
		return fmt.Errorf("failed to close window %s: %w", windowIDString(win), err)
	}
	return nil
}
