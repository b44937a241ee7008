package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/wmhints/wmctl/internal/hints"
	"github.com/wmhints/wmctl/internal/output"
)

var nameCmd = &cobra.Command{
	Use:   "name",
	Short: "Show or set a window's title",
	RunE:  runName,
}

var nameSetCmd = &cobra.Command{
	Use:   "set <title>",
	Short: "Set a window's _NET_WM_NAME",
	Long: `Set a window's _NET_WM_NAME with a direct property write. A window's
name belongs to its own client, so no window manager round trip is
involved; most toolkits will overwrite it on their next update.`,
	Args: cobra.ExactArgs(1),
	RunE: runNameSet,
}

func init() {
	rootCmd.AddCommand(nameCmd)
	nameCmd.AddCommand(nameSetCmd)
	nameCmd.PersistentFlags().String("id", "", "Target window id (decimal or 0x hex)")
	nameCmd.PersistentFlags().String("title", "", "Target window by title substring")
	nameCmd.Flags().Bool("pretty", false, "Pretty-print JSON output")
}

// nameInfo is the output of `wmctl name`.
type nameInfo struct {
	ID       string `yaml:"id"                  json:"id"`
	Name     string `yaml:"name"                json:"name"`
	IconName string `yaml:"icon_name,omitempty" json:"icon_name,omitempty"`
}

func runName(cmd *cobra.Command, args []string) error {
	id, _ := cmd.Flags().GetString("id")
	title, _ := cmd.Flags().GetString("title")

	conn, client, err := connect()
	if err != nil {
		return err
	}
	defer conn.Close()

	win, err := resolveWindow(client, id, title)
	if err != nil {
		return err
	}

	info := nameInfo{ID: windowIDString(win)}
	if info.Name, err = client.WindowName(win); err != nil && !errors.Is(err, hints.ErrPropertyAbsent) {
		return err
	}
	if icon, err := client.WindowIconName(win); err == nil {
		info.IconName = icon
	} else if !errors.Is(err, hints.ErrPropertyAbsent) {
		return err
	}
	return output.Print(info)
}

func runNameSet(cmd *cobra.Command, args []string) error {
	id, _ := cmd.Flags().GetString("id")
	title, _ := cmd.Flags().GetString("title")

	conn, client, err := connect()
	if err != nil {
		return err
	}
	defer conn.Close()

	win, err := resolveWindow(client, id, title)
	if err != nil {
		return err
	}
	return client.SetWindowName(win, args[0])
}
