package cmd

import (
	"errors"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/spf13/cobra"

	"github.com/wmhints/wmctl/internal/hints"
	"github.com/wmhints/wmctl/internal/output"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List windows managed by the window manager",
	Long: `List managed windows with their id, title, desktop, and PID.

By default windows appear in initial mapping order (oldest first); with
--stacking they appear in bottom-to-top stacking order.`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().Bool("stacking", false, "List in bottom-to-top stacking order")
	listCmd.Flags().Int("desktop", -1, "Only windows on this desktop index")
	listCmd.Flags().Bool("pretty", false, "Pretty-print JSON output")
}

// windowEntry is one row of list output. Desktop is -1 for windows pinned
// to all desktops.
type windowEntry struct {
	ID      string `yaml:"id"                json:"id"`
	Title   string `yaml:"title"             json:"title"`
	Desktop int64  `yaml:"desktop"           json:"desktop"`
	PID     uint32 `yaml:"pid,omitempty"     json:"pid,omitempty"`
	Active  bool   `yaml:"active,omitempty"  json:"active,omitempty"`
}

func runList(cmd *cobra.Command, args []string) error {
	conn, client, err := connect()
	if err != nil {
		return err
	}
	defer conn.Close()

	stacking, _ := cmd.Flags().GetBool("stacking")
	desktopFilter, _ := cmd.Flags().GetInt("desktop")

	entries, err := listWindows(client, stacking)
	if err != nil {
		return err
	}
	if desktopFilter >= 0 {
		filtered := entries[:0:0]
		for _, e := range entries {
			if e.Desktop == int64(desktopFilter) {
				filtered = append(filtered, e)
			}
		}
		entries = filtered
	}
	return output.Print(entries)
}

// listWindows builds the window entries the list command and the MCP tools
// share. Windows missing optional hints stay in the list with zero values.
func listWindows(client *hints.Client, stacking bool) ([]windowEntry, error) {
	var wins []xproto.Window
	var err error
	if stacking {
		wins, err = client.ClientListStacking()
	} else {
		wins, err = client.ClientList()
	}
	if err != nil {
		return nil, err
	}

	active, err := client.ActiveWindow()
	if err != nil && !errors.Is(err, hints.ErrPropertyAbsent) {
		return nil, err
	}

	entries := make([]windowEntry, 0, len(wins))
	for _, w := range wins {
		entry := windowEntry{ID: windowIDString(w), Active: w == active && w != 0}

		if title, err := client.WindowName(w); err == nil {
			entry.Title = title
		} else if !errors.Is(err, hints.ErrPropertyAbsent) {
			return nil, err
		}

		entry.Desktop = -1
		if d, err := client.WindowDesktop(w); err == nil {
			if d != 0xFFFFFFFF {
				entry.Desktop = int64(d)
			}
		} else if !errors.Is(err, hints.ErrPropertyAbsent) {
			return nil, err
		}

		if pid, err := client.WindowPID(w); err == nil {
			entry.PID = pid
		} else if !errors.Is(err, hints.ErrPropertyAbsent) {
			return nil, err
		}

		entries = append(entries, entry)
	}
	return entries, nil
}
