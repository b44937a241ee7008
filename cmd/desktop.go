package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/wmhints/wmctl/internal/hints"
	"github.com/wmhints/wmctl/internal/output"
)

var desktopCmd = &cobra.Command{
	Use:   "desktop",
	Short: "Show and change virtual desktop state",
	Long: `Show virtual desktop state: count, current index, names, geometry,
viewports and work areas. Subcommands request changes; the window manager
may refuse any of them.`,
	RunE: runDesktop,
}

var desktopSwitchCmd = &cobra.Command{
	Use:   "switch <index>",
	Short: "Switch to another virtual desktop",
	Args:  cobra.ExactArgs(1),
	RunE:  runDesktopSwitch,
}

var desktopCountCmd = &cobra.Command{
	Use:   "count <n>",
	Short: "Request a new number of virtual desktops",
	Args:  cobra.ExactArgs(1),
	RunE:  runDesktopCount,
}

var desktopRenameCmd = &cobra.Command{
	Use:   "rename <name>...",
	Short: "Replace the desktop name list",
	Long: `Replace the full desktop name list. Names beyond the current number of
desktops stay reserved for desktops added later.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDesktopRename,
}

func init() {
	rootCmd.AddCommand(desktopCmd)
	desktopCmd.AddCommand(desktopSwitchCmd)
	desktopCmd.AddCommand(desktopCountCmd)
	desktopCmd.AddCommand(desktopRenameCmd)
	desktopCmd.Flags().Bool("pretty", false, "Pretty-print JSON output")
}

// desktopSummary is the output of `wmctl desktop`.
type desktopSummary struct {
	Count          uint32           `yaml:"count"                     json:"count"`
	Current        uint32           `yaml:"current"                   json:"current"`
	Names          []string         `yaml:"names,omitempty"           json:"names,omitempty"`
	Geometry       *hints.Geometry  `yaml:"geometry,omitempty"        json:"geometry,omitempty"`
	Viewports      []hints.Viewport `yaml:"viewports,omitempty"       json:"viewports,omitempty"`
	WorkAreas      []hints.WorkArea `yaml:"workareas,omitempty"       json:"workareas,omitempty"`
	Layout         *hints.Layout    `yaml:"layout,omitempty"          json:"layout,omitempty"`
	ShowingDesktop bool             `yaml:"showing_desktop,omitempty" json:"showing_desktop,omitempty"`
}

func runDesktop(cmd *cobra.Command, args []string) error {
	conn, client, err := connect()
	if err != nil {
		return err
	}
	defer conn.Close()

	var summary desktopSummary

	// Count and current index are mandatory per the protocol; everything
	// else is optional and skipped when the window manager does not
	// publish it.
	if summary.Count, err = client.NumberOfDesktops(); err != nil {
		return err
	}
	if summary.Current, err = client.CurrentDesktop(); err != nil {
		return err
	}

	if names, err := client.DesktopNames(); err == nil {
		summary.Names = names
	} else if !errors.Is(err, hints.ErrPropertyAbsent) {
		return err
	}
	if g, err := client.DesktopGeometry(); err == nil {
		summary.Geometry = &g
	} else if !errors.Is(err, hints.ErrPropertyAbsent) {
		return err
	}
	if vps, err := client.DesktopViewports(); err == nil {
		summary.Viewports = vps
	} else if !errors.Is(err, hints.ErrPropertyAbsent) {
		return err
	}
	if was, err := client.WorkAreas(); err == nil {
		summary.WorkAreas = was
	} else if !errors.Is(err, hints.ErrPropertyAbsent) {
		return err
	}
	if l, err := client.DesktopLayout(); err == nil {
		summary.Layout = &l
	} else if !errors.Is(err, hints.ErrPropertyAbsent) {
		return err
	}
	if on, err := client.ShowingDesktop(); err == nil {
		summary.ShowingDesktop = on
	} else if !errors.Is(err, hints.ErrPropertyAbsent) {
		return err
	}

	return output.Print(summary)
}

func runDesktopSwitch(cmd *cobra.Command, args []string) error {
	index, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		return fmt.Errorf("invalid desktop index %q: %w", args[0], err)
	}

	conn, client, err := connect()
	if err != nil {
		return err
	}
	defer conn.Close()

	count, err := client.NumberOfDesktops()
	if err != nil {
		return err
	}
	if uint32(index) >= count {
		return fmt.Errorf("desktop index %d out of range (have %d desktops)", index, count)
	}
	return client.SwitchDesktop(uint32(index))
}

func runDesktopCount(cmd *cobra.Command, args []string) error {
	n, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil || n == 0 {
		return fmt.Errorf("invalid desktop count %q", args[0])
	}

	conn, client, err := connect()
	if err != nil {
		return err
	}
	defer conn.Close()

	return client.RequestNumberOfDesktops(uint32(n))
}

func runDesktopRename(cmd *cobra.Command, args []string) error {
	conn, client, err := connect()
	if err != nil {
		return err
	}
	defer conn.Close()

	return client.SetDesktopNames(args)
}
