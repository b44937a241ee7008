package cmd

import (
	"fmt"
	"strconv"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/spf13/cobra"

	"github.com/wmhints/wmctl/internal/hints"
)

var setCmd = &cobra.Command{
	Use:   "set <property> [value]...",
	Short: "Write any supported hint by name",
	Long: `Write any supported hint by its protocol name. Each hint goes through
the mechanism the protocol mandates for it: a direct property replace, or
a request message to the window manager carrying the --source indication.
Read-only hints are refused before anything touches the wire.

Values are parsed by the hint's kind: cardinals as numbers, atoms by
name, strings verbatim. _NET_WM_STATE takes an action verb and up to two
state atoms:

  wmctl set _NET_WM_STATE --title editor add _NET_WM_STATE_MAXIMIZED_VERT _NET_WM_STATE_MAXIMIZED_HORZ`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSet,
}

func init() {
	rootCmd.AddCommand(setCmd)
	setCmd.Flags().String("id", "", "Target window id (decimal or 0x hex)")
	setCmd.Flags().String("title", "", "Target window by title substring")
	setCmd.Flags().String("source", "user", "Source indication: user, app")
}

func runSet(cmd *cobra.Command, args []string) error {
	name := args[0]
	values := args[1:]

	d, err := hints.Lookup(name)
	if err != nil {
		return err
	}
	sourceFlag, _ := cmd.Flags().GetString("source")
	source, err := hints.ParseSource(sourceFlag)
	if err != nil {
		return err
	}
	id, _ := cmd.Flags().GetString("id")
	title, _ := cmd.Flags().GetString("title")

	conn, client, err := connect()
	if err != nil {
		return err
	}
	defer conn.Close()

	win := client.Root()
	if id != "" || title != "" {
		if win, err = resolveWindow(client, id, title); err != nil {
			return err
		}
	}

	if d.Verb {
		return setStateRequest(client, win, source, values)
	}

	v, err := parseValue(d, win, values)
	if err != nil {
		return err
	}
	return client.Accessor().Write(win, name, v, source)
}

// setStateRequest handles _NET_WM_STATE, whose message carries an action
// verb instead of a replacement value.
func setStateRequest(client *hints.Client, win xproto.Window, source hints.Source, values []string) error {
	if len(values) < 2 || len(values) > 3 {
		return fmt.Errorf("_NET_WM_STATE takes an action (add, remove, toggle) and one or two state atoms")
	}
	var action hints.StateAction
	switch values[0] {
	case "add":
		action = hints.StateAdd
	case "remove":
		action = hints.StateRemove
	case "toggle":
		action = hints.StateToggle
	default:
		return fmt.Errorf("unknown state action %q (expected add, remove or toggle)", values[0])
	}
	second := ""
	if len(values) == 3 {
		second = values[2]
	}
	return client.ChangeWindowState(win, action, source, values[1], second)
}

// parseValue builds a typed value from CLI arguments according to the
// hint's kind.
func parseValue(d *hints.Descriptor, win xproto.Window, values []string) (hints.Value, error) {
	switch d.Kind {
	case hints.KindCardinal:
		if len(values) != 1 {
			return nil, fmt.Errorf("%s takes exactly one numeric value", d.Name)
		}
		n, err := strconv.ParseUint(values[0], 0, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q for %s: %w", values[0], d.Name, err)
		}
		return hints.Cardinal(n), nil
	case hints.KindCardinalList:
		if len(values) == 0 {
			return nil, fmt.Errorf("%s takes one or more numeric values", d.Name)
		}
		list := make(hints.CardinalList, len(values))
		for i, s := range values {
			n, err := strconv.ParseUint(s, 0, 32)
			if err != nil {
				return nil, fmt.Errorf("invalid value %q for %s: %w", s, d.Name, err)
			}
			list[i] = uint32(n)
		}
		return list, nil
	case hints.KindWindow:
		// The target window is the value; the accessor puts it in the
		// message's window field.
		if len(values) != 0 {
			return nil, fmt.Errorf("%s takes no value arguments; the target window is the value", d.Name)
		}
		return hints.Window(win), nil
	case hints.KindUTF8:
		if len(values) != 1 {
			return nil, fmt.Errorf("%s takes exactly one string value", d.Name)
		}
		return hints.UTF8(values[0]), nil
	case hints.KindUTF8List:
		if len(values) == 0 {
			return nil, fmt.Errorf("%s takes one or more string values", d.Name)
		}
		return hints.UTF8List(values), nil
	case hints.KindAtom:
		if len(values) != 1 {
			return nil, fmt.Errorf("%s takes exactly one atom name", d.Name)
		}
		return hints.Atom{Name: values[0]}, nil
	case hints.KindAtomList:
		if len(values) == 0 {
			return nil, fmt.Errorf("%s takes one or more atom names", d.Name)
		}
		list := make(hints.AtomList, len(values))
		for i, s := range values {
			list[i] = hints.Atom{Name: s}
		}
		return list, nil
	default:
		return nil, fmt.Errorf("%s: cannot build a %s value from the command line", d.Name, d.Kind)
	}
}
