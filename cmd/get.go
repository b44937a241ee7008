package cmd

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/spf13/cobra"

	"github.com/wmhints/wmctl/internal/hints"
	"github.com/wmhints/wmctl/internal/output"
)

var getCmd = &cobra.Command{
	Use:   "get <property>",
	Short: "Read any supported hint by name",
	Long: `Read any supported hint by its protocol name, e.g. _NET_WM_STATE or
_NET_CURRENT_DESKTOP. Root window hints need no target; per-window hints
take --id or --title. Use --list to print every supported hint with its
value kind and write mechanism.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)
	getCmd.Flags().String("id", "", "Target window id (decimal or 0x hex)")
	getCmd.Flags().String("title", "", "Target window by title substring")
	getCmd.Flags().Bool("list", false, "List supported hints instead of reading one")
	getCmd.Flags().Bool("pretty", false, "Pretty-print JSON output")
}

// descriptorEntry is one row of `wmctl get --list`.
type descriptorEntry struct {
	Name      string `yaml:"name"      json:"name"`
	Kind      string `yaml:"kind"      json:"kind"`
	Type      string `yaml:"type"      json:"type"`
	Mechanism string `yaml:"mechanism" json:"mechanism"`
}

func runGet(cmd *cobra.Command, args []string) error {
	if list, _ := cmd.Flags().GetBool("list"); list {
		descs := hints.Descriptors()
		entries := make([]descriptorEntry, len(descs))
		for i, d := range descs {
			entries[i] = descriptorEntry{
				Name:      d.Name,
				Kind:      d.Kind.String(),
				Type:      d.Type,
				Mechanism: d.Mech.String(),
			}
		}
		return output.Print(entries)
	}

	if len(args) != 1 {
		return fmt.Errorf("property name required (or --list)")
	}
	name := args[0]
	if _, err := hints.Lookup(name); err != nil {
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

	v, err := client.Accessor().Read(win, name)
	if err != nil {
		return err
	}
	return output.Print(renderValue(v))
}

// renderValue flattens a typed hint value into plain output data.
func renderValue(v hints.Value) any {
	switch val := v.(type) {
	case hints.Cardinal:
		return uint32(val)
	case hints.CardinalList:
		return []uint32(val)
	case hints.Window:
		return windowIDString(xproto.Window(val))
	case hints.WindowList:
		ids := make([]string, len(val))
		for i, w := range val {
			ids[i] = windowIDString(w)
		}
		return ids
	case hints.Atom:
		if val.Name != "" {
			return val.Name
		}
		return fmt.Sprintf("atom %d", val.ID)
	case hints.AtomList:
		return val.Names()
	case hints.UTF8:
		return string(val)
	case hints.UTF8List:
		return []string(val)
	default:
		return fmt.Sprintf("%v", v)
	}
}
