package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/wmhints/wmctl/internal/hints"
	"github.com/wmhints/wmctl/internal/x11"
)

// connect opens the X connection and builds the hint client. The caller
// closes the connection.
func connect() (x11.Conn, *hints.Client, error) {
	conn, err := x11.Connect(displayOverride)
	if err != nil {
		return nil, nil, err
	}
	return conn, hints.NewClient(conn), nil
}

// parseWindowID accepts decimal and 0x-prefixed hexadecimal window ids.
func parseWindowID(s string) (xproto.Window, error) {
	id, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid window id %q: %w", s, err)
	}
	return xproto.Window(id), nil
}

// resolveWindow resolves the --id / --title flags to a single window.
// Titles match case-insensitively as substrings against the managed window
// list; ambiguous matches are an error so a typo cannot act on the wrong
// window.
func resolveWindow(client *hints.Client, id string, title string) (xproto.Window, error) {
	if id != "" {
		return parseWindowID(id)
	}
	if title == "" {
		return 0, fmt.Errorf("could not resolve target: specify --id or --title")
	}

	wins, err := client.ClientList()
	if err != nil {
		return 0, fmt.Errorf("failed to list windows: %w", err)
	}
	needle := strings.ToLower(title)
	var matches []xproto.Window
	var names []string
	for _, w := range wins {
		name, err := client.WindowName(w)
		if err != nil {
			if errors.Is(err, hints.ErrPropertyAbsent) {
				continue
			}
			return 0, err
		}
		if strings.Contains(strings.ToLower(name), needle) {
			matches = append(matches, w)
			names = append(names, name)
		}
	}
	switch len(matches) {
	case 0:
		return 0, fmt.Errorf("no window found matching title %q", title)
	case 1:
		return matches[0], nil
	default:
		return 0, fmt.Errorf("title %q matches %d windows (%s); use --id",
			title, len(matches), strings.Join(names, ", "))
	}
}

// windowIDString formats window ids the way X tools print them.
func windowIDString(w xproto.Window) string {
	return fmt.Sprintf("0x%08x", uint32(w))
}
