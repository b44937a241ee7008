package hints

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/wmhints/wmctl/internal/x11"
)

// Client wraps the accessor with typed operations for the hints the window
// manager publishes on the root window and the per-window hints clients set
// on their own windows.
type Client struct {
	a    *Accessor
	root xproto.Window
}

// NewClient builds a client over a connection. The connection stays owned by
// the caller and must outlive the client.
func NewClient(conn x11.Conn) *Client {
	return &Client{a: NewAccessor(conn), root: conn.Root()}
}

// Accessor returns the underlying property accessor for raw reads/writes.
func (c *Client) Accessor() *Accessor { return c.a }

// Root returns the root window of the connected screen.
func (c *Client) Root() xproto.Window { return c.root }

// Geometry is a width/height pair of cardinals.
type Geometry struct {
	Width  uint32 `yaml:"width"  json:"width"`
	Height uint32 `yaml:"height" json:"height"`
}

// Viewport is a top-left corner of a desktop's viewport.
type Viewport struct {
	X uint32 `yaml:"x" json:"x"`
	Y uint32 `yaml:"y" json:"y"`
}

// WorkArea is the usable geometry of one desktop, excluding docks and
// panels.
type WorkArea struct {
	X      uint32 `yaml:"x"      json:"x"`
	Y      uint32 `yaml:"y"      json:"y"`
	Width  uint32 `yaml:"width"  json:"width"`
	Height uint32 `yaml:"height" json:"height"`
}

// Layout mirrors _NET_DESKTOP_LAYOUT: how a pager arranges virtual desktops.
type Layout struct {
	Orientation uint32 `yaml:"orientation" json:"orientation"` // 0 horizontal, 1 vertical
	Columns     uint32 `yaml:"columns"     json:"columns"`
	Rows        uint32 `yaml:"rows"        json:"rows"`
	Corner      uint32 `yaml:"corner"      json:"corner"` // 0 TL, 1 TR, 2 BR, 3 BL
}

// StateAction is the verb of a _NET_WM_STATE request.
type StateAction uint32

const (
	StateRemove StateAction = 0
	StateAdd    StateAction = 1
	StateToggle StateAction = 2
)

// Supported returns the hint names the window manager advertises in
// _NET_SUPPORTED. Unresolvable atoms are skipped.
func (c *Client) Supported() ([]string, error) {
	v, err := c.a.Read(c.root, "_NET_SUPPORTED")
	if err != nil {
		return nil, err
	}
	return v.(AtomList).Names(), nil
}

// ClientList returns all managed windows in initial mapping order.
func (c *Client) ClientList() ([]xproto.Window, error) {
	return c.windowList("_NET_CLIENT_LIST")
}

// ClientListStacking returns all managed windows in bottom-to-top stacking
// order.
func (c *Client) ClientListStacking() ([]xproto.Window, error) {
	return c.windowList("_NET_CLIENT_LIST_STACKING")
}

func (c *Client) windowList(name string) ([]xproto.Window, error) {
	v, err := c.a.Read(c.root, name)
	if err != nil {
		return nil, err
	}
	return []xproto.Window(v.(WindowList)), nil
}

// NumberOfDesktops reads _NET_NUMBER_OF_DESKTOPS.
func (c *Client) NumberOfDesktops() (uint32, error) {
	return c.rootCardinal("_NET_NUMBER_OF_DESKTOPS")
}

// RequestNumberOfDesktops asks the window manager to grow or shrink the set
// of virtual desktops. The window manager is free to refuse.
func (c *Client) RequestNumberOfDesktops(n uint32) error {
	return c.a.Write(c.root, "_NET_NUMBER_OF_DESKTOPS", Cardinal(n), SourceUnset)
}

// DesktopGeometry reads the common size of all desktops.
func (c *Client) DesktopGeometry() (Geometry, error) {
	v, err := c.a.Read(c.root, "_NET_DESKTOP_GEOMETRY")
	if err != nil {
		return Geometry{}, err
	}
	vals := v.(CardinalList)
	if len(vals) < 2 {
		return Geometry{}, fmt.Errorf("_NET_DESKTOP_GEOMETRY: got %d values, want 2", len(vals))
	}
	return Geometry{Width: vals[0], Height: vals[1]}, nil
}

// RequestDesktopGeometry asks for a new common desktop size.
func (c *Client) RequestDesktopGeometry(g Geometry) error {
	return c.a.Write(c.root, "_NET_DESKTOP_GEOMETRY", CardinalList{g.Width, g.Height}, SourceUnset)
}

// DesktopViewports reads the top-left viewport corner of each desktop.
func (c *Client) DesktopViewports() ([]Viewport, error) {
	v, err := c.a.Read(c.root, "_NET_DESKTOP_VIEWPORT")
	if err != nil {
		return nil, err
	}
	vals := v.(CardinalList)
	out := make([]Viewport, 0, len(vals)/2)
	for i := 0; i+1 < len(vals); i += 2 {
		out = append(out, Viewport{X: vals[i], Y: vals[i+1]})
	}
	return out, nil
}

// RequestViewport asks to move the current desktop's viewport.
func (c *Client) RequestViewport(v Viewport) error {
	return c.a.Write(c.root, "_NET_DESKTOP_VIEWPORT", CardinalList{v.X, v.Y}, SourceUnset)
}

// CurrentDesktop reads the index of the current desktop.
func (c *Client) CurrentDesktop() (uint32, error) {
	return c.rootCardinal("_NET_CURRENT_DESKTOP")
}

// SwitchDesktop asks the window manager to switch to the desktop at index n.
func (c *Client) SwitchDesktop(n uint32) error {
	return c.a.Write(c.root, "_NET_CURRENT_DESKTOP", Cardinal(n), SourceUnset)
}

// DesktopNames reads the virtual desktop names. The list may be shorter or
// longer than the number of desktops; excess names are reserved.
func (c *Client) DesktopNames() ([]string, error) {
	v, err := c.a.Read(c.root, "_NET_DESKTOP_NAMES")
	if err != nil {
		return nil, err
	}
	return []string(v.(UTF8List)), nil
}

// SetDesktopNames replaces the desktop name list. This is a direct write;
// any pager may perform it.
func (c *Client) SetDesktopNames(names []string) error {
	return c.a.Write(c.root, "_NET_DESKTOP_NAMES", UTF8List(names), SourceUnset)
}

// ActiveWindow reads _NET_ACTIVE_WINDOW. A zero window means nothing has
// focus.
func (c *Client) ActiveWindow() (xproto.Window, error) {
	v, err := c.a.Read(c.root, "_NET_ACTIVE_WINDOW")
	if err != nil {
		return 0, err
	}
	return xproto.Window(v.(Window)), nil
}

// Activate asks the window manager to activate win. The source indication
// is mandatory; window managers use it to arbitrate between applications
// and user-driven tools, and may refuse either.
func (c *Client) Activate(win xproto.Window, source Source) error {
	// Slots after the source carry timestamp and requestor window;
	// zero means "current time" and "none".
	return c.a.Request(win, "_NET_ACTIVE_WINDOW", source, 0, 0)
}

// WorkAreas reads the usable area of each desktop.
func (c *Client) WorkAreas() ([]WorkArea, error) {
	v, err := c.a.Read(c.root, "_NET_WORKAREA")
	if err != nil {
		return nil, err
	}
	vals := v.(CardinalList)
	out := make([]WorkArea, 0, len(vals)/4)
	for i := 0; i+3 < len(vals); i += 4 {
		out = append(out, WorkArea{X: vals[i], Y: vals[i+1], Width: vals[i+2], Height: vals[i+3]})
	}
	return out, nil
}

// SupportingWMCheck returns the child window a compliant window manager
// creates to prove it is alive.
func (c *Client) SupportingWMCheck() (xproto.Window, error) {
	v, err := c.a.Read(c.root, "_NET_SUPPORTING_WM_CHECK")
	if err != nil {
		return 0, err
	}
	return xproto.Window(v.(Window)), nil
}

// WMName identifies the running window manager: the _NET_WM_NAME of the
// supporting WM check window. An empty name with nil error never occurs;
// missing pieces surface as ErrPropertyAbsent.
func (c *Client) WMName() (string, error) {
	check, err := c.SupportingWMCheck()
	if err != nil {
		return "", err
	}
	return c.WindowName(check)
}

// VirtualRoots reads the virtual root windows of window managers that
// reparent clients to implement desktops.
func (c *Client) VirtualRoots() ([]xproto.Window, error) {
	return c.windowList("_NET_VIRTUAL_ROOTS")
}

// DesktopLayout reads the pager's desktop layout.
func (c *Client) DesktopLayout() (Layout, error) {
	v, err := c.a.Read(c.root, "_NET_DESKTOP_LAYOUT")
	if err != nil {
		return Layout{}, err
	}
	vals := v.(CardinalList)
	// Pagers following an early draft publish only three values; the
	// starting corner then defaults to top-left.
	if len(vals) < 3 {
		return Layout{}, fmt.Errorf("_NET_DESKTOP_LAYOUT: got %d values, want at least 3", len(vals))
	}
	l := Layout{Orientation: vals[0], Columns: vals[1], Rows: vals[2]}
	if len(vals) > 3 {
		l.Corner = vals[3]
	}
	return l, nil
}

// SetDesktopLayout publishes the pager's desktop layout. Direct write: this
// property is owned by the pager, not the window manager.
func (c *Client) SetDesktopLayout(l Layout) error {
	vals := CardinalList{l.Orientation, l.Columns, l.Rows, l.Corner}
	return c.a.Write(c.root, "_NET_DESKTOP_LAYOUT", vals, SourceUnset)
}

// ShowingDesktop reports whether the window manager is in "showing the
// desktop" mode.
func (c *Client) ShowingDesktop() (bool, error) {
	n, err := c.rootCardinal("_NET_SHOWING_DESKTOP")
	if err != nil {
		return false, err
	}
	return n != 0, nil
}

// RequestShowingDesktop asks to enter or leave "showing the desktop" mode.
func (c *Client) RequestShowingDesktop(on bool) error {
	var v Cardinal
	if on {
		v = 1
	}
	return c.a.Write(c.root, "_NET_SHOWING_DESKTOP", v, SourceUnset)
}

// CloseWindow asks the window manager to close win. Unlike a bare
// WM_DELETE_WINDOW message this works for windows whose process is hung.
func (c *Client) CloseWindow(win xproto.Window, source Source) error {
	// Slot before the source carries the timestamp; zero is current time.
	return c.a.Request(win, "_NET_CLOSE_WINDOW", source, 0)
}

// WindowName reads a window's _NET_WM_NAME.
func (c *Client) WindowName(win xproto.Window) (string, error) {
	v, err := c.a.Read(win, "_NET_WM_NAME")
	if err != nil {
		return "", err
	}
	return string(v.(UTF8)), nil
}

// SetWindowName sets a window's _NET_WM_NAME. Direct write: a window's name
// belongs to its own client.
func (c *Client) SetWindowName(win xproto.Window, name string) error {
	return c.a.Write(win, "_NET_WM_NAME", UTF8(name), SourceUnset)
}

// WindowIconName reads a window's _NET_WM_ICON_NAME.
func (c *Client) WindowIconName(win xproto.Window) (string, error) {
	v, err := c.a.Read(win, "_NET_WM_ICON_NAME")
	if err != nil {
		return "", err
	}
	return string(v.(UTF8)), nil
}

// WindowDesktop reads the desktop a window sits on. 0xFFFFFFFF means the
// window appears on all desktops.
func (c *Client) WindowDesktop(win xproto.Window) (uint32, error) {
	v, err := c.a.Read(win, "_NET_WM_DESKTOP")
	if err != nil {
		return 0, err
	}
	return uint32(v.(Cardinal)), nil
}

// RequestWindowDesktop asks the window manager to move a mapped window to
// another desktop.
func (c *Client) RequestWindowDesktop(win xproto.Window, desktop uint32, source Source) error {
	return c.a.Request(win, "_NET_WM_DESKTOP", source, desktop)
}

// WindowType reads a window's _NET_WM_WINDOW_TYPE hint names, in preference
// order.
func (c *Client) WindowType(win xproto.Window) ([]string, error) {
	return c.atomNames(win, "_NET_WM_WINDOW_TYPE")
}

// WindowState reads the _NET_WM_STATE atoms currently set on a window.
func (c *Client) WindowState(win xproto.Window) ([]string, error) {
	return c.atomNames(win, "_NET_WM_STATE")
}

// ChangeWindowState asks the window manager to add, remove or toggle up to
// two state atoms on a window (two so that paired states like
// horizontal/vertical maximization change atomically).
func (c *Client) ChangeWindowState(win xproto.Window, action StateAction, source Source, first string, second string) error {
	a1, err := c.a.Conn().Atom(first)
	if err != nil {
		return err
	}
	var a2 xproto.Atom
	if second != "" {
		if a2, err = c.a.Conn().Atom(second); err != nil {
			return err
		}
	}
	return c.a.Request(win, "_NET_WM_STATE", source, uint32(action), uint32(a1), uint32(a2))
}

// WindowPID reads the process id a window advertises.
func (c *Client) WindowPID(win xproto.Window) (uint32, error) {
	v, err := c.a.Read(win, "_NET_WM_PID")
	if err != nil {
		return 0, err
	}
	return uint32(v.(Cardinal)), nil
}

func (c *Client) atomNames(win xproto.Window, name string) ([]string, error) {
	v, err := c.a.Read(win, name)
	if err != nil {
		return nil, err
	}
	return v.(AtomList).Names(), nil
}

func (c *Client) rootCardinal(name string) (uint32, error) {
	v, err := c.a.Read(c.root, name)
	if err != nil {
		return 0, err
	}
	return uint32(v.(Cardinal)), nil
}
