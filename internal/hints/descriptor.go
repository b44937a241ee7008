package hints

import "sort"

// Mech is the write mechanism a property's descriptor mandates.
type Mech int

const (
	// ReadOnly properties are set by the window manager; clients only read.
	ReadOnly Mech = iota
	// Direct properties may be replaced by any client with a plain
	// ChangeProperty request (e.g. a window's own name).
	Direct
	// Message properties belong to the window manager. Changing one is a
	// request: a client message to the root window that the window manager
	// may honor, deny or reorder. Writing such a property directly is the
	// classic client bug this table exists to rule out.
	Message
)

func (m Mech) String() string {
	switch m {
	case Direct:
		return "direct"
	case Message:
		return "message"
	default:
		return "read-only"
	}
}

// Descriptor is the static metadata for one property. The table below is the
// single source of truth for which mechanism and value shape each hint uses;
// it is built once at process start and never mutated.
type Descriptor struct {
	Name string
	Kind Kind
	Type string // X type atom the property carries on the wire
	Mech Mech

	// SourceSlot is the client-message data slot carrying the source
	// indication, or -1 when the message layout predates source
	// indication. Only meaningful for Mech == Message.
	SourceSlot int

	// Verb marks message layouts whose first slot is an action verb
	// (such as the _NET_WM_STATE add/remove/toggle). These cannot be
	// expressed as a plain value write; callers go through Request.
	Verb bool
}

// table lists every hint this package knows, per the wm-spec. Root window
// properties first, then application window properties. SourceSlot values
// follow the message layouts in the wm-spec's "Root Window Messages" and
// "Application Window Requests" sections.
var table = []Descriptor{
	{Name: "_NET_SUPPORTED", Kind: KindAtomList, Type: "ATOM", Mech: ReadOnly},
	{Name: "_NET_CLIENT_LIST", Kind: KindWindowList, Type: "WINDOW", Mech: ReadOnly},
	{Name: "_NET_CLIENT_LIST_STACKING", Kind: KindWindowList, Type: "WINDOW", Mech: ReadOnly},
	{Name: "_NET_NUMBER_OF_DESKTOPS", Kind: KindCardinal, Type: "CARDINAL", Mech: Message, SourceSlot: -1},
	{Name: "_NET_DESKTOP_GEOMETRY", Kind: KindCardinalList, Type: "CARDINAL", Mech: Message, SourceSlot: -1},
	{Name: "_NET_DESKTOP_VIEWPORT", Kind: KindCardinalList, Type: "CARDINAL", Mech: Message, SourceSlot: -1},
	{Name: "_NET_CURRENT_DESKTOP", Kind: KindCardinal, Type: "CARDINAL", Mech: Message, SourceSlot: -1},
	{Name: "_NET_DESKTOP_NAMES", Kind: KindUTF8List, Type: "UTF8_STRING", Mech: Direct},
	{Name: "_NET_ACTIVE_WINDOW", Kind: KindWindow, Type: "WINDOW", Mech: Message, SourceSlot: 0},
	{Name: "_NET_WORKAREA", Kind: KindCardinalList, Type: "CARDINAL", Mech: ReadOnly},
	{Name: "_NET_SUPPORTING_WM_CHECK", Kind: KindWindow, Type: "WINDOW", Mech: ReadOnly},
	{Name: "_NET_VIRTUAL_ROOTS", Kind: KindWindowList, Type: "WINDOW", Mech: ReadOnly},
	{Name: "_NET_DESKTOP_LAYOUT", Kind: KindCardinalList, Type: "CARDINAL", Mech: Direct},
	{Name: "_NET_SHOWING_DESKTOP", Kind: KindCardinal, Type: "CARDINAL", Mech: Message, SourceSlot: -1},
	{Name: "_NET_CLOSE_WINDOW", Kind: KindWindow, Type: "WINDOW", Mech: Message, SourceSlot: 1},

	{Name: "_NET_WM_NAME", Kind: KindUTF8, Type: "UTF8_STRING", Mech: Direct},
	{Name: "_NET_WM_VISIBLE_NAME", Kind: KindUTF8, Type: "UTF8_STRING", Mech: ReadOnly},
	{Name: "_NET_WM_ICON_NAME", Kind: KindUTF8, Type: "UTF8_STRING", Mech: Direct},
	{Name: "_NET_WM_DESKTOP", Kind: KindCardinal, Type: "CARDINAL", Mech: Message, SourceSlot: 1},
	{Name: "_NET_WM_WINDOW_TYPE", Kind: KindAtomList, Type: "ATOM", Mech: Direct},
	{Name: "_NET_WM_STATE", Kind: KindAtomList, Type: "ATOM", Mech: Message, SourceSlot: 3, Verb: true},
	{Name: "_NET_WM_ALLOWED_ACTIONS", Kind: KindAtomList, Type: "ATOM", Mech: ReadOnly},
	{Name: "_NET_WM_STRUT_PARTIAL", Kind: KindCardinalList, Type: "CARDINAL", Mech: Direct},
	{Name: "_NET_WM_PID", Kind: KindCardinal, Type: "CARDINAL", Mech: Direct},
	{Name: "_NET_WM_ICON", Kind: KindCardinalList, Type: "CARDINAL", Mech: Direct},
	{Name: "_NET_FRAME_EXTENTS", Kind: KindCardinalList, Type: "CARDINAL", Mech: ReadOnly},
}

var byName = func() map[string]*Descriptor {
	m := make(map[string]*Descriptor, len(table))
	for i := range table {
		m[table[i].Name] = &table[i]
	}
	return m
}()

// Lookup returns the descriptor for a property name.
func Lookup(name string) (*Descriptor, error) {
	d, ok := byName[name]
	if !ok {
		return nil, unknownProperty(name)
	}
	return d, nil
}

// Descriptors returns the full table, sorted by property name.
func Descriptors() []Descriptor {
	out := make([]Descriptor, len(table))
	copy(out, table)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
