package hints

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/wmhints/wmctl/internal/x11"
)

// Accessor reads and writes hints on windows through a transport connection.
// Each call is one stateless round trip; the accessor holds no state of its
// own beyond the connection it was given.
type Accessor struct {
	conn x11.Conn
}

// NewAccessor returns an accessor over the given connection. The connection
// stays owned by the caller.
func NewAccessor(conn x11.Conn) *Accessor {
	return &Accessor{conn: conn}
}

// Conn exposes the underlying transport, for callers that need raw atoms.
func (a *Accessor) Conn() x11.Conn { return a.conn }

// Read fetches and decodes the named property from a window. It fails with
// ErrUnknownProperty when no descriptor exists for the name and with
// ErrPropertyAbsent when the window has no value set.
func (a *Accessor) Read(win xproto.Window, name string) (Value, error) {
	d, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	prop, err := a.conn.Atom(d.Name)
	if err != nil {
		return nil, err
	}
	typ, err := a.conn.Atom(d.Type)
	if err != nil {
		return nil, err
	}
	pv, err := a.conn.GetProperty(win, prop, typ)
	if err != nil {
		return nil, err
	}
	if pv.Absent() {
		return nil, propertyAbsent(name)
	}
	if pv.Type != typ {
		got, nameErr := a.conn.AtomName(pv.Type)
		if nameErr != nil {
			got = fmt.Sprintf("atom %d", pv.Type)
		}
		return nil, &TypeMismatchError{Property: name, Want: d.Type, Got: got}
	}
	return a.decode(d, pv)
}

// Write sets the named property on a window through the mechanism the
// descriptor mandates: one direct property replacement, or one client
// message to the root window carrying the caller's source indication.
// Value shape is checked before any request is sent. Success on the message
// path means the request was delivered, not that the window manager honored
// it; re-read the property to confirm.
func (a *Accessor) Write(win xproto.Window, name string, v Value, source Source) error {
	d, err := Lookup(name)
	if err != nil {
		return err
	}
	switch d.Mech {
	case ReadOnly:
		return fmt.Errorf("%w: %s", ErrReadOnly, name)
	case Direct:
		if v == nil || v.Kind() != d.Kind {
			return mismatch(d, v)
		}
		return a.writeDirect(win, d, v)
	default:
		if d.Verb {
			return &TypeMismatchError{
				Property: name,
				Want:     "a Request carrying the action verb",
				Got:      "plain value write",
			}
		}
		if v == nil || v.Kind() != d.Kind {
			return mismatch(d, v)
		}
		items, err := messageItems(win, d, v)
		if err != nil {
			return err
		}
		return a.request(win, d, source, items)
	}
}

// Request sends the client message defined for a message-mandated property
// with explicit data items, for layouts that carry more than the plain
// value (timestamps, requestor windows, the _NET_WM_STATE action verb).
// Items fill the message's data slots in order, skipping the slot reserved
// for the source indication.
func (a *Accessor) Request(win xproto.Window, name string, source Source, items ...uint32) error {
	d, err := Lookup(name)
	if err != nil {
		return err
	}
	if d.Mech != Message {
		return fmt.Errorf("%s: not a message-mandated property", name)
	}
	return a.request(win, d, source, items)
}

func (a *Accessor) request(win xproto.Window, d *Descriptor, source Source, items []uint32) error {
	if d.SourceSlot >= 0 && source == SourceUnset {
		return fmt.Errorf("%w: %s", ErrSourceRequired, d.Name)
	}
	var data [5]uint32
	slot := 0
	for _, item := range items {
		if slot == d.SourceSlot {
			slot++
		}
		if slot > 4 {
			return &TypeMismatchError{
				Property: d.Name,
				Want:     "at most 5 message data items",
				Got:      fmt.Sprintf("%d items", len(items)),
			}
		}
		data[slot] = item
		slot++
	}
	if d.SourceSlot >= 0 {
		data[d.SourceSlot] = uint32(source)
	}
	typ, err := a.conn.Atom(d.Name)
	if err != nil {
		return err
	}
	return a.conn.SendClientMessage(win, typ, data)
}

func (a *Accessor) writeDirect(win xproto.Window, d *Descriptor, v Value) error {
	prop, err := a.conn.Atom(d.Name)
	if err != nil {
		return err
	}
	typ, err := a.conn.Atom(d.Type)
	if err != nil {
		return err
	}
	format, data, err := a.encode(d, v)
	if err != nil {
		return err
	}
	return a.conn.ChangeProperty(win, prop, typ, format, data)
}

// messageItems turns a plain value into client-message data items. Window
// values are carried by the message's window field, so the value must name
// the same window the message targets.
func messageItems(win xproto.Window, d *Descriptor, v Value) ([]uint32, error) {
	switch val := v.(type) {
	case Cardinal:
		return []uint32{uint32(val)}, nil
	case CardinalList:
		return []uint32(val), nil
	case Window:
		if xproto.Window(val) != win {
			return nil, &TypeMismatchError{
				Property: d.Name,
				Want:     fmt.Sprintf("target window %d", win),
				Got:      fmt.Sprintf("window %d", val),
			}
		}
		return nil, nil
	default:
		return nil, mismatch(d, v)
	}
}

func (a *Accessor) encode(d *Descriptor, v Value) (byte, []byte, error) {
	switch val := v.(type) {
	case Cardinal:
		return 32, put32s(uint32(val)), nil
	case Window:
		return 32, put32s(uint32(val)), nil
	case CardinalList:
		return 32, put32s(val...), nil
	case WindowList:
		ids := make([]uint32, len(val))
		for i, w := range val {
			ids[i] = uint32(w)
		}
		return 32, put32s(ids...), nil
	case AtomList:
		ids := make([]uint32, len(val))
		for i, at := range val {
			id := at.ID
			if id == 0 {
				var err error
				id, err = a.conn.Atom(at.Name)
				if err != nil {
					return 0, nil, err
				}
			}
			ids[i] = uint32(id)
		}
		return 32, put32s(ids...), nil
	case Atom:
		id := val.ID
		if id == 0 {
			var err error
			id, err = a.conn.Atom(val.Name)
			if err != nil {
				return 0, nil, err
			}
		}
		return 32, put32s(uint32(id)), nil
	case UTF8:
		return 8, []byte(val), nil
	case UTF8List:
		// Segments are NUL-terminated, including the last one, matching
		// how _NET_DESKTOP_NAMES is stored.
		var b strings.Builder
		for _, s := range val {
			b.WriteString(s)
			b.WriteByte(0)
		}
		return 8, []byte(b.String()), nil
	default:
		return 0, nil, mismatch(d, v)
	}
}

func (a *Accessor) decode(d *Descriptor, pv *x11.PropValue) (Value, error) {
	switch d.Kind {
	case KindCardinal:
		if pv.Items == 0 {
			return nil, propertyAbsent(d.Name)
		}
		return Cardinal(xgb.Get32(pv.Data)), nil
	case KindWindow:
		if pv.Items == 0 {
			return nil, propertyAbsent(d.Name)
		}
		return Window(xgb.Get32(pv.Data)), nil
	case KindCardinalList:
		return CardinalList(get32s(pv)), nil
	case KindWindowList:
		raw := get32s(pv)
		wins := make(WindowList, len(raw))
		for i, id := range raw {
			wins[i] = xproto.Window(id)
		}
		return wins, nil
	case KindAtom, KindAtomList:
		raw := get32s(pv)
		atoms := make(AtomList, len(raw))
		for i, id := range raw {
			atoms[i] = a.resolveAtom(xproto.Atom(id))
		}
		if d.Kind == KindAtomList {
			return atoms, nil
		}
		if len(atoms) == 0 {
			return nil, propertyAbsent(d.Name)
		}
		return atoms[0], nil
	case KindUTF8:
		return UTF8(strings.TrimRight(string(pv.Data), "\x00")), nil
	case KindUTF8List:
		segments := strings.Split(string(pv.Data), "\x00")
		if n := len(segments); n > 0 && segments[n-1] == "" {
			segments = segments[:n-1]
		}
		return UTF8List(segments), nil
	default:
		return nil, fmt.Errorf("%s: undecodable kind %v", d.Name, d.Kind)
	}
}

// resolveAtom maps an atom id back to its name, keeping the reference opaque
// when the server cannot resolve it.
func (a *Accessor) resolveAtom(id xproto.Atom) Atom {
	name, err := a.conn.AtomName(id)
	if err != nil {
		return Atom{ID: id}
	}
	return Atom{ID: id, Name: name}
}

func mismatch(d *Descriptor, v Value) error {
	got := "nil"
	if v != nil {
		got = v.Kind().String()
	}
	return &TypeMismatchError{Property: d.Name, Want: d.Kind.String(), Got: got}
}

func put32s(vals ...uint32) []byte {
	buf := make([]byte, 4*len(vals))
	for i, v := range vals {
		xgb.Put32(buf[i*4:], v)
	}
	return buf
}

func get32s(pv *x11.PropValue) []uint32 {
	n := int(pv.Items)
	if max := len(pv.Data) / 4; n > max {
		n = max
	}
	out := make([]uint32, n)
	for i := 0; i < n; i++ {
		out[i] = xgb.Get32(pv.Data[i*4:])
	}
	return out
}
