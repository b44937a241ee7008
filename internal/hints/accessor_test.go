package hints

import (
	"errors"
	"testing"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/wmhints/wmctl/internal/x11"
)

// fakeConn is a recording in-memory transport. Atoms are interned on
// demand; property reads serve from the props map; writes and messages are
// recorded for assertions.
type fakeConn struct {
	root  xproto.Window
	atoms map[string]xproto.Atom
	names map[xproto.Atom]string
	next  xproto.Atom
	props map[propKey]*x11.PropValue

	changes  []changeCall
	messages []messageCall
}

type propKey struct {
	win  xproto.Window
	prop xproto.Atom
}

type changeCall struct {
	win    xproto.Window
	prop   xproto.Atom
	typ    xproto.Atom
	format byte
	data   []byte
}

type messageCall struct {
	win  xproto.Window
	typ  xproto.Atom
	data [5]uint32
}

func newFakeConn() *fakeConn {
	return &fakeConn{
		root:  100,
		atoms: make(map[string]xproto.Atom),
		names: make(map[xproto.Atom]string),
		next:  1000,
		props: make(map[propKey]*x11.PropValue),
	}
}

func (c *fakeConn) Atom(name string) (xproto.Atom, error) {
	if a, ok := c.atoms[name]; ok {
		return a, nil
	}
	c.next++
	c.atoms[name] = c.next
	c.names[c.next] = name
	return c.next, nil
}

func (c *fakeConn) AtomName(atom xproto.Atom) (string, error) {
	name, ok := c.names[atom]
	if !ok {
		return "", errors.New("no such atom")
	}
	return name, nil
}

func (c *fakeConn) GetProperty(win xproto.Window, prop, typ xproto.Atom) (*x11.PropValue, error) {
	pv, ok := c.props[propKey{win, prop}]
	if !ok {
		return &x11.PropValue{Type: xproto.AtomNone}, nil
	}
	return pv, nil
}

func (c *fakeConn) ChangeProperty(win xproto.Window, prop, typ xproto.Atom, format byte, data []byte) error {
	c.changes = append(c.changes, changeCall{win, prop, typ, format, append([]byte(nil), data...)})
	return nil
}

func (c *fakeConn) SendClientMessage(win xproto.Window, typ xproto.Atom, data [5]uint32) error {
	c.messages = append(c.messages, messageCall{win, typ, data})
	return nil
}

func (c *fakeConn) Root() xproto.Window { return c.root }
func (c *fakeConn) Close()              {}

// setProp stores a raw property value keyed by property and type name.
func (c *fakeConn) setProp(win xproto.Window, prop, typ string, format byte, items uint32, data []byte) {
	propAtom, _ := c.Atom(prop)
	typAtom, _ := c.Atom(typ)
	c.props[propKey{win, propAtom}] = &x11.PropValue{
		Type:   typAtom,
		Format: format,
		Items:  items,
		Data:   data,
	}
}

func (c *fakeConn) setCardinals(win xproto.Window, prop string, vals ...uint32) {
	buf := make([]byte, 4*len(vals))
	for i, v := range vals {
		xgb.Put32(buf[i*4:], v)
	}
	c.setProp(win, prop, "CARDINAL", 32, uint32(len(vals)), buf)
}

func (c *fakeConn) calls() int { return len(c.changes) + len(c.messages) }

func TestReadCardinal(t *testing.T) {
	fc := newFakeConn()
	fc.setCardinals(fc.root, "_NET_CURRENT_DESKTOP", 3)
	a := NewAccessor(fc)

	v, err := a.Read(fc.root, "_NET_CURRENT_DESKTOP")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got := v.(Cardinal); got != 3 {
		t.Errorf("got %d, want 3", got)
	}
}

func TestReadAbsent(t *testing.T) {
	fc := newFakeConn()
	a := NewAccessor(fc)

	_, err := a.Read(fc.root, "_NET_CURRENT_DESKTOP")
	if !errors.Is(err, ErrPropertyAbsent) {
		t.Fatalf("got %v, want ErrPropertyAbsent", err)
	}
}

func TestReadUnknownProperty(t *testing.T) {
	fc := newFakeConn()
	a := NewAccessor(fc)

	_, err := a.Read(fc.root, "_NET_NO_SUCH_HINT")
	if !errors.Is(err, ErrUnknownProperty) {
		t.Fatalf("got %v, want ErrUnknownProperty", err)
	}
	if fc.calls() != 0 {
		t.Errorf("unknown property reached the transport: %d calls", fc.calls())
	}
}

func TestReadTypeMismatch(t *testing.T) {
	fc := newFakeConn()
	// Server reports STRING where the descriptor declares CARDINAL.
	fc.setProp(fc.root, "_NET_CURRENT_DESKTOP", "STRING", 8, 1, []byte("x"))
	a := NewAccessor(fc)

	_, err := a.Read(fc.root, "_NET_CURRENT_DESKTOP")
	var tm *TypeMismatchError
	if !errors.As(err, &tm) {
		t.Fatalf("got %v, want TypeMismatchError", err)
	}
	if tm.Want != "CARDINAL" || tm.Got != "STRING" {
		t.Errorf("got want=%q got=%q", tm.Want, tm.Got)
	}
}

func TestReadUTF8List(t *testing.T) {
	fc := newFakeConn()
	data := []byte("web\x00mail\x00music\x00")
	fc.setProp(fc.root, "_NET_DESKTOP_NAMES", "UTF8_STRING", 8, uint32(len(data)), data)
	a := NewAccessor(fc)

	v, err := a.Read(fc.root, "_NET_DESKTOP_NAMES")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	names := v.(UTF8List)
	want := []string{"web", "mail", "music"}
	if len(names) != len(want) {
		t.Fatalf("got %d names %v, want %d", len(names), names, len(want))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("name %d: got %q, want %q", i, names[i], want[i])
		}
	}
}

func TestReadUTF8TrimsTrailingNUL(t *testing.T) {
	fc := newFakeConn()
	fc.setProp(42, "_NET_WM_NAME", "UTF8_STRING", 8, 9, []byte("terminal\x00"))
	a := NewAccessor(fc)

	v, err := a.Read(42, "_NET_WM_NAME")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got := string(v.(UTF8)); got != "terminal" {
		t.Errorf("got %q, want %q", got, "terminal")
	}
}

func TestReadWindowList(t *testing.T) {
	fc := newFakeConn()
	buf := make([]byte, 8)
	xgb.Put32(buf, 11)
	xgb.Put32(buf[4:], 22)
	fc.setProp(fc.root, "_NET_CLIENT_LIST", "WINDOW", 32, 2, buf)
	a := NewAccessor(fc)

	v, err := a.Read(fc.root, "_NET_CLIENT_LIST")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	wins := v.(WindowList)
	if len(wins) != 2 || wins[0] != 11 || wins[1] != 22 {
		t.Errorf("got %v, want [11 22]", wins)
	}
}

func TestReadAtomListResolvesNames(t *testing.T) {
	fc := newFakeConn()
	dialog, _ := fc.Atom("_NET_WM_WINDOW_TYPE_DIALOG")
	buf := make([]byte, 8)
	xgb.Put32(buf, uint32(dialog))
	xgb.Put32(buf[4:], 9999) // interned by no one; stays unresolved
	fc.setProp(42, "_NET_WM_WINDOW_TYPE", "ATOM", 32, 2, buf)
	a := NewAccessor(fc)

	v, err := a.Read(42, "_NET_WM_WINDOW_TYPE")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	atoms := v.(AtomList)
	if len(atoms) != 2 {
		t.Fatalf("got %d atoms, want 2", len(atoms))
	}
	if atoms[0].Name != "_NET_WM_WINDOW_TYPE_DIALOG" {
		t.Errorf("atom 0: got name %q", atoms[0].Name)
	}
	if atoms[1].Name != "" || atoms[1].ID != 9999 {
		t.Errorf("atom 1: got %+v, want opaque id 9999", atoms[1])
	}
}

func TestWriteDirectUTF8(t *testing.T) {
	fc := newFakeConn()
	a := NewAccessor(fc)

	if err := a.Write(42, "_NET_WM_NAME", UTF8("editor"), SourceUnset); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if len(fc.messages) != 0 {
		t.Fatalf("direct property went out as a message")
	}
	if len(fc.changes) != 1 {
		t.Fatalf("got %d ChangeProperty calls, want 1", len(fc.changes))
	}
	ch := fc.changes[0]
	if ch.win != 42 || ch.format != 8 || string(ch.data) != "editor" {
		t.Errorf("got win=%d format=%d data=%q", ch.win, ch.format, ch.data)
	}
	if fc.names[ch.prop] != "_NET_WM_NAME" || fc.names[ch.typ] != "UTF8_STRING" {
		t.Errorf("got prop=%q typ=%q", fc.names[ch.prop], fc.names[ch.typ])
	}
}

func TestWriteDirectCardinalList(t *testing.T) {
	fc := newFakeConn()
	a := NewAccessor(fc)

	vals := CardinalList{0, 2, 3, 1}
	if err := a.Write(fc.root, "_NET_DESKTOP_LAYOUT", vals, SourceUnset); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if len(fc.changes) != 1 {
		t.Fatalf("got %d ChangeProperty calls, want 1", len(fc.changes))
	}
	ch := fc.changes[0]
	if ch.format != 32 || len(ch.data) != 16 {
		t.Fatalf("got format=%d len=%d", ch.format, len(ch.data))
	}
	for i, want := range vals {
		if got := xgb.Get32(ch.data[i*4:]); got != want {
			t.Errorf("value %d: got %d, want %d", i, got, want)
		}
	}
}

func TestWriteDesktopNamesTrailingNUL(t *testing.T) {
	fc := newFakeConn()
	a := NewAccessor(fc)

	if err := a.Write(fc.root, "_NET_DESKTOP_NAMES", UTF8List{"a", "b"}, SourceUnset); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got := string(fc.changes[0].data); got != "a\x00b\x00" {
		t.Errorf("got %q, want %q", got, "a\x00b\x00")
	}
}

func TestWriteReadOnly(t *testing.T) {
	fc := newFakeConn()
	a := NewAccessor(fc)

	err := a.Write(fc.root, "_NET_CLIENT_LIST", WindowList{1}, SourceUnset)
	if !errors.Is(err, ErrReadOnly) {
		t.Fatalf("got %v, want ErrReadOnly", err)
	}
	if fc.calls() != 0 {
		t.Errorf("read-only write reached the transport")
	}
}

func TestWriteKindMismatch(t *testing.T) {
	fc := newFakeConn()
	a := NewAccessor(fc)

	err := a.Write(42, "_NET_WM_NAME", Cardinal(1), SourceUnset)
	var tm *TypeMismatchError
	if !errors.As(err, &tm) {
		t.Fatalf("got %v, want TypeMismatchError", err)
	}
	if fc.calls() != 0 {
		t.Errorf("mismatched value reached the transport")
	}
}

func TestWriteMessageWithoutSourceSlot(t *testing.T) {
	fc := newFakeConn()
	a := NewAccessor(fc)

	// _NET_CURRENT_DESKTOP predates source indication; no source needed.
	if err := a.Write(fc.root, "_NET_CURRENT_DESKTOP", Cardinal(2), SourceUnset); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if len(fc.changes) != 0 {
		t.Fatalf("message property was written directly")
	}
	if len(fc.messages) != 1 {
		t.Fatalf("got %d messages, want 1", len(fc.messages))
	}
	msg := fc.messages[0]
	if fc.names[msg.typ] != "_NET_CURRENT_DESKTOP" {
		t.Errorf("got message type %q", fc.names[msg.typ])
	}
	if msg.data != [5]uint32{2, 0, 0, 0, 0} {
		t.Errorf("got data %v", msg.data)
	}
}

func TestWriteMessageSourceRequired(t *testing.T) {
	fc := newFakeConn()
	a := NewAccessor(fc)

	err := a.Write(42, "_NET_ACTIVE_WINDOW", Window(42), SourceUnset)
	if !errors.Is(err, ErrSourceRequired) {
		t.Fatalf("got %v, want ErrSourceRequired", err)
	}
	if fc.calls() != 0 {
		t.Errorf("request without source reached the transport")
	}
}

func TestWriteActiveWindowCarriesSource(t *testing.T) {
	fc := newFakeConn()
	a := NewAccessor(fc)

	if err := a.Write(42, "_NET_ACTIVE_WINDOW", Window(42), SourceUser); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if len(fc.messages) != 1 || len(fc.changes) != 0 {
		t.Fatalf("got %d messages, %d changes", len(fc.messages), len(fc.changes))
	}
	msg := fc.messages[0]
	if msg.win != 42 {
		t.Errorf("got message window %d, want 42", msg.win)
	}
	if msg.data[0] != uint32(SourceUser) {
		t.Errorf("got source slot %d, want %d", msg.data[0], SourceUser)
	}
}

func TestWriteActiveWindowWrongTarget(t *testing.T) {
	fc := newFakeConn()
	a := NewAccessor(fc)

	err := a.Write(42, "_NET_ACTIVE_WINDOW", Window(7), SourceUser)
	var tm *TypeMismatchError
	if !errors.As(err, &tm) {
		t.Fatalf("got %v, want TypeMismatchError", err)
	}
	if fc.calls() != 0 {
		t.Errorf("mismatched window reached the transport")
	}
}

func TestRequestSkipsSourceSlot(t *testing.T) {
	fc := newFakeConn()
	a := NewAccessor(fc)

	// _NET_CLOSE_WINDOW: slot 0 timestamp, slot 1 source.
	if err := a.Request(42, "_NET_CLOSE_WINDOW", SourceApplication, 777); err != nil {
		t.Fatalf("Request: %v", err)
	}
	msg := fc.messages[0]
	if msg.data[0] != 777 {
		t.Errorf("timestamp slot: got %d, want 777", msg.data[0])
	}
	if msg.data[1] != uint32(SourceApplication) {
		t.Errorf("source slot: got %d, want %d", msg.data[1], SourceApplication)
	}
}

func TestRequestStateVerbLayout(t *testing.T) {
	fc := newFakeConn()
	a := NewAccessor(fc)
	vert, _ := fc.Atom("_NET_WM_STATE_MAXIMIZED_VERT")
	horz, _ := fc.Atom("_NET_WM_STATE_MAXIMIZED_HORZ")

	err := a.Request(42, "_NET_WM_STATE", SourceUser, 1, uint32(vert), uint32(horz))
	if err != nil {
		t.Fatalf("Request: %v", err)
	}
	msg := fc.messages[0]
	want := [5]uint32{1, uint32(vert), uint32(horz), uint32(SourceUser), 0}
	if msg.data != want {
		t.Errorf("got data %v, want %v", msg.data, want)
	}
}

func TestRequestRejectsPlainWriteForVerbProperty(t *testing.T) {
	fc := newFakeConn()
	a := NewAccessor(fc)

	err := a.Write(42, "_NET_WM_STATE", AtomList{{Name: "_NET_WM_STATE_HIDDEN"}}, SourceUser)
	var tm *TypeMismatchError
	if !errors.As(err, &tm) {
		t.Fatalf("got %v, want TypeMismatchError", err)
	}
	if fc.calls() != 0 {
		t.Errorf("verb property write reached the transport")
	}
}

func TestRequestTooManyItems(t *testing.T) {
	fc := newFakeConn()
	a := NewAccessor(fc)

	err := a.Request(42, "_NET_CLOSE_WINDOW", SourceUser, 1, 2, 3, 4, 5)
	var tm *TypeMismatchError
	if !errors.As(err, &tm) {
		t.Fatalf("got %v, want TypeMismatchError", err)
	}
	if fc.calls() != 0 {
		t.Errorf("overlong request reached the transport")
	}
}

func TestRequestOnDirectProperty(t *testing.T) {
	fc := newFakeConn()
	a := NewAccessor(fc)

	if err := a.Request(42, "_NET_WM_NAME", SourceUser, 1); err == nil {
		t.Fatal("expected error for Request on a direct property")
	}
	if fc.calls() != 0 {
		t.Errorf("invalid request reached the transport")
	}
}
