package x11

import (
	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

// conn implements Conn over a live xgb connection.
type conn struct {
	x    *xgb.Conn
	root xproto.Window

	// Atom ids are stable for the lifetime of a connection, so both caches
	// are populated on first use and never invalidated.
	atoms map[string]xproto.Atom
	names map[xproto.Atom]string
}

// Connect opens a connection to the X server. An empty display connects to
// $DISPLAY. The caller owns the connection and must Close it when done.
func Connect(display string) (Conn, error) {
	x, err := xgb.NewConnDisplay(display)
	if err != nil {
		return nil, connErr("connect", err)
	}
	return &conn{
		x:     x,
		root:  xproto.Setup(x).DefaultScreen(x).Root,
		atoms: make(map[string]xproto.Atom),
		names: make(map[xproto.Atom]string),
	}, nil
}

func (c *conn) Root() xproto.Window { return c.root }

func (c *conn) Close() { c.x.Close() }

func (c *conn) Atom(name string) (xproto.Atom, error) {
	if a, ok := c.atoms[name]; ok {
		return a, nil
	}
	r, err := xproto.InternAtom(c.x, false, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, connErr("intern atom "+name, err)
	}
	c.atoms[name] = r.Atom
	c.names[r.Atom] = name
	return r.Atom, nil
}

func (c *conn) AtomName(atom xproto.Atom) (string, error) {
	if n, ok := c.names[atom]; ok {
		return n, nil
	}
	r, err := xproto.GetAtomName(c.x, atom).Reply()
	if err != nil {
		return "", connErr("get atom name", err)
	}
	c.names[atom] = r.Name
	c.atoms[r.Name] = atom
	return r.Name, nil
}

func (c *conn) GetProperty(win xproto.Window, prop, typ xproto.Atom) (*PropValue, error) {
	r, err := xproto.GetProperty(c.x, false, win, prop, typ, 0, (1<<32)-1).Reply()
	if err != nil {
		return nil, connErr("get property", err)
	}
	return &PropValue{
		Type:   r.Type,
		Format: r.Format,
		Items:  r.ValueLen,
		Data:   r.Value,
	}, nil
}

func (c *conn) ChangeProperty(win xproto.Window, prop, typ xproto.Atom, format byte, data []byte) error {
	units := uint32(len(data))
	if format != 0 {
		units /= uint32(format / 8)
	}
	err := xproto.ChangePropertyChecked(
		c.x, xproto.PropModeReplace, win, prop, typ, format, units, data).Check()
	if err != nil {
		return connErr("change property", err)
	}
	return nil
}

func (c *conn) SendClientMessage(win xproto.Window, typ xproto.Atom, data [5]uint32) error {
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: win,
		Type:   typ,
		Data:   xproto.ClientMessageDataUnionData32New(data[:]),
	}
	mask := uint32(xproto.EventMaskSubstructureRedirect | xproto.EventMaskSubstructureNotify)
	err := xproto.SendEventChecked(c.x, false, c.root, mask, string(ev.Bytes())).Check()
	if err != nil {
		return connErr("send client message", err)
	}
	return nil
}
