// Package x11 is the transport layer between the hint accessor and the X
// server. It exposes the four primitives the accessor needs (atom interning,
// property get, property replace, client-message send) over a single
// connection owned by the caller.
//
// A Conn is not safe for concurrent use; callers that share a connection
// across goroutines must serialize access themselves.
package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
)

// PropValue is the raw reply of a property read, before typed decoding.
type PropValue struct {
	Type   xproto.Atom // actual type reported by the server; AtomNone if unset
	Format byte        // 8, 16 or 32
	Items  uint32      // number of format-sized items
	Data   []byte
}

// Absent reports whether the window had no value set for the property.
func (p *PropValue) Absent() bool {
	return p.Type == xproto.AtomNone
}

// Conn is the capability the hint accessor runs on. The real implementation
// talks to an X server; tests substitute a recording fake.
type Conn interface {
	// Atom interns a named atom, creating it if it does not exist yet.
	// Results are cached for the lifetime of the connection.
	Atom(name string) (xproto.Atom, error)

	// AtomName resolves an atom id back to its canonical name.
	AtomName(atom xproto.Atom) (string, error)

	// GetProperty reads the full value of a property on a window,
	// requesting the given type.
	GetProperty(win xproto.Window, prop, typ xproto.Atom) (*PropValue, error)

	// ChangeProperty replaces the value of a property on a window.
	// dataLen is in format-sized units, data in raw bytes.
	ChangeProperty(win xproto.Window, prop, typ xproto.Atom, format byte, data []byte) error

	// SendClientMessage sends a 32-bit-format client message carrying the
	// given window and type to the root window, with the substructure
	// redirect/notify masks set so the window manager receives it.
	SendClientMessage(win xproto.Window, typ xproto.Atom, data [5]uint32) error

	// Root returns the root window of the connected screen.
	Root() xproto.Window

	// Close releases the connection.
	Close()
}

// ConnError wraps a protocol-level transport failure: a dead connection,
// an invalid window, a failed request.
type ConnError struct {
	Op  string
	Err error
}

func (e *ConnError) Error() string {
	return fmt.Sprintf("x11: %s: %v", e.Op, e.Err)
}

func (e *ConnError) Unwrap() error { return e.Err }

func connErr(op string, err error) error {
	return &ConnError{Op: op, Err: err}
}
