// Package hints implements the EWMH property access core: a descriptor table
// describing each supported hint, typed property values, and an accessor
// that reads and writes hints through the correct mechanism. Properties the
// protocol reserves to the window manager are never written directly;
// they are requested with a client message to the root window carrying the
// caller's source indication.
package hints

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/xgb/xproto"
)

// Kind is the decoded shape of a property value.
type Kind int

const (
	KindAtom Kind = iota
	KindAtomList
	KindCardinal
	KindCardinalList
	KindWindow
	KindWindowList
	KindUTF8
	KindUTF8List
)

func (k Kind) String() string {
	switch k {
	case KindAtom:
		return "atom"
	case KindAtomList:
		return "atom list"
	case KindCardinal:
		return "cardinal"
	case KindCardinalList:
		return "cardinal list"
	case KindWindow:
		return "window"
	case KindWindowList:
		return "window list"
	case KindUTF8:
		return "utf8 string"
	case KindUTF8List:
		return "utf8 string list"
	default:
		return "unknown"
	}
}

// Value is a decoded property value. Exactly one concrete type exists per
// Kind; the accessor type-checks values against the descriptor before any
// request leaves the process.
type Value interface {
	Kind() Kind
}

// Atom is an atom-valued property item. Name is the canonical name when the
// id could be resolved, empty otherwise.
type Atom struct {
	ID   xproto.Atom `yaml:"id"   json:"id"`
	Name string      `yaml:"name" json:"name"`
}

func (Atom) Kind() Kind { return KindAtom }

func (a Atom) String() string {
	if a.Name != "" {
		return a.Name
	}
	return "<unresolved atom>"
}

// AtomList is an ordered sequence of atoms.
type AtomList []Atom

func (AtomList) Kind() Kind { return KindAtomList }

// Names returns the resolved names, skipping unresolved atoms.
func (l AtomList) Names() []string {
	names := make([]string, 0, len(l))
	for _, a := range l {
		if a.Name != "" {
			names = append(names, a.Name)
		}
	}
	return names
}

// Cardinal is a single 32-bit value.
type Cardinal uint32

func (Cardinal) Kind() Kind { return KindCardinal }

// CardinalList is an ordered sequence of 32-bit values, order as on the wire.
type CardinalList []uint32

func (CardinalList) Kind() Kind { return KindCardinalList }

// Window is a window-valued property item.
type Window xproto.Window

func (Window) Kind() Kind { return KindWindow }

// WindowList is an ordered sequence of window ids.
type WindowList []xproto.Window

func (WindowList) Kind() Kind { return KindWindowList }

// UTF8 is a single UTF-8 string.
type UTF8 string

func (UTF8) Kind() Kind { return KindUTF8 }

// UTF8List is a sequence of UTF-8 strings, stored on the wire as
// NUL-separated segments.
type UTF8List []string

func (UTF8List) Kind() Kind { return KindUTF8List }

// Source is the source indication carried by window manager requests,
// distinguishing plain applications from pagers and other tools acting on
// direct user input. The zero value is deliberately unset: wherever a
// request's wire layout has a source slot, the caller must choose.
type Source uint32

const (
	SourceUnset       Source = 0
	SourceApplication Source = 1
	SourceUser        Source = 2
)

func (s Source) String() string {
	switch s {
	case SourceApplication:
		return "application"
	case SourceUser:
		return "user"
	default:
		return "unset"
	}
}

// ParseSource converts a CLI flag value to a Source.
func ParseSource(s string) (Source, error) {
	switch strings.ToLower(s) {
	case "app", "application":
		return SourceApplication, nil
	case "user", "pager":
		return SourceUser, nil
	default:
		return SourceUnset, fmt.Errorf("unknown source %q (expected app or user)", s)
	}
}
