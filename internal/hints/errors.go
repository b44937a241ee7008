package hints

import (
	"errors"
	"fmt"
)

// The accessor fails in four distinguishable ways. Callers branch with
// errors.Is / errors.As:
//
//   - ErrUnknownProperty: the accessor has no descriptor for the name.
//     A programmer or configuration error; retrying cannot help.
//   - ErrPropertyAbsent: the window has no value set for the property.
//     Expected and recoverable; treat as "unset".
//   - TypeMismatchError: the caller's value does not match the descriptor's
//     declared shape. Raised before any request is sent.
//   - x11.ConnError: the transport reported a protocol-level failure.
//     Surfaced unchanged; reconnection policy is the caller's.
//
// ErrSourceRequired refines TypeMismatch-style validation for requests whose
// wire layout carries a source indication slot.
var (
	ErrUnknownProperty = errors.New("unknown property")
	ErrPropertyAbsent  = errors.New("property not set")
	ErrSourceRequired  = errors.New("source indication required")
	ErrReadOnly        = errors.New("property is read-only")
)

// TypeMismatchError reports a value whose shape does not match the
// property's descriptor. No I/O has happened when it is returned.
type TypeMismatchError struct {
	Property string
	Want     string
	Got      string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("%s: type mismatch: want %s, got %s", e.Property, e.Want, e.Got)
}

func unknownProperty(name string) error {
	return fmt.Errorf("%w: %s", ErrUnknownProperty, name)
}

func propertyAbsent(name string) error {
	return fmt.Errorf("%w: %s", ErrPropertyAbsent, name)
}
