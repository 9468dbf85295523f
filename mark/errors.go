package mark

import (
	"errors"
	"fmt"
)

// ErrUnsupported is returned when a spec contains a Formula variant the
// marker does not implement. Since package formula's Formula interface is
// closed to the eight documented variants, this should only ever fire on
// a programming error, not a malformed user formula.
var ErrUnsupported = errors.New("mark: unsupported formula variant")

// ErrPropositionUnknown wraps whatever error a PropValuator returns for a
// proposition name it doesn't recognise. The marker never inspects the
// valuator's error, it only attributes it.
var ErrPropositionUnknown = errors.New("mark: proposition valuator error")

func propErr(name string, err error) error {
	return fmt.Errorf("%w: %q: %v", ErrPropositionUnknown, name, err)
}
