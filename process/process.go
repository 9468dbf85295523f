// Package process describes the syntactic shape of a single sequential
// process: named locations, guarded transitions between them, and the pure
// guard/action callables a host program supplies. It has no algorithmic
// content beyond the validation concurrent_composition needs when it
// composes processes together (see package lts).
package process

import (
	"errors"
	"fmt"
)

// Location names a single point inside a process. Identity is by name.
type Location struct {
	name string
}

// NewLocation returns the Location named s.
func NewLocation(s string) Location {
	return Location{name: s}
}

func (l Location) String() string {
	return l.name
}

// Label is a display string attached to a transition. Labels are never
// used for matching or cross-process synchronisation.
type Label struct {
	text string
}

// NewLabel returns the Label displaying s.
func NewLabel(s string) Label {
	return Label{text: s}
}

func (l Label) String() string {
	return l.text
}

// Guard is a pure, deterministic predicate over a variable valuation V.
type Guard[V any] func(V) bool

// Action is a pure, deterministic, total function from a valuation to a
// fresh valuation. It must not mutate its argument in place unless V's
// zero-allocation copy semantics make that safe (callers own V's value
// semantics; the core never inspects it).
type Action[V any] func(V) V

// Trans is one outgoing transition of an ExecUnit: a label, a destination
// location, a guard, and an action.
type Trans[V any] struct {
	Label  Label
	Dst    Location
	Guard  Guard[V]
	Action Action[V]
}

// ExecUnit pairs a source location with its ordered outgoing transitions.
// Transition order is significant: it is the within-process successor
// enumeration order used by concurrent composition (package lts).
type ExecUnit[V any] struct {
	Src    Location
	Transs []Trans[V]
}

// Process is an ordered, non-empty sequence of ExecUnits. The first unit's
// source is the process's initial location.
type Process[V any] []ExecUnit[V]

// ErrProcessMalformed is returned when a process has no ExecUnits, i.e. no
// initial location can be picked.
var ErrProcessMalformed = errors.New("process: malformed, no transition")

// InitialLocation returns the first ExecUnit's source location, i.e. the
// location a fresh instance of this process starts in.
func (p Process[V]) InitialLocation() (Location, error) {
	if len(p) == 0 {
		return Location{}, ErrProcessMalformed
	}
	return p[0].Src, nil
}

// Find returns the ExecUnit whose source is loc, and ErrNoSuchLocation if
// no unit has that source within this process.
func (p Process[V]) Find(loc Location) (*ExecUnit[V], error) {
	for i := range p {
		if p[i].Src == loc {
			return &p[i], nil
		}
	}
	return nil, fmt.Errorf("process: %w: %s", ErrNoSuchLocation, loc)
}

// ErrNoSuchLocation is returned when a process is found, during expansion,
// to be sitting in a location that is not the source of any of its
// ExecUnits. This indicates a malformed process definition supplied by the
// caller, not a bug in this package.
var ErrNoSuchLocation = errors.New("process: no such location")
