package lts

import (
	"github.com/akitsu-sanae/mcctl-go/process"
)

// ProgressFunc is an optional, synchronous progress hook invoked during
// BuildLTS. discovered is the total number of states found so far
// (including the one just popped); expanded is the number whose outgoing
// edges have been computed. It must return quickly; BuildLTS runs it
// inline on its own goroutine, never concurrently with the BFS itself.
type ProgressFunc func(discovered, expanded int)

// canonKey is the map key used to canonicalise global states: V is itself
// comparable (the contract process.Action/process.Guard callers rely on),
// and locations are flattened to a string since slices aren't comparable.
type canonKey[V comparable] struct {
	vars V
	locs string
}

// BuildLTS performs the concurrent composition of a set of processes:
// starting from the global state (initialV, each process's initial
// location), it enumerates successors by asynchronous interleaving. For
// every process, for every outgoing transition of that process's current
// ExecUnit whose guard holds, a successor exists that advances only that
// process. Dense state identifiers are assigned in breadth-first
// discovery order.
//
// Successor enumeration order is deterministic: processes in their
// supplied order, and within a process, transitions in their declared
// order. This makes state identifiers stable across runs given equal
// inputs.
func BuildLTS[V comparable](initialV V, processes []process.Process[V], progress ProgressFunc) (*LTS[V], error) {
	initLocs := make([]process.Location, len(processes))
	for i, p := range processes {
		loc, err := p.InitialLocation()
		if err != nil {
			return nil, err
		}
		initLocs[i] = loc
	}

	canon := make(map[canonKey[V]]StateId)
	l := &LTS[V]{}

	initState := State[V]{Vars: initialV, Locations: initLocs}
	canon[canonKey[V]{initialV, locKey(initLocs)}] = 0
	l.entries = append(l.entries, entry[V]{state: initState})

	queue := []StateId{0}
	expanded := 0
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		successors, err := successorsOf(l.entries[id].state, processes)
		if err != nil {
			return nil, err
		}

		edges := make([]Edge, 0, len(successors))
		for _, succ := range successors {
			key := canonKey[V]{succ.state.Vars, locKey(succ.state.Locations)}
			dst, ok := canon[key]
			if !ok {
				dst = StateId(len(l.entries))
				canon[key] = dst
				l.entries = append(l.entries, entry[V]{state: succ.state})
				queue = append(queue, dst)
			}
			edges = append(edges, Edge{Label: succ.label, Dst: dst})
		}
		l.entries[id].edges = edges

		expanded++
		if progress != nil {
			progress(len(l.entries), expanded)
		}
	}

	return l, nil
}

// labelledState is a candidate successor: the label of the transition
// that produced it, and the resulting global state.
type labelledState[V comparable] struct {
	label process.Label
	state State[V]
}

// successorsOf computes every successor of state under asynchronous
// interleaving: exactly one process advances per successor, chosen among
// all of that process's guard-satisfying transitions from its current
// location.
func successorsOf[V comparable](state State[V], processes []process.Process[V]) ([]labelledState[V], error) {
	var next []labelledState[V]
	for i, p := range processes {
		loc := state.Locations[i]
		unit, err := p.Find(loc)
		if err != nil {
			return nil, err
		}
		for _, t := range unit.Transs {
			if !t.Guard(state.Vars) {
				continue
			}
			locs := make([]process.Location, len(state.Locations))
			copy(locs, state.Locations)
			locs[i] = t.Dst
			next = append(next, labelledState[V]{
				label: t.Label,
				state: State[V]{Vars: t.Action(state.Vars), Locations: locs},
			})
		}
	}
	return next, nil
}
