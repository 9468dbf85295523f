// Package lts builds the reachable Labelled Transition System induced by
// the asynchronous interleaving of a set of process.Process values sharing
// a single variable valuation, and indexes it for the fixed-point queries
// package mark needs.
package lts

import (
	"github.com/akitsu-sanae/mcctl-go/process"
)

// State is the global state S = (V, L1, ..., Ln): the shared valuation
// together with every process's current location, in process order.
type State[V comparable] struct {
	Vars      V
	Locations []process.Location
}

// locKey flattens a location vector into a comparable map key. V is
// already comparable (Go maps can key on it directly), but a []Location
// slice is not, so the canonicalisation map in BuildLTS keys on (V,
// locKey(locations)): two global states are equal iff the valuation and
// every per-process location are equal.
func locKey(locations []process.Location) string {
	key := make([]byte, 0, 16*len(locations))
	for _, l := range locations {
		key = append(key, l.String()...)
		key = append(key, 0)
	}
	return string(key)
}

// StateId is a dense identifier into the LTS, assigned in BFS discovery
// order. State 0 is always the initial state.
type StateId int

// Edge is one outgoing transition: a display label and the destination
// state's identifier.
type Edge struct {
	Label process.Label
	Dst   StateId
}

// entry is the per-state record the LTS stores: the state itself and its
// outgoing edges, in deterministic successor-enumeration order.
type entry[V comparable] struct {
	state State[V]
	edges []Edge
}

// LTS is the output of concurrent composition: a dense mapping from state
// identifiers to states and their outgoing edges. Every Dst is in range,
// no two identifiers share a state, and the graph is fully reachable from
// state 0.
type LTS[V comparable] struct {
	entries []entry[V]
	// predecessors[s] lists every state id with an edge into s. Built
	// lazily on first use (by the EU fixed-point pass); see Predecessors.
	predecessors [][]StateId
}

// Len returns the number of reachable states, i.e. |S|.
func (l *LTS[V]) Len() int {
	return len(l.entries)
}

// State returns the global state at id.
func (l *LTS[V]) State(id StateId) State[V] {
	return l.entries[id].state
}

// Edges returns the outgoing edges of id, in deterministic order.
func (l *LTS[V]) Edges(id StateId) []Edge {
	return l.entries[id].edges
}

// ForEachState calls fn once per reachable state, in ascending id order.
func (l *LTS[V]) ForEachState(fn func(StateId, State[V])) {
	for id, e := range l.entries {
		fn(StateId(id), e.state)
	}
}

// Predecessors returns every state id with an edge into id. The reverse
// index is built once, on first call, and cached, so an EU pass over
// the whole LTS runs in O(|S|+|edges|) instead of rescanning every edge
// per popped state. The EG pass does not use it.
func (l *LTS[V]) Predecessors(id StateId) []StateId {
	if l.predecessors == nil {
		l.predecessors = make([][]StateId, len(l.entries))
		for src, e := range l.entries {
			for _, edge := range e.edges {
				l.predecessors[edge.Dst] = append(l.predecessors[edge.Dst], StateId(src))
			}
		}
	}
	return l.predecessors[id]
}
