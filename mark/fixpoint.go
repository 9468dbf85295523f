package mark

import (
	"github.com/akitsu-sanae/mcctl-go/lts"
)

// evalEU computes the least fixed point of the EU operator, μZ. g ∨ (f ∧ EX Z),
// over a fixed set of already-finalised f/g bits. It seeds U with every
// state satisfying g, then grows U backward along the reverse-adjacency
// index: any predecessor of a U member that satisfies f joins U too,
// repeating until the worklist drains. U only grows and is bounded by
// |S|, so this always terminates.
func evalEU[V comparable](l *lts.LTS[V], marks []Bits, fIdx, gIdx int) []bool {
	n := l.Len()
	inU := make([]bool, n)
	var queue []lts.StateId
	for id := 0; id < n; id++ {
		if marks[id].IsSet(gIdx) {
			inU[id] = true
			queue = append(queue, lts.StateId(id))
		}
	}

	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for _, p := range l.Predecessors(u) {
			if !inU[p] && marks[p].IsSet(fIdx) {
				inU[p] = true
				queue = append(queue, p)
			}
		}
	}

	return inU
}

// evalEG computes the greatest fixed point of the EG operator, νZ. f ∧ EX Z.
// It seeds G with every state satisfying f, then repeatedly strips any
// state with no outgoing edge remaining inside G, until a pass removes
// nothing. G only shrinks and is bounded by |S|, so this always
// terminates; self-loops count as a witnessing successor.
func evalEG[V comparable](l *lts.LTS[V], marks []Bits, fIdx int) []bool {
	n := l.Len()
	inG := make([]bool, n)
	for id := 0; id < n; id++ {
		inG[id] = marks[id].IsSet(fIdx)
	}

	for {
		changed := false
		for id := 0; id < n; id++ {
			if !inG[id] {
				continue
			}
			hasWitness := false
			for _, e := range l.Edges(lts.StateId(id)) {
				if inG[e.Dst] {
					hasWitness = true
					break
				}
			}
			if !hasWitness {
				inG[id] = false
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	return inG
}
