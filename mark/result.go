package mark

import (
	"github.com/akitsu-sanae/mcctl-go/formula"
	"github.com/akitsu-sanae/mcctl-go/lts"
)

// MarkingResult is the output of Mark: the subformula table the spec was
// unfolded into, and a bit per (state, subformula) recording satisfaction.
type MarkingResult struct {
	Subformulas *formula.SubformulaTable
	marks       []Bits
}

// Satisfies reports whether state id satisfies the subformula at index i.
func (r *MarkingResult) Satisfies(id lts.StateId, i int) bool {
	return r.marks[id].IsSet(i)
}

// SatisfiesTop reports whether state id satisfies the top-level formula,
// the one Mark was originally called with.
func (r *MarkingResult) SatisfiesTop(id lts.StateId) bool {
	return r.Satisfies(id, r.Subformulas.TopIndex())
}

// SatisfiedAt returns every subformula index satisfied by state id, in
// ascending order. Used by the visualisation adapter to annotate nodes.
func (r *MarkingResult) SatisfiedAt(id lts.StateId) []int {
	var out []int
	for i := 0; i < r.Subformulas.Len(); i++ {
		if r.marks[id].IsSet(i) {
			out = append(out, i)
		}
	}
	return out
}
