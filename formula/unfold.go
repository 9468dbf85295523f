package formula

// SubformulaTable is the bijection between a dense index set 0..M-1 and
// the distinct subformulas of a specification, in post-order: every
// compound subformula's operands occupy strictly smaller indices than it
// does, and duplicate subformulas collapse to a single index. This is
// what lets package mark's forward sweep assume every operand lookup at
// index k is already final.
//
// Formula values are plain comparable structs (no slices, no pointers),
// so structural equality, and therefore de-duplication, is just Go's
// built-in `==`/map-key equality; no separate Equal method is needed.
type SubformulaTable struct {
	byIndex []Formula
	byValue map[Formula]int
}

// Len returns the subformula count, M.
func (t *SubformulaTable) Len() int {
	return len(t.byIndex)
}

// At returns the subformula at index i.
func (t *SubformulaTable) At(i int) Formula {
	return t.byIndex[i]
}

// IndexOf returns the index of f, which must already be present (every
// operand of a subformula in the table is itself in the table, by
// construction).
func (t *SubformulaTable) IndexOf(f Formula) int {
	return t.byValue[f]
}

// TopIndex returns the index of the top-level formula this table was
// built from, always the last index, since Unfold appends it last.
func (t *SubformulaTable) TopIndex() int {
	return len(t.byIndex) - 1
}

// Unfold decomposes spec into its distinct subformulas in post-order,
// left operand before right, de-duplicating structurally-equal
// subformulas to a single index. For any Formula value f, Unfold(f)
// contains f at the highest index, every proper subformula of f at a
// smaller index, and no formula not structurally present in f.
func Unfold(spec Formula) *SubformulaTable {
	t := &SubformulaTable{byValue: make(map[Formula]int)}
	insert(t, spec)
	return t
}

func insert(t *SubformulaTable, f Formula) int {
	if i, ok := t.byValue[f]; ok {
		return i
	}
	for _, child := range f.children() {
		insert(t, child)
	}
	i := len(t.byIndex)
	t.byIndex = append(t.byIndex, f)
	t.byValue[f] = i
	return i
}
