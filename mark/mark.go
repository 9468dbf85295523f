package mark

import (
	"github.com/akitsu-sanae/mcctl-go/formula"
	"github.com/akitsu-sanae/mcctl-go/lts"
)

// PropValuator interprets an atomic proposition name over a variable
// valuation. It must be pure and total over every proposition name used
// by the spec passed to Mark; an unrecognised name should be surfaced as
// an error rather than panicking (unlike the original source's
// prop_valuate, whose `_ => panic!()` arm this implementation replaces
// with ErrPropositionUnknown).
type PropValuator[V any] func(name string, v V) (bool, error)

// Options tunes the ambient, non-semantic parts of Mark. The zero value
// is a valid configuration that uses runtime.NumCPU() workers.
type Options struct {
	// Workers bounds the goroutine pool used for the state-local
	// subformula kinds (Prop, Not, And, Or, Impl, EX). 0 means
	// runtime.NumCPU().
	Workers int
}

// Mark unfolds spec into its subformula table, then sweeps the table in
// post-order, labelling every reachable state of l with every subformula
// it satisfies. By the time index k is evaluated, every operand of the
// subformula at k has a final bit, so a single forward sweep suffices.
func Mark[V comparable](l *lts.LTS[V], valuate PropValuator[V], spec formula.Formula, opts Options) (*MarkingResult, error) {
	table := formula.Unfold(spec)
	n := l.Len()
	marks := make([]Bits, n)
	for i := range marks {
		marks[i] = newBits(table.Len())
	}

	for k := 0; k < table.Len(); k++ {
		if err := markOne(l, marks, table, k, valuate, opts.Workers); err != nil {
			return nil, err
		}
	}

	return &MarkingResult{Subformulas: table, marks: marks}, nil
}

func markOne[V comparable](
	l *lts.LTS[V],
	marks []Bits,
	table *formula.SubformulaTable,
	k int,
	valuate PropValuator[V],
	workers int,
) error {
	n := l.Len()

	switch f := table.At(k).(type) {
	case formula.Prop:
		results, err := parallelEval(n, workers, func(id lts.StateId) (bool, error) {
			ok, err := valuate(f.Name, l.State(id).Vars)
			if err != nil {
				return false, propErr(f.Name, err)
			}
			return ok, nil
		})
		if err != nil {
			return err
		}
		applyResults(marks, k, results)

	case formula.Not:
		fIdx := table.IndexOf(f.F)
		results, err := parallelEval(n, workers, func(id lts.StateId) (bool, error) {
			return !marks[id].IsSet(fIdx), nil
		})
		if err != nil {
			return err
		}
		applyResults(marks, k, results)

	case formula.And:
		fIdx, gIdx := table.IndexOf(f.F), table.IndexOf(f.G)
		results, err := parallelEval(n, workers, func(id lts.StateId) (bool, error) {
			return marks[id].IsSet(fIdx) && marks[id].IsSet(gIdx), nil
		})
		if err != nil {
			return err
		}
		applyResults(marks, k, results)

	case formula.Or:
		fIdx, gIdx := table.IndexOf(f.F), table.IndexOf(f.G)
		results, err := parallelEval(n, workers, func(id lts.StateId) (bool, error) {
			return marks[id].IsSet(fIdx) || marks[id].IsSet(gIdx), nil
		})
		if err != nil {
			return err
		}
		applyResults(marks, k, results)

	case formula.Impl:
		fIdx, gIdx := table.IndexOf(f.F), table.IndexOf(f.G)
		results, err := parallelEval(n, workers, func(id lts.StateId) (bool, error) {
			return !marks[id].IsSet(fIdx) || marks[id].IsSet(gIdx), nil
		})
		if err != nil {
			return err
		}
		applyResults(marks, k, results)

	case formula.EX:
		fIdx := table.IndexOf(f.F)
		results, err := parallelEval(n, workers, func(id lts.StateId) (bool, error) {
			for _, e := range l.Edges(id) {
				if marks[e.Dst].IsSet(fIdx) {
					return true, nil
				}
			}
			return false, nil
		})
		if err != nil {
			return err
		}
		applyResults(marks, k, results)

	case formula.EU:
		fIdx, gIdx := table.IndexOf(f.F), table.IndexOf(f.G)
		inU := evalEU(l, marks, fIdx, gIdx)
		for id, set := range inU {
			if set {
				marks[id].Set(k)
			}
		}

	case formula.EG:
		fIdx := table.IndexOf(f.F)
		inG := evalEG(l, marks, fIdx)
		for id, set := range inG {
			if set {
				marks[id].Set(k)
			}
		}

	default:
		return ErrUnsupported
	}

	return nil
}

func applyResults(marks []Bits, k int, results []bool) {
	for id, set := range results {
		if set {
			marks[id].Set(k)
		}
	}
}
