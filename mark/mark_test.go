package mark

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/akitsu-sanae/mcctl-go/formula"
	"github.com/akitsu-sanae/mcctl-go/lts"
	"github.com/akitsu-sanae/mcctl-go/process"
)

func always(int) bool { return true }

// chain builds a 0->1->2->...->n-1 process over a plain int valuation,
// each transition incrementing x by one.
func chain(n int) process.Process[int] {
	locs := make([]process.Location, n)
	for i := range locs {
		locs[i] = process.NewLocation(string(rune('a' + i)))
	}
	p := make(process.Process[int], n)
	for i := range p {
		p[i].Src = locs[i]
		if i+1 < n {
			p[i].Transs = []process.Trans[int]{
				{Label: process.NewLabel("inc"), Dst: locs[i+1], Guard: always, Action: func(x int) int { return x + 1 }},
			}
		}
	}
	return p
}

func valuateX(threshold int) PropValuator[int] {
	return func(name string, x int) (bool, error) {
		if name == "ge" {
			return x >= threshold, nil
		}
		return false, ErrPropositionUnknown
	}
}

func TestMarkStateLocal(t *testing.T) {
	Convey("Given a 4-state chain and a threshold proposition", t, func() {
		l, err := lts.BuildLTS(0, []process.Process[int]{chain(4)}, nil)
		So(err, ShouldBeNil)

		Convey("When marking Prop directly", func() {
			result, err := Mark(l, valuateX(2), formula.NewProp("ge"), Options{})

			Convey("Then only states at or past the threshold are marked", func() {
				So(err, ShouldBeNil)
				So(result.SatisfiesTop(0), ShouldBeFalse)
				So(result.SatisfiesTop(1), ShouldBeFalse)
				So(result.SatisfiesTop(2), ShouldBeTrue)
				So(result.SatisfiesTop(3), ShouldBeTrue)
			})
		})

		Convey("When marking Not(Prop)", func() {
			result, err := Mark(l, valuateX(2), formula.NewNot(formula.NewProp("ge")), Options{})

			Convey("Then it is the complement of Prop", func() {
				So(err, ShouldBeNil)
				So(result.SatisfiesTop(0), ShouldBeTrue)
				So(result.SatisfiesTop(2), ShouldBeFalse)
			})
		})

		Convey("When marking EX(Prop)", func() {
			result, err := Mark(l, valuateX(2), formula.NewEX(formula.NewProp("ge")), Options{})

			Convey("Then only states whose successor satisfies Prop are marked", func() {
				So(err, ShouldBeNil)
				So(result.SatisfiesTop(1), ShouldBeTrue)
				So(result.SatisfiesTop(0), ShouldBeFalse)
				So(result.SatisfiesTop(3), ShouldBeFalse)
			})
		})
	})
}

func TestMarkPropError(t *testing.T) {
	Convey("Given a valuator that doesn't know a proposition", t, func() {
		l, err := lts.BuildLTS(0, []process.Process[int]{chain(2)}, nil)
		So(err, ShouldBeNil)

		Convey("When marking that proposition", func() {
			_, err := Mark(l, valuateX(0), formula.NewProp("unknown"), Options{})

			Convey("Then it surfaces ErrPropositionUnknown", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, ErrPropositionUnknown), ShouldBeTrue)
			})
		})
	})
}

func TestMarkEU(t *testing.T) {
	Convey("Given a self-looping counter bounded below 4", t, func() {
		s := process.NewLocation("s")
		p := process.Process[int]{
			{Src: s, Transs: []process.Trans[int]{
				{Label: process.NewLabel("inc"), Dst: s, Guard: func(x int) bool { return x < 4 }, Action: func(x int) int { return x + 1 }},
			}},
		}
		l, err := lts.BuildLTS(0, []process.Process[int]{p}, nil)
		So(err, ShouldBeNil)

		valuate := func(name string, x int) (bool, error) {
			switch name {
			case "lt4":
				return x < 4, nil
			case "eq4":
				return x == 4, nil
			}
			return false, ErrPropositionUnknown
		}

		Convey("When marking EU(lt4, eq4)", func() {
			spec := formula.NewEU(formula.NewProp("lt4"), formula.NewProp("eq4"))
			result, err := Mark(l, valuate, spec, Options{})

			Convey("Then every state on the chain to 4 is marked", func() {
				So(err, ShouldBeNil)
				for id := 0; id < l.Len(); id++ {
					So(result.SatisfiesTop(lts.StateId(id)), ShouldBeTrue)
				}
			})
		})
	})
}

func TestMarkEG(t *testing.T) {
	Convey("Given a process with no transitions", t, func() {
		s := process.NewLocation("s")
		p := process.Process[int]{{Src: s, Transs: nil}}
		l, err := lts.BuildLTS(0, []process.Process[int]{p}, nil)
		So(err, ShouldBeNil)

		Convey("When marking EG of an always-true proposition", func() {
			valuate := func(string, int) (bool, error) { return true, nil }
			result, err := Mark(l, valuate, formula.NewEG(formula.NewProp("any")), Options{})

			Convey("Then the lone state cannot satisfy EG for lack of a successor", func() {
				So(err, ShouldBeNil)
				So(result.SatisfiesTop(0), ShouldBeFalse)
			})
		})

		Convey("When marking EX of anything", func() {
			result, err := Mark(l, func(string, int) (bool, error) { return true, nil }, formula.NewEX(formula.NewProp("any")), Options{})

			Convey("Then nothing is marked", func() {
				So(err, ShouldBeNil)
				So(result.SatisfiesTop(0), ShouldBeFalse)
			})
		})
	})

	Convey("Given a self-looping counter with a back-edge at 6", t, func() {
		s := process.NewLocation("s")
		p := process.Process[int]{
			{Src: s, Transs: []process.Trans[int]{
				{Label: process.NewLabel("inc"), Dst: s, Guard: func(x int) bool { return x < 9 }, Action: func(x int) int { return x + 1 }},
				{Label: process.NewLabel("reset"), Dst: s, Guard: func(x int) bool { return x == 6 }, Action: func(int) int { return 3 }},
				{Label: process.NewLabel("bump"), Dst: s, Guard: func(x int) bool { return x == 9 }, Action: func(int) int { return 5 }},
			}},
		}
		l, err := lts.BuildLTS(1, []process.Process[int]{p}, nil)
		So(err, ShouldBeNil)

		valuate := func(name string, x int) (bool, error) {
			switch name {
			case "le7":
				return x <= 7, nil
			case "le4":
				return x <= 4, nil
			}
			return false, ErrPropositionUnknown
		}

		Convey("When marking EG(x<=7)", func() {
			result, err := Mark(l, valuate, formula.NewEG(formula.NewProp("le7")), Options{})

			Convey("Then only states that can reach the 3..6 cycle within <=7 sustain an infinite path", func() {
				So(err, ShouldBeNil)
				l.ForEachState(func(id lts.StateId, state lts.State[int]) {
					// x=7's only move is to x=8 and out of range, so it
					// cannot stay in {<=7} forever despite being in
					// range; only 1..6 can cycle back via x=6 -> x=3.
					want := state.Vars >= 1 && state.Vars <= 6
					So(result.SatisfiesTop(id), ShouldEqual, want)
				})
			})
		})

		Convey("When marking EG(x<=4)", func() {
			result, err := Mark(l, valuate, formula.NewEG(formula.NewProp("le4")), Options{})

			Convey("Then no state can sustain an infinite path confined to <=4", func() {
				So(err, ShouldBeNil)
				l.ForEachState(func(id lts.StateId, _ lts.State[int]) {
					So(result.SatisfiesTop(id), ShouldBeFalse)
				})
			})
		})
	})
}
