package formula

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestUnfold(t *testing.T) {
	Convey("Given a formula with a shared subformula", t, func() {
		p := NewProp("p")
		f := NewAnd(p, NewNot(p))

		Convey("When it is unfolded", func() {
			table := Unfold(f)

			Convey("Then the shared proposition occupies a single index", func() {
				So(table.Len(), ShouldEqual, 3)
				So(table.At(0), ShouldEqual, p)
			})

			Convey("Then the top formula is the last index", func() {
				So(table.At(table.TopIndex()), ShouldEqual, f)
			})

			Convey("Then every operand's index precedes its parent's", func() {
				notP := table.At(1)
				So(table.IndexOf(notP), ShouldBeLessThan, table.TopIndex())
				So(table.IndexOf(p), ShouldBeLessThan, table.IndexOf(notP))
			})
		})
	})

	Convey("Given a formula with no sharing", t, func() {
		f := NewEX(NewEU(NewProp("a"), NewProp("b")))

		Convey("When it is unfolded", func() {
			table := Unfold(f)

			Convey("Then every distinct subformula gets its own index", func() {
				So(table.Len(), ShouldEqual, 4)
			})
		})
	})

	Convey("Given a bare proposition", t, func() {
		f := NewProp("p")

		Convey("When it is unfolded", func() {
			table := Unfold(f)

			Convey("Then the table has exactly one entry", func() {
				So(table.Len(), ShouldEqual, 1)
				So(table.TopIndex(), ShouldEqual, 0)
			})
		})
	})
}
