// Package formula implements the CTL abstract syntax tree and its
// unfolding into a dense, de-duplicated, post-order subformula table, the
// structure package mark sweeps forward over exactly once.
package formula

import "fmt"

// Formula is a CTL formula: Prop, Not, And, Or, Impl, EX, EU, or EG. It is
// a closed tagged union, with no exported way to add a ninth variant,
// because package mark's post-order sweep assumes exactly these eight.
type Formula interface {
	fmt.Stringer
	isFormula()
	// children returns this formula's immediate operands, in the
	// left-before-right order unfold must visit them.
	children() []Formula
}

// Prop is an atomic proposition, interpreted by the caller-supplied
// PropValuator package mark takes.
type Prop struct {
	Name string
}

func NewProp(name string) Formula { return Prop{Name: name} }

func (p Prop) isFormula()        {}
func (p Prop) children() []Formula { return nil }
func (p Prop) String() string    { return p.Name }

// Not is logical negation.
type Not struct {
	F Formula
}

func NewNot(f Formula) Formula { return Not{F: f} }

func (n Not) isFormula()          {}
func (n Not) children() []Formula { return []Formula{n.F} }
func (n Not) String() string      { return fmt.Sprintf("(not %s)", n.F) }

// And is logical conjunction.
type And struct {
	F, G Formula
}

func NewAnd(f, g Formula) Formula { return And{F: f, G: g} }

func (a And) isFormula()          {}
func (a And) children() []Formula { return []Formula{a.F, a.G} }
func (a And) String() string      { return fmt.Sprintf("(and %s %s)", a.F, a.G) }

// Or is logical disjunction.
type Or struct {
	F, G Formula
}

func NewOr(f, g Formula) Formula { return Or{F: f, G: g} }

func (o Or) isFormula()          {}
func (o Or) children() []Formula { return []Formula{o.F, o.G} }
func (o Or) String() string      { return fmt.Sprintf("(or %s %s)", o.F, o.G) }

// Impl is logical implication: F implies G, equivalent to Or(Not(F), G).
type Impl struct {
	F, G Formula
}

func NewImpl(f, g Formula) Formula { return Impl{F: f, G: g} }

func (i Impl) isFormula()          {}
func (i Impl) children() []Formula { return []Formula{i.F, i.G} }
func (i Impl) String() string      { return fmt.Sprintf("(impl %s %s)", i.F, i.G) }

// EX is the CTL "exists next": some successor satisfies F.
type EX struct {
	F Formula
}

func NewEX(f Formula) Formula { return EX{F: f} }

func (e EX) isFormula()          {}
func (e EX) children() []Formula { return []Formula{e.F} }
func (e EX) String() string      { return fmt.Sprintf("(EX %s)", e.F) }

// EU is the CTL "exists until": some path satisfies F until G holds.
type EU struct {
	F, G Formula
}

func NewEU(f, g Formula) Formula { return EU{F: f, G: g} }

func (u EU) isFormula()          {}
func (u EU) children() []Formula { return []Formula{u.F, u.G} }
func (u EU) String() string      { return fmt.Sprintf("(EU %s %s)", u.F, u.G) }

// EG is the CTL "exists globally": some infinite path satisfies F
// everywhere.
type EG struct {
	F Formula
}

func NewEG(f Formula) Formula { return EG{F: f} }

func (e EG) isFormula()          {}
func (e EG) children() []Formula { return []Formula{e.F} }
func (e EG) String() string      { return fmt.Sprintf("(EG %s)", e.F) }
