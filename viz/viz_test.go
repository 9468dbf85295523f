package viz

import (
	"strconv"
	"strings"
	"testing"

	"github.com/akitsu-sanae/mcctl-go/formula"
	"github.com/akitsu-sanae/mcctl-go/lts"
	"github.com/akitsu-sanae/mcctl-go/mark"
	"github.com/akitsu-sanae/mcctl-go/process"
)

func alwaysTrue(int) bool { return true }

func twoStateLTS(t *testing.T) *lts.LTS[int] {
	t.Helper()
	a, b := process.NewLocation("a"), process.NewLocation("b")
	p := process.Process[int]{
		{Src: a, Transs: []process.Trans[int]{
			{Label: process.NewLabel("go"), Dst: b, Guard: alwaysTrue, Action: func(x int) int { return x + 1 }},
		}},
		{Src: b, Transs: nil},
	}
	l, err := lts.BuildLTS(0, []process.Process[int]{p}, nil)
	if err != nil {
		t.Fatal(err)
	}
	return l
}

func TestRender(t *testing.T) {
	l := twoStateLTS(t)
	result, err := mark.Mark(l, func(name string, x int) (bool, error) {
		return name == "ge1" && x >= 1, nil
	}, formula.NewProp("ge1"), mark.Options{})
	if err != nil {
		t.Fatal(err)
	}

	var sb strings.Builder
	if err := Render(&sb, l, result, strconv.Itoa, ""); err != nil {
		t.Fatal(err)
	}
	out := sb.String()

	if !strings.HasPrefix(out, "digraph {\n") {
		t.Errorf("output doesn't start with digraph header: %q", out)
	}
	if !strings.HasSuffix(out, "}\n") {
		t.Errorf("output doesn't end with closing brace: %q", out)
	}
	if !strings.Contains(out, "0 -> 1") {
		t.Errorf("missing edge from state 0 to state 1: %q", out)
	}
	if !strings.Contains(out, "fillcolor=palegreen") {
		t.Errorf("state 1 satisfies the top formula and should be highlighted: %q", out)
	}
}
