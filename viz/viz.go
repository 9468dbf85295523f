// Package viz renders a labelled LTS and its marking result to a
// Graphviz DOT graph. It is pure output: it never mutates the LTS or the
// marks it reads.
package viz

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/akitsu-sanae/mcctl-go/lts"
	"github.com/akitsu-sanae/mcctl-go/mark"
)

// defaultHighlightColor is the fill colour for states satisfying the
// top-level subformula.
const defaultHighlightColor = "palegreen"

// nodeData and edgeData are the view-models the DOT node/edge templates
// execute over.
type nodeData struct {
	ID        int
	Locations []string
	Vars      string
	Formulas  []string
	Highlight bool
}

type edgeData struct {
	Src, Dst int
	Label    string
}

var nodeTmpl = template.Must(template.New("node").Parse(
	`{{.ID}} [label="{{.ID}}\n{{range .Locations}}{{.}}{{end}}\n{{.Vars}}{{range .Formulas}}\n{{.}}{{end}}"{{if .Highlight}},style=filled,fillcolor={{$.HighlightColor}}{{end}}];
`))

// Render writes lts, annotated by result, to w as a DOT graph: one node
// line per state (id, per-process locations, rendered valuation,
// satisfied subformulas, and a fill style iff the top-level subformula is
// satisfied), one edge line per outgoing transition (src, dst, label).
//
// renderV renders a single valuation to the string shown in each node;
// highlightColor is the fill colour for top-satisfying states, defaulting
// to "palegreen" when empty.
func Render[V comparable](w io.Writer, l *lts.LTS[V], result *mark.MarkingResult, renderV func(V) string, highlightColor string) error {
	if highlightColor == "" {
		highlightColor = defaultHighlightColor
	}

	if _, err := io.WriteString(w, "digraph {\n"); err != nil {
		return fmt.Errorf("viz: %w", err)
	}

	n := l.Len()
	for id := 0; id < n; id++ {
		state := l.State(lts.StateId(id))
		locs := make([]string, len(state.Locations))
		for i, loc := range state.Locations {
			locs[i] = loc.String()
		}

		var formulas []string
		for _, idx := range result.SatisfiedAt(lts.StateId(id)) {
			formulas = append(formulas, result.Subformulas.At(idx).String())
		}

		data := struct {
			nodeData
			HighlightColor string
		}{
			nodeData: nodeData{
				ID:        id,
				Locations: locs,
				Vars:      renderV(state.Vars),
				Formulas:  formulas,
				Highlight: result.SatisfiesTop(lts.StateId(id)),
			},
			HighlightColor: highlightColor,
		}
		if err := nodeTmpl.Execute(w, data); err != nil {
			return fmt.Errorf("viz: %w", err)
		}
	}

	var edges strings.Builder
	for id := 0; id < n; id++ {
		for _, e := range l.Edges(lts.StateId(id)) {
			fmt.Fprintf(&edges, "%d -> %d [label=\"%s\"];\n", id, int(e.Dst), e.Label)
		}
	}
	if _, err := io.WriteString(w, edges.String()); err != nil {
		return fmt.Errorf("viz: %w", err)
	}

	if _, err := io.WriteString(w, "}\n"); err != nil {
		return fmt.Errorf("viz: %w", err)
	}
	return nil
}
