// Command mcctl wraps the checker core behind a YAML config file and an
// optional live dashboard.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/akitsu-sanae/mcctl-go/config"
	"github.com/akitsu-sanae/mcctl-go/dashboard"
	"github.com/akitsu-sanae/mcctl-go/formula"
	"github.com/akitsu-sanae/mcctl-go/lts"
	"github.com/akitsu-sanae/mcctl-go/mark"
	"github.com/akitsu-sanae/mcctl-go/process"
	"github.com/akitsu-sanae/mcctl-go/viz"
)

var (
	configPath   *string
	scenarioName *string
	runDashboard *bool
)

func init() {
	configPath = flag.String("config", "", "path to a checker config YAML file (optional)")
	scenarioName = flag.String("scenario", "seq", "scenario to run: seq, ex3, eu, eg")
	runDashboard = flag.Bool("dashboard", false, "serve a live progress dashboard while building/marking")
	flag.Parse()
}

func loadConfig() (*config.CheckerConfig, error) {
	if *configPath == "" {
		return config.Default(), nil
	}
	return config.Load(*configPath)
}

// renderFunc renders one scenario's already-built, already-marked result;
// V is erased behind this closure so a single non-generic runApp can
// dispatch to any scenario by name.
type renderFunc func(w io.Writer, highlightColor string) error

func runApp() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var progressCh chan dashboard.Progress
	if *runDashboard {
		progressCh = make(chan dashboard.Progress, 16)
		srv, err := dashboard.New(appCtx, cfg.Dashboard.Addr, progressCh)
		if err != nil {
			return err
		}
		go func() {
			if err := srv.Serve(); err != nil {
				fmt.Fprintln(os.Stderr, "dashboard:", err)
			}
		}()
	}

	publish := func(p dashboard.Progress) {
		if progressCh == nil {
			return
		}
		select {
		case progressCh <- p:
		default:
		}
	}

	render, err := runScenario(*scenarioName, cfg, publish)
	if err != nil {
		return err
	}

	return render(os.Stdout, cfg.Viz.HighlightColor)
}

// runScenario builds, marks and returns a renderer for the named
// scenario. Each scenario instantiates the generic core with its own
// valuation type; runScenario is the one place that type is erased back
// to a uniform, dispatchable shape.
func runScenario(name string, cfg *config.CheckerConfig, publish func(dashboard.Progress)) (renderFunc, error) {
	switch name {
	case "seq":
		return runSeq(cfg, publish)
	case "ex3":
		return runEx3(cfg, publish)
	case "eu":
		return runEU(cfg, publish)
	case "eg":
		return runEG(cfg, publish)
	default:
		return nil, fmt.Errorf("mcctl: unknown scenario %q", name)
	}
}

type seqVars struct{ x, y, z int }

func runSeq(cfg *config.CheckerConfig, publish func(dashboard.Progress)) (renderFunc, error) {
	always := func(seqVars) bool { return true }
	set := func(f func(*seqVars)) process.Action[seqVars] {
		return func(v seqVars) seqVars { f(&v); return v }
	}

	p0, p1, p2, p3, p4 :=
		process.NewLocation("p0"), process.NewLocation("p1"),
		process.NewLocation("p2"), process.NewLocation("p3"),
		process.NewLocation("p4")

	p := process.Process[seqVars]{
		{Src: p0, Transs: []process.Trans[seqVars]{
			{Label: process.NewLabel("x:=1"), Dst: p1, Guard: always, Action: set(func(v *seqVars) { v.x = 1 })},
		}},
		{Src: p1, Transs: []process.Trans[seqVars]{
			{Label: process.NewLabel("y:=1"), Dst: p2, Guard: always, Action: set(func(v *seqVars) { v.y = 1 })},
		}},
		{Src: p2, Transs: []process.Trans[seqVars]{
			{Label: process.NewLabel("z:=1"), Dst: p3, Guard: always, Action: set(func(v *seqVars) { v.z = 1 })},
		}},
		{Src: p3, Transs: []process.Trans[seqVars]{
			{Label: process.NewLabel("y:=0"), Dst: p4, Guard: always, Action: set(func(v *seqVars) { v.y = 0 })},
		}},
		{Src: p4, Transs: nil},
	}

	l, err := buildWithProgress(seqVars{}, []process.Process[seqVars]{p}, cfg, publish)
	if err != nil {
		return nil, err
	}

	valuate := func(name string, v seqVars) (bool, error) {
		switch name {
		case "x=1":
			return v.x == 1, nil
		case "y>0":
			return v.y > 0, nil
		case "z=0":
			return v.z == 0, nil
		}
		return false, mark.ErrPropositionUnknown
	}
	spec := formula.NewOr(
		formula.NewAnd(formula.NewProp("x=1"), formula.NewProp("y>0")),
		formula.NewNot(formula.NewProp("z=0")),
	)

	result, err := markWithProgress(l, valuate, spec, cfg, publish)
	if err != nil {
		return nil, err
	}

	return func(w io.Writer, color string) error {
		return viz.Render(w, l, result, func(v seqVars) string {
			return fmt.Sprintf("x=%d,y=%d,z=%d", v.x, v.y, v.z)
		}, color)
	}, nil
}

func runEx3(cfg *config.CheckerConfig, publish func(dashboard.Progress)) (renderFunc, error) {
	always := func(int) bool { return true }
	assign := func(n int) process.Action[int] { return func(int) int { return n } }

	p0, p1, p2, p3 :=
		process.NewLocation("p0"), process.NewLocation("p1"),
		process.NewLocation("p2"), process.NewLocation("p3")

	p := process.Process[int]{
		{Src: p0, Transs: []process.Trans[int]{
			{Label: process.NewLabel("x:=1"), Dst: p1, Guard: always, Action: assign(1)},
		}},
		{Src: p1, Transs: []process.Trans[int]{
			{Label: process.NewLabel("x:=2"), Dst: p2, Guard: always, Action: assign(2)},
			{Label: process.NewLabel("x:=3"), Dst: p2, Guard: always, Action: assign(3)},
			{Label: process.NewLabel("x:=4"), Dst: p2, Guard: always, Action: assign(4)},
		}},
		{Src: p2, Transs: []process.Trans[int]{
			{Label: process.NewLabel("x--"), Dst: p3, Guard: always, Action: func(x int) int { return x - 1 }},
		}},
		{Src: p3, Transs: nil},
	}

	l, err := buildWithProgress(0, []process.Process[int]{p}, cfg, publish)
	if err != nil {
		return nil, err
	}

	valuate := func(name string, x int) (bool, error) {
		if name == "x=2" {
			return x == 2, nil
		}
		return false, mark.ErrPropositionUnknown
	}
	spec := formula.NewEX(formula.NewEX(formula.NewEX(formula.NewProp("x=2"))))

	result, err := markWithProgress(l, valuate, spec, cfg, publish)
	if err != nil {
		return nil, err
	}

	return func(w io.Writer, color string) error {
		return viz.Render(w, l, result, func(x int) string { return fmt.Sprintf("x=%d", x) }, color)
	}, nil
}

func runEU(cfg *config.CheckerConfig, publish func(dashboard.Progress)) (renderFunc, error) {
	s := process.NewLocation("s")
	p := process.Process[int]{
		{Src: s, Transs: []process.Trans[int]{
			{Label: process.NewLabel("x:=2x"), Dst: s,
				Guard: func(x int) bool { return x < 16 }, Action: func(x int) int { return 2 * x }},
			{Label: process.NewLabel("x:=2x+1"), Dst: s,
				Guard: func(x int) bool { return x < 16 }, Action: func(x int) int { return 2*x + 1 }},
		}},
	}

	l, err := buildWithProgress(1, []process.Process[int]{p}, cfg, publish)
	if err != nil {
		return nil, err
	}

	valuate := func(name string, x int) (bool, error) {
		switch name {
		case "x=1 or even":
			return x == 1 || x%2 == 0, nil
		case "x>=16 and x%4=0":
			return x >= 16 && x%4 == 0, nil
		}
		return false, mark.ErrPropositionUnknown
	}
	spec := formula.NewEU(formula.NewProp("x=1 or even"), formula.NewProp("x>=16 and x%4=0"))

	result, err := markWithProgress(l, valuate, spec, cfg, publish)
	if err != nil {
		return nil, err
	}

	return func(w io.Writer, color string) error {
		return viz.Render(w, l, result, func(x int) string { return fmt.Sprintf("x=%d", x) }, color)
	}, nil
}

func runEG(cfg *config.CheckerConfig, publish func(dashboard.Progress)) (renderFunc, error) {
	s := process.NewLocation("s")
	p := process.Process[int]{
		{Src: s, Transs: []process.Trans[int]{
			{Label: process.NewLabel("x++"), Dst: s,
				Guard: func(x int) bool { return x < 9 }, Action: func(x int) int { return x + 1 }},
			{Label: process.NewLabel("x:=3"), Dst: s,
				Guard: func(x int) bool { return x == 6 }, Action: func(int) int { return 3 }},
			{Label: process.NewLabel("x:=5"), Dst: s,
				Guard: func(x int) bool { return x == 9 }, Action: func(int) int { return 5 }},
		}},
	}

	l, err := buildWithProgress(1, []process.Process[int]{p}, cfg, publish)
	if err != nil {
		return nil, err
	}

	valuate := func(name string, x int) (bool, error) {
		switch name {
		case "x<=7":
			return x <= 7, nil
		case "x<=4":
			return x <= 4, nil
		}
		return false, mark.ErrPropositionUnknown
	}
	spec := formula.NewEG(formula.NewProp("x<=7"))

	result, err := markWithProgress(l, valuate, spec, cfg, publish)
	if err != nil {
		return nil, err
	}

	return func(w io.Writer, color string) error {
		return viz.Render(w, l, result, func(x int) string { return fmt.Sprintf("x=%d", x) }, color)
	}, nil
}

func buildWithProgress[V comparable](initial V, processes []process.Process[V], cfg *config.CheckerConfig, publish func(dashboard.Progress)) (*lts.LTS[V], error) {
	every := cfg.Marker.ProgressEvery
	return lts.BuildLTS(initial, processes, func(discovered, expanded int) {
		if every > 0 && discovered%every != 0 {
			return
		}
		publish(dashboard.Progress{
			Phase:            dashboard.PhaseBuilding,
			StatesDiscovered: discovered,
			StatesExpanded:   expanded,
		})
	})
}

func markWithProgress[V comparable](l *lts.LTS[V], valuate mark.PropValuator[V], spec formula.Formula, cfg *config.CheckerConfig, publish func(dashboard.Progress)) (*mark.MarkingResult, error) {
	publish(dashboard.Progress{Phase: dashboard.PhaseMarking})
	result, err := mark.Mark(l, valuate, spec, mark.Options{Workers: cfg.Marker.Workers})
	if err != nil {
		publish(dashboard.Progress{Phase: dashboard.PhaseDone, Err: err.Error()})
		return nil, err
	}

	top := 0
	l.ForEachState(func(id lts.StateId, _ lts.State[V]) {
		if result.SatisfiesTop(id) {
			top++
		}
	})
	publish(dashboard.Progress{
		Phase:             dashboard.PhaseDone,
		TotalStates:       l.Len(),
		TopSatisfiedCount: top,
	})
	return result, nil
}

func main() {
	if err := runApp(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
