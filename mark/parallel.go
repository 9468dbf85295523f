package mark

import (
	"context"
	"runtime"

	channerics "github.com/niceyeti/channerics/channels"
	"golang.org/x/sync/errgroup"
	"github.com/akitsu-sanae/mcctl-go/lts"
)

// evalFunc decides whether a single state satisfies the subformula
// currently being marked.
type evalFunc func(lts.StateId) (bool, error)

// outcome is one state's verdict, fanned in from whichever worker computed
// it.
type outcome struct {
	id lts.StateId
	ok bool
}

// parallelEval evaluates fn over every state id in [0,n), fanning work out
// across workers goroutines and fanning the verdicts back in with
// channerics.Merge, coordinated by an errgroup.
//
// This is sound only for the state-local subformula kinds (Prop, Not,
// And, Or, Impl, EX), where evaluating state s for subformula k reads only
// already-finalised lower-index bits (and, for EX, successor bits, final
// by the post-order unfold contract) and never another state's bit for k
// itself. EU and EG are not dispatched through this path; they mutate a
// shared worklist/monotone set across states and are evaluated
// sequentially (see fixpoint.go).
func parallelEval(n, workers int, fn evalFunc) ([]bool, error) {
	if n == 0 {
		return nil, nil
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > n {
		workers = n
	}

	group, ctx := errgroup.WithContext(context.Background())
	jobs := make(chan lts.StateId)
	chans := make([]<-chan outcome, workers)

	for w := 0; w < workers; w++ {
		ch := make(chan outcome)
		chans[w] = ch
		group.Go(func() error {
			defer close(ch)
			for {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case id, more := <-jobs:
					if !more {
						return nil
					}
					ok, err := fn(id)
					if err != nil {
						return err
					}
					select {
					case ch <- outcome{id: id, ok: ok}:
					case <-ctx.Done():
						return ctx.Err()
					}
				}
			}
		})
	}

	go func() {
		defer close(jobs)
		for i := 0; i < n; i++ {
			select {
			case jobs <- lts.StateId(i):
			case <-ctx.Done():
				return
			}
		}
	}()

	results := make([]bool, n)
	for o := range channerics.Merge(ctx.Done(), chans...) {
		results[o.id] = o.ok
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
