package dctree

import (
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// forker runs pairs of tasks as fork-join pairs on a bounded number of
// goroutines. The calling goroutine always counts as one worker; a pair only
// forks when one of the remaining workers-1 slots is free, and otherwise runs
// inline. Nested pairs can therefore never block waiting for a slot.
type forker struct {
	sem *semaphore.Weighted
}

func newForker(workers int) *forker {
	return &forker{sem: semaphore.NewWeighted(int64(max(workers-1, 0)))}
}

// both runs a and b and waits for both. It returns the first non-nil error,
// preferring a's.
func (f *forker) both(a, b func() error) error {
	if !f.sem.TryAcquire(1) {
		if err := a(); err != nil {
			return err
		}
		return b()
	}

	var g errgroup.Group
	g.Go(func() error {
		defer f.sem.Release(1)
		return a()
	})
	errB := b()
	if err := g.Wait(); err != nil {
		return err
	}
	return errB
}
