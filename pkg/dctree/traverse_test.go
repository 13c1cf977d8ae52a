package dctree

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/matzehuels/dctree/pkg/mesh"
)

func TestTraverseVisitsEveryElementOnce(t *testing.T) {
	tree := mustBuild(t, mesh.Grid2D(30, 20), Options{MaxElemPerPart: 12})

	for _, workers := range []int{1, 4, 16} {
		visits := make([]atomic.Int32, tree.NbElem)
		var sepLeaves, vecLeaves atomic.Int32
		op := func(kind *atomic.Int32) Op {
			return func(a Args) error {
				kind.Add(1)
				for e := a.FirstElem; e <= a.LastElem; e++ {
					visits[e].Add(1)
				}
				return nil
			}
		}
		if err := Traverse(context.Background(), tree.Root, op(&sepLeaves), op(&vecLeaves), workers); err != nil {
			t.Fatalf("workers=%d: %v", workers, err)
		}
		for e := range visits {
			if n := visits[e].Load(); n != 1 {
				t.Fatalf("workers=%d: element %d visited %d times", workers, e, n)
			}
		}

		var wantSep, wantVec int32
		for _, leaf := range tree.Leaves() {
			switch {
			case leaf.NbElem() == 0:
			case leaf.Sep:
				wantSep++
			default:
				wantVec++
			}
		}
		if sepLeaves.Load() != wantSep || vecLeaves.Load() != wantVec {
			t.Errorf("workers=%d: seq/vec calls = %d/%d, want %d/%d",
				workers, sepLeaves.Load(), vecLeaves.Load(), wantSep, wantVec)
		}
	}
}

func TestTraverseSeparatorRunsLast(t *testing.T) {
	tree := mustBuild(t, mesh.Grid2D(24, 24), Options{MaxElemPerPart: 10})

	type span struct{ start, end int64 }
	var (
		clock atomic.Int64
		mu    sync.Mutex
		spans = make(map[int]span) // keyed by FirstElem
	)
	op := func(a Args) error {
		start := clock.Add(1)
		end := clock.Add(1)
		mu.Lock()
		spans[a.FirstElem] = span{start, end}
		mu.Unlock()
		return nil
	}
	if err := Traverse(context.Background(), tree.Root, op, op, 8); err != nil {
		t.Fatal(err)
	}

	// bounds returns the earliest start and latest end over n's leaves.
	bounds := func(n *Node) (first, last int64, ok bool) {
		Walk(n, func(c *Node, _ int) bool {
			s, found := spans[c.FirstElem]
			if !c.IsLeaf() || c.NbElem() == 0 || !found {
				return true
			}
			if !ok || s.start < first {
				first = s.start
			}
			last = max(last, s.end)
			ok = true
			return true
		})
		return first, last, ok
	}

	Walk(tree.Root, func(n *Node, _ int) bool {
		if n.Separator == nil {
			return true
		}
		sepStart, _, ok := bounds(n.Separator)
		if !ok {
			return true
		}
		for _, c := range []*Node{n.Left, n.Right} {
			if _, end, ok := bounds(c); ok && end > sepStart {
				t.Errorf("node %d: separator started at %d before child %d finished at %d", n.ID, sepStart, c.ID, end)
			}
		}
		return true
	})
}

func TestTraverseStopsOnError(t *testing.T) {
	tree := mustBuild(t, mesh.Grid2D(16, 16), Options{MaxElemPerPart: 8})
	boom := errors.New("boom")

	var calls atomic.Int32
	fail := func(Args) error {
		calls.Add(1)
		return boom
	}
	err := Traverse(context.Background(), tree.Root, fail, fail, 1)
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("ops called %d times after first failure with one worker", n)
	}
}

func TestTraverseCancelled(t *testing.T) {
	tree := mustBuild(t, mesh.Grid2D(8, 8), Options{MaxElemPerPart: 4})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	noop := func(Args) error { return nil }
	if err := Traverse(ctx, tree.Root, noop, noop, 2); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if err := Traverse(ctx, nil, noop, noop, 2); err != nil {
		t.Errorf("nil root: %v", err)
	}
}
