package dctree

import "context"

// Args are the ranges passed to a leaf operation.
type Args struct {
	FirstElem, LastElem int
	FirstNode, LastNode int
}

// Args returns the ranges of n.
func (n *Node) Args() Args {
	return Args{
		FirstElem: n.FirstElem,
		LastElem:  n.LastElem,
		FirstNode: n.FirstNode,
		LastNode:  n.LastNode,
	}
}

// Op processes the elements of one leaf.
type Op func(Args) error

// Traverse runs the leaves of root on up to workers goroutines.
//
// Ordinary leaves go to vecOp and separator leaves go to seqOp. The two
// ordinary children of a node run concurrently; its separator subtree starts
// only after both have finished. Leaves without elements are skipped.
//
// The first error returned by an operation stops the traversal of the
// remaining leaves and is returned. Cancelling ctx does the same.
func Traverse(ctx context.Context, root *Node, seqOp, vecOp Op, workers int) error {
	if root == nil {
		return nil
	}
	t := &traversal{ctx: ctx, fork: newForker(max(workers, 1)), seqOp: seqOp, vecOp: vecOp}
	return t.visit(root)
}

type traversal struct {
	ctx          context.Context
	fork         *forker
	seqOp, vecOp Op
}

func (t *traversal) visit(n *Node) error {
	if err := t.ctx.Err(); err != nil {
		return err
	}
	if n.IsLeaf() {
		if n.NbElem() == 0 {
			return nil
		}
		if n.Sep {
			return t.seqOp(n.Args())
		}
		return t.vecOp(n.Args())
	}

	err := t.fork.both(
		func() error { return t.visit(n.Left) },
		func() error { return t.visit(n.Right) },
	)
	if err != nil {
		return err
	}
	if n.Separator != nil {
		return t.visit(n.Separator)
	}
	return nil
}
