package dctree

import (
	"github.com/matzehuels/dctree/pkg/errors"
	"github.com/matzehuels/dctree/pkg/perm"
)

// Validate checks the structural invariants of t:
//   - both permutations are bijections of the right length
//   - the root covers every element and node
//   - the children of an internal node cover its element range in order
//     left, right, separator, without overlap
//   - the ordinary children either split the parent's node range or both
//     keep it, and a separator subtree keeps it
//   - separator subtrees only contain separator nodes
//   - an internal node holds more than MaxElemPerPart elements
//   - ids follow preorder
//
// Leaves above MaxElemPerPart are legal: a part that cannot be split is
// kept whole and counted by [Stats.OversizedLeaves].
//
// It returns an error with code CORRUPT_TREE describing the first violation.
func Validate(t *Tree) error {
	if t == nil || t.Root == nil {
		return corrupt("tree has no root")
	}
	if t.MaxElemPerPart < 0 {
		return corrupt("negative leaf size %d", t.MaxElemPerPart)
	}
	if len(t.ElemPerm) != t.NbElem || !perm.IsBijection(t.ElemPerm) {
		return corrupt("element permutation is not a bijection on [0,%d)", t.NbElem)
	}
	if len(t.NodePerm) != t.NbNodes || !perm.IsBijection(t.NodePerm) {
		return corrupt("node permutation is not a bijection on [0,%d)", t.NbNodes)
	}

	r := t.Root
	if r.FirstElem != 0 || r.LastElem != t.NbElem-1 {
		return corrupt("root covers elements [%d,%d], want [0,%d]", r.FirstElem, r.LastElem, t.NbElem-1)
	}
	if r.FirstNode != 0 || r.LastNode != t.NbNodes-1 {
		return corrupt("root covers nodes [%d,%d], want [0,%d]", r.FirstNode, r.LastNode, t.NbNodes-1)
	}

	next := 0
	var err error
	Walk(r, func(n *Node, _ int) bool {
		if n.ID != next {
			err = corrupt("node %d found at preorder position %d", n.ID, next)
			return false
		}
		next++
		err = checkNode(n, t)
		return err == nil
	})
	return err
}

func checkNode(n *Node, t *Tree) error {
	if n.LastElem < n.FirstElem-1 || n.FirstElem < 0 || n.LastElem >= t.NbElem {
		return corrupt("node %d: bad element range [%d,%d]", n.ID, n.FirstElem, n.LastElem)
	}
	if n.LastNode < n.FirstNode-1 || n.FirstNode < 0 || n.LastNode >= t.NbNodes {
		return corrupt("node %d: bad node range [%d,%d]", n.ID, n.FirstNode, n.LastNode)
	}

	if (n.Left == nil) != (n.Right == nil) {
		return corrupt("node %d: has only one ordinary child", n.ID)
	}
	if n.IsLeaf() {
		if n.Separator != nil {
			return corrupt("node %d: leaf with a separator child", n.ID)
		}
		return nil
	}
	if t.MaxElemPerPart > 0 && n.NbElem() <= t.MaxElemPerPart {
		return corrupt("node %d: split %d elements, at most %d per leaf", n.ID, n.NbElem(), t.MaxElemPerPart)
	}

	l, r, s := n.Left, n.Right, n.Separator
	if l.FirstElem != n.FirstElem || r.FirstElem != l.LastElem+1 {
		return corrupt("node %d: children do not tile elements [%d,%d]", n.ID, n.FirstElem, n.LastElem)
	}
	end := r.LastElem
	if s != nil {
		if s.FirstElem != r.LastElem+1 {
			return corrupt("node %d: separator does not follow the right child", n.ID)
		}
		end = s.LastElem
	}
	if end != n.LastElem {
		return corrupt("node %d: children end at element %d, want %d", n.ID, end, n.LastElem)
	}

	split := l.FirstNode == n.FirstNode && r.FirstNode == l.LastNode+1 && r.LastNode == n.LastNode
	if !split && !(sameNodes(l, n) && sameNodes(r, n)) {
		return corrupt("node %d: children neither split nor keep nodes [%d,%d]", n.ID, n.FirstNode, n.LastNode)
	}
	if s != nil {
		if !sameNodes(s, n) {
			return corrupt("node %d: separator does not keep the parent's node range", n.ID)
		}
		if !s.Sep {
			return corrupt("node %d: separator child is not flagged", n.ID)
		}
	}
	if n.Sep && (!l.Sep || !r.Sep) {
		return corrupt("node %d: unflagged child inside a separator subtree", n.ID)
	}
	return nil
}

func sameNodes(a, b *Node) bool {
	return a.FirstNode == b.FirstNode && a.LastNode == b.LastNode
}

func corrupt(format string, args ...any) error {
	return errors.New(errors.ErrCodeCorruptTree, format, args...)
}
