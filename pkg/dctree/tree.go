package dctree

import "slices"

// Kind is the variant of a tree node.
type Kind int

const (
	// Internal nodes have two ordinary children and an optional separator.
	Internal Kind = iota
	// Leaf nodes are processed by the vectorizable operation.
	Leaf
	// SeparatorLeaf nodes touch nodes owned by both siblings of an ancestor
	// and are processed by the sequential operation.
	SeparatorLeaf
)

func (k Kind) String() string {
	switch k {
	case Internal:
		return "internal"
	case Leaf:
		return "leaf"
	case SeparatorLeaf:
		return "separator-leaf"
	default:
		return "unknown"
	}
}

// Node is a node of a D&C tree.
//
// Ranges are inclusive and expressed in the permuted numbering. An empty range
// has Last == First-1. A node exclusively owns its children.
type Node struct {
	ID int

	FirstElem, LastElem int
	FirstNode, LastNode int

	// Sep is set on every node of a separator subtree.
	Sep bool

	// Left and Right are both nil for leaves and both set for internal nodes.
	Left, Right *Node
	// Separator holds the elements shared by Left and Right. It runs after
	// both of them. Nil when no element straddles the split.
	Separator *Node
}

// Kind returns the variant of n.
func (n *Node) Kind() Kind {
	switch {
	case n.Left != nil:
		return Internal
	case n.Sep:
		return SeparatorLeaf
	default:
		return Leaf
	}
}

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool { return n.Left == nil }

// NbElem returns the number of elements covered by n.
func (n *Node) NbElem() int { return n.LastElem - n.FirstElem + 1 }

// NbNodes returns the number of nodes covered by n.
func (n *Node) NbNodes() int { return n.LastNode - n.FirstNode + 1 }

// Children returns the children of n in execution order: left, right,
// separator. Missing children are skipped.
func (n *Node) Children() []*Node {
	if n.IsLeaf() {
		return nil
	}
	if n.Separator == nil {
		return []*Node{n.Left, n.Right}
	}
	return []*Node{n.Left, n.Right, n.Separator}
}

// Walk visits n and its subtree in preorder (node, left, right, separator),
// passing each node's depth. Walk stops early when fn returns false.
func Walk(n *Node, fn func(n *Node, depth int) bool) {
	walk(n, 0, fn)
}

func walk(n *Node, depth int, fn func(*Node, int) bool) bool {
	if n == nil {
		return true
	}
	if !fn(n, depth) {
		return false
	}
	for _, c := range n.Children() {
		if !walk(c, depth+1, fn) {
			return false
		}
	}
	return true
}

// Tree is a built D&C tree together with the permutations that map the
// original mesh numbering onto the tree's ranges.
type Tree struct {
	Root *Node

	// ElemPerm[e] is the position of original element e in tree order.
	ElemPerm []int
	// NodePerm[v] is the position of original node v in tree order.
	NodePerm []int

	NbElem         int
	NbNodes        int
	MaxElemPerPart int

	// BuildID identifies one construction run. It is not part of the tree's
	// structure and is ignored by [Equal].
	BuildID string
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	count := 0
	Walk(t.Root, func(*Node, int) bool {
		count++
		return true
	})
	return count
}

// Leaves returns the leaves in preorder.
func (t *Tree) Leaves() []*Node {
	var leaves []*Node
	Walk(t.Root, func(n *Node, _ int) bool {
		if n.IsLeaf() {
			leaves = append(leaves, n)
		}
		return true
	})
	return leaves
}

// number assigns preorder ids starting at 0.
func number(root *Node) {
	id := 0
	Walk(root, func(n *Node, _ int) bool {
		n.ID = id
		id++
		return true
	})
}

// Equal reports whether a and b have the same sizes, permutations, topology,
// ranges, flags and ids.
func Equal(a, b *Tree) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.NbElem != b.NbElem || a.NbNodes != b.NbNodes || a.MaxElemPerPart != b.MaxElemPerPart {
		return false
	}
	if !slices.Equal(a.ElemPerm, b.ElemPerm) || !slices.Equal(a.NodePerm, b.NodePerm) {
		return false
	}
	return equalNode(a.Root, b.Root)
}

func equalNode(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.ID != b.ID || a.Sep != b.Sep ||
		a.FirstElem != b.FirstElem || a.LastElem != b.LastElem ||
		a.FirstNode != b.FirstNode || a.LastNode != b.LastNode {
		return false
	}
	return equalNode(a.Left, b.Left) &&
		equalNode(a.Right, b.Right) &&
		equalNode(a.Separator, b.Separator)
}
