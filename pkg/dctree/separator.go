package dctree

import "github.com/matzehuels/dctree/pkg/graph"

// subdivide builds the subtree of an element range that is not covered by the
// current partition: the separator of a split, or a leaf that came out too
// large. The range gets its own nodal graph over a local numbering of the
// nodes it touches, which is partitioned into ceil(n/maxElem) parts.
//
// Every node of the subtree keeps the node range passed in. The subtree's
// elements touch nodes scattered over that range, not a contiguous block.
func (b *builder) subdivide(elems, nodes interval, sep bool) *Node {
	n := elems.len()
	k := ceilDiv(n, b.maxElem)
	if k < 2 {
		return newLeaf(elems, nodes, sep)
	}

	rows := b.conn[elems.first*b.dim : (elems.last+1)*b.dim]
	local, ids := graph.Localize(rows)
	g := graph.FromMesh(local, b.dim, len(ids))

	sc := &scope{
		local:  local,
		base:   elems.first,
		part:   b.partition(g, k),
		sep:    sep,
		origin: n,
	}
	return b.build(sc, interval{0, k - 1}, elems, nodes)
}
