package dctree

// Stats summarizes the shape of a tree.
type Stats struct {
	Nodes           int
	Internal        int
	Leaves          int
	SeparatorLeaves int
	EmptyLeaves     int
	Depth           int

	MinLeafElems  int
	MaxLeafElems  int
	MeanLeafElems float64

	// SeparatorElems counts elements in separator leaves.
	SeparatorElems int
	// OversizedLeaves counts leaves above the tree's MaxElemPerPart. They
	// appear when a range cannot be split any further.
	OversizedLeaves int
}

// Stats walks the tree and returns its shape statistics.
func (t *Tree) Stats() Stats {
	var s Stats
	if t.Root == nil {
		return s
	}

	total := 0
	s.MinLeafElems = -1
	Walk(t.Root, func(n *Node, depth int) bool {
		s.Nodes++
		s.Depth = max(s.Depth, depth)
		if !n.IsLeaf() {
			s.Internal++
			return true
		}

		size := n.NbElem()
		s.Leaves++
		total += size
		if s.MinLeafElems < 0 || size < s.MinLeafElems {
			s.MinLeafElems = size
		}
		s.MaxLeafElems = max(s.MaxLeafElems, size)
		if size == 0 {
			s.EmptyLeaves++
		}
		if n.Sep {
			s.SeparatorLeaves++
			s.SeparatorElems += size
		}
		if t.MaxElemPerPart > 0 && size > t.MaxElemPerPart {
			s.OversizedLeaves++
		}
		return true
	})
	s.MeanLeafElems = float64(total) / float64(s.Leaves)
	return s
}
