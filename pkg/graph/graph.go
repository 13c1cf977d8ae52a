package graph

// Graph is an undirected simple graph in CSR form.
// Index has NumVertices()+1 entries; Adj holds each edge twice, once per endpoint.
type Graph struct {
	Index []int
	Adj   []int
}

// NumVertices returns the number of vertices.
func (g *Graph) NumVertices() int {
	if len(g.Index) == 0 {
		return 0
	}
	return len(g.Index) - 1
}

// NumEdges returns the number of undirected edges.
func (g *Graph) NumEdges() int { return len(g.Adj) / 2 }

// Degree returns the number of neighbors of v.
func (g *Graph) Degree(v int) int { return g.Index[v+1] - g.Index[v] }

// Neighbors returns the neighbors of v. The slice aliases the graph storage.
func (g *Graph) Neighbors(v int) []int { return g.Adj[g.Index[v]:g.Index[v+1]] }

// adjacencyHint bounds the initial Adj capacity per node. It matches the
// neighbor count of a node in a structured hexahedral mesh; denser meshes grow
// the slice.
const adjacencyHint = 15

// FromMesh builds the nodal graph of a mesh. conn holds dim 0-based node ids
// per element and every id must be in [0, nbNodes). Disconnected and
// degenerate meshes are legal; isolated nodes get no neighbors.
func FromMesh(conn []int, dim, nbNodes int) *Graph {
	nbElem := 0
	if dim > 0 {
		nbElem = len(conn) / dim
	}

	// Node -> incident elements, bucketed with a counting sort.
	ptr := make([]int, nbNodes+1)
	for _, v := range conn {
		ptr[v+1]++
	}
	for i := 1; i <= nbNodes; i++ {
		ptr[i] += ptr[i-1]
	}
	elems := make([]int, ptr[nbNodes])
	next := make([]int, nbNodes)
	copy(next, ptr[:nbNodes])
	for e := 0; e < nbElem; e++ {
		for _, v := range conn[e*dim : (e+1)*dim] {
			elems[next[v]] = e
			next[v]++
		}
	}

	marker := next // bucket cursors are no longer needed
	for i := range marker {
		marker[i] = -1
	}

	g := &Graph{
		Index: make([]int, nbNodes+1),
		Adj:   make([]int, 0, nbNodes*adjacencyHint),
	}
	for v := 0; v < nbNodes; v++ {
		marker[v] = v
		for _, e := range elems[ptr[v]:ptr[v+1]] {
			for _, w := range conn[e*dim : (e+1)*dim] {
				if marker[w] != v {
					marker[w] = v
					g.Adj = append(g.Adj, w)
				}
			}
		}
		g.Index[v+1] = len(g.Adj)
	}
	return g
}

// Localize renumbers the node ids referenced by conn into a dense space.
// It returns the local connectivity (same shape as conn) and the global id of
// each local node, in order of first occurrence.
func Localize(conn []int) (local []int, nodes []int) {
	local = make([]int, len(conn))
	index := make(map[int]int)
	for i, v := range conn {
		id, ok := index[v]
		if !ok {
			id = len(nodes)
			index[v] = id
			nodes = append(nodes, v)
		}
		local[i] = id
	}
	return local, nodes
}
