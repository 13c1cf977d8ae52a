// Package partition defines the k-way graph partitioning capability used by
// the D&C tree builder, and provides a deterministic implementation of it.
//
// # The capability
//
// A [Partitioner] assigns every vertex of a [graph.Graph] to one of k parts,
// balancing the number of vertices per part, and reports the resulting edge
// cut. The builder accepts whatever assignment it gets back, including parts
// that end up empty.
//
// Partitioners are treated as non-reentrant. [Locked] wraps one behind a
// single process-wide mutex, so calls issued from concurrently running
// recursive branches are serialized while the graph construction that feeds
// them stays parallel:
//
//	p := partition.Locked(partition.Bisection{RefinePasses: 4})
//	part, cut := p.Partition(g, 8)
//
// # Recursive bisection
//
// [Bisection] splits the vertex set in two by breadth-first growth from a
// pseudo-peripheral vertex, sized so each half gets a share proportional to the
// number of parts it will hold, optionally improves the cut with boundary
// swaps, and recurses on each half. The result depends only on the graph and
// k, so repeated calls give identical assignments.
//
// [graph.Graph]: github.com/matzehuels/dctree/pkg/graph.Graph
package partition
