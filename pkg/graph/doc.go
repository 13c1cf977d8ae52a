// Package graph builds the nodal adjacency graphs that are fed to the graph
// partitioner.
//
// # Overview
//
// A mesh is a set of elements, each listing a fixed number of nodes. The nodal
// graph has one vertex per mesh node and an undirected edge between two nodes
// iff they appear together in at least one element. It is stored in CSR form:
// the neighbors of vertex v are Adj[Index[v]:Index[v+1]].
//
// The graph is ephemeral. A fresh one is built for every partitioning call,
// for the whole mesh or for a separator's elements, and dropped afterwards.
//
// # Construction
//
// [FromMesh] never compares node pairs directly. It first buckets elements by
// node with a two-pass counting sort, then walks each node's incident elements
// and collects neighbors, using a node-indexed marker that stores the id of the
// node currently being expanded. A neighbor is emitted only when its marker
// differs from the current node, so the marker never has to be cleared:
//
//	g := graph.FromMesh(conn, 4, nbNodes)
//	for _, w := range g.Neighbors(v) {
//	    // each neighbor once, never v itself
//	}
//
// # Local numbering
//
// Separator elements reference a scattered subset of the mesh nodes.
// [Localize] renumbers them into a dense [0, n) space in first-occurrence
// order so a small graph can be built over them.
package graph
