// Package dctree builds Divide-and-Conquer (D&C) decomposition trees over
// unstructured meshes.
//
// # Overview
//
// A D&C tree lets a solver sweep a mesh in parallel without locking shared
// node data. Each tree node covers a contiguous range of elements and nodes in
// the renumbered mesh. An internal node has two ordinary children, which touch
// disjoint sets of nodes and can run concurrently, plus an optional separator
// subtree holding the elements that touch nodes of both children. The
// separator must run after both children finish.
//
// # Construction
//
// [Build] works in four steps:
//
//  1. Build the nodal graph of the mesh and split it into
//     k = ceil(nbElem / MaxElemPerPart) parts with the configured
//     [partition.Partitioner].
//  2. Derive the node permutation from the part ids, so each part's nodes are
//     contiguous in ascending part order.
//  3. Recursively halve the part-id interval. Elements whose nodes all fall in
//     the lower half go left, elements entirely in the upper half go right, and
//     elements touching both halves are moved to the end of the range and
//     partitioned again on their own graph to form the separator subtree.
//  4. Record where every element ended up as the element permutation.
//
// Recursive branches run as fork-join pairs on at most Workers goroutines.
// Every branch reorders a disjoint slice of the connectivity and permutation
// arrays, so the only shared lock is the one that serializes partitioner
// calls. The resulting tree and permutations do not depend on Workers.
//
// # Usage
//
//	m, _ := mesh.ReadFile("cube.mesh")
//	tree, err := dctree.Build(ctx, m, dctree.Options{MaxElemPerPart: 200})
//	if err != nil {
//	    return err
//	}
//	err = dctree.Traverse(ctx, tree.Root, seqOp, vecOp, runtime.NumCPU())
//
// On return, m.Conn rows are in tree order: row tree.ElemPerm[e] holds the
// nodes of original element e. Node ids are still 1-based and in the original
// numbering. Callers that lay out nodal data in tree order rewrite them with
// [perm.Renumber] and tree.NodePerm.
//
// # Invariants
//
// Broken range bookkeeping during construction is a programming error, not an
// input error: it panics with a "dctree:" message. Malformed meshes are
// rejected by [Build] before construction starts.
//
// [partition.Partitioner]: github.com/matzehuels/dctree/pkg/partition.Partitioner
// [perm.Renumber]: github.com/matzehuels/dctree/pkg/perm.Renumber
package dctree
