// Package perm provides the permutation and renumbering utilities shared by the
// D&C tree builder and by callers that lay out mesh data in tree order.
//
// # Overview
//
// A permutation here is always an "old to new" mapping: perm[i] is the new
// index of the item that currently sits at index i. Every permutation produced
// by this package is a bijection on [0, n).
//
//   - [FromPartition]: group items contiguously by partition id, stable within
//     a partition
//   - [Sizes]: count items per partition id
//   - [Inverse], [Compose], [IsBijection]: algebra and checks
//   - [Permute1D], [Permute2D]: move values (rows) to their new positions
//   - [Renumber]: rewrite index values inside an array of references
//
// # Positions versus values
//
// [Permute1D] and [Permute2D] move data: after the call, the value that lived
// at position i lives at position perm[i]. [Renumber] leaves positions alone
// and rewrites the values themselves, which is what element connectivity needs
// once the nodes have been renumbered:
//
//	elemPerm, nodePerm := tree.ElemPerm, tree.NodePerm
//	perm.Permute2D(conn, elemPerm, dim) // rows follow the element order
//	perm.Renumber(conn, nodePerm, 1)    // 1-based node ids follow the node order
//	perm.Permute2D(coords, nodePerm, 3) // nodal coordinates follow the node order
//
// Both operations only move or rewrite values, so applying a permutation and
// then its [Inverse] restores the input bit for bit, floating point included.
//
// Sub-ranges are handled with sub-slices: permuting rows [lo, hi) of a matrix
// is Permute2D(tab[lo*dim:hi*dim], p, dim) with a local permutation p.
package perm
