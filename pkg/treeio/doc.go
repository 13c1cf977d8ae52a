// Package treeio persists D&C trees in a compact binary format.
//
// # Format
//
// All integers are little-endian.
//
//	magic      [8]byte  "DCTREE01"
//	version    uint32
//	nbElem     int64
//	nbNodes    int64
//	maxElem    int64    leaf size the tree was built with
//	buildID    [16]byte zero when unknown
//	nodeCount  int64
//	nodes      nodeCount records in preorder (node, left, right, separator):
//	             flags   uint8  bit 0 internal, bit 1 has separator, bit 2 separator node
//	             id, firstElem, lastElem, firstNode, lastNode  int64
//	elemPerm   nbElem  int64
//	nodePerm   nbNodes int64
//
// A decoded tree is checked with dctree.Validate before it is returned, so a
// truncated or tampered file is reported as CORRUPT_TREE rather than producing
// a tree with broken ranges. [Read] additionally rejects trees built for a
// mesh of a different size with MESH_MISMATCH.
//
// Trees can be written to a path with [WriteFile] or to any [store.Store]
// with [Save]. A store entry is the SHA-256 digest of the source mesh
// followed by the encoded tree; [Load] treats an entry whose digest differs
// from the current mesh as missing.
//
// [store.Store]: github.com/matzehuels/dctree/pkg/store.Store
package treeio
