// Package pkg provides the libraries behind dctree, a builder of
// divide-and-conquer trees over unstructured meshes.
//
// # Overview
//
// A D&C tree splits the elements of a mesh so that the two ordinary children
// of every internal node touch disjoint sets of nodes. Work on those children
// can run in parallel without locks; elements touching both sides go to a
// separator child that runs afterwards. The pkg directory is organized as:
//
//  1. [mesh] - Element-to-node connectivity, text format and test grids
//  2. [graph] - Nodal graphs built from connectivity
//  3. [partition] - Graph partitioners and the global partitioner lock
//  4. [perm] - Permutations and in-place array reordering
//  5. [dctree] - Tree construction, traversal, statistics and validation
//  6. [treeio] - Binary tree format and store integration
//  7. [store] - File, Redis and MongoDB stores for built trees
//  8. [render] - Graphviz diagrams of trees
//
// # Architecture
//
// The typical data flow:
//
//	mesh file
//	     ↓
//	[mesh] package (read, validate)
//	     ↓
//	[dctree] package (partition, recurse, reorder rows)
//	     ↓
//	[treeio] package (encode tree + permutations)
//	     ↓
//	.dct file / [store] backend
//
// # Quick Start
//
//	m, _ := mesh.ReadFile("wing.mesh")
//	tree, _ := dctree.Build(ctx, m, dctree.Options{MaxElemPerPart: 200})
//
//	// m.Conn is now in tree order; each leaf covers a contiguous range.
//	err := dctree.Traverse(ctx, tree.Root, assembleLeaf, assembleSeparator, 8)
//
//	_ = treeio.WriteFile("wing.dct", tree)
//
// # Supporting Packages
//
// [config] - TOML configuration for build parameters and the store backend.
//
// [errors] - Coded errors shared by all packages.
//
// [observability] - Hooks for build and store events.
//
// [buildinfo] - Version information set via ldflags.
//
// # Testing
//
//	go test ./pkg/...              # All tests
//	go test ./pkg/dctree/...       # Specific package
//	go test -run Example ./pkg/... # Examples only
//
// [mesh]: https://pkg.go.dev/github.com/matzehuels/dctree/pkg/mesh
// [graph]: https://pkg.go.dev/github.com/matzehuels/dctree/pkg/graph
// [partition]: https://pkg.go.dev/github.com/matzehuels/dctree/pkg/partition
// [perm]: https://pkg.go.dev/github.com/matzehuels/dctree/pkg/perm
// [dctree]: https://pkg.go.dev/github.com/matzehuels/dctree/pkg/dctree
// [treeio]: https://pkg.go.dev/github.com/matzehuels/dctree/pkg/treeio
// [store]: https://pkg.go.dev/github.com/matzehuels/dctree/pkg/store
// [render]: https://pkg.go.dev/github.com/matzehuels/dctree/pkg/render
// [config]: https://pkg.go.dev/github.com/matzehuels/dctree/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/dctree/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/dctree/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/dctree/pkg/buildinfo
package pkg
