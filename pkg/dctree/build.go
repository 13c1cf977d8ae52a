package dctree

import (
	"context"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/dctree/pkg/errors"
	"github.com/matzehuels/dctree/pkg/graph"
	"github.com/matzehuels/dctree/pkg/mesh"
	"github.com/matzehuels/dctree/pkg/observability"
	"github.com/matzehuels/dctree/pkg/partition"
	"github.com/matzehuels/dctree/pkg/perm"
)

// DefaultMaxElemPerPart is the leaf size used when Options.MaxElemPerPart is zero.
const DefaultMaxElemPerPart = 200

// DefaultRefinePasses is the refinement effort of the default partitioner.
const DefaultRefinePasses = 4

// Options configures [Build].
type Options struct {
	// MaxElemPerPart is the largest element count of an ordinary leaf.
	// Zero selects DefaultMaxElemPerPart.
	MaxElemPerPart int

	// Workers bounds the number of goroutines building subtrees concurrently.
	// Zero selects runtime.GOMAXPROCS(0). The result does not depend on it.
	Workers int

	// Partitioner splits nodal graphs. It is always called through
	// partition.Locked. Nil selects partition.Bisection.
	Partitioner partition.Partitioner

	// Logger receives debug output for every partitioner call. Nil discards.
	Logger *log.Logger
}

func (o Options) withDefaults() Options {
	if o.MaxElemPerPart == 0 {
		o.MaxElemPerPart = DefaultMaxElemPerPart
	}
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	if o.Partitioner == nil {
		o.Partitioner = partition.Bisection{RefinePasses: DefaultRefinePasses}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return o
}

// Build constructs the D&C tree of m.
//
// The rows of m.Conn are reordered in place into tree order; node ids keep
// their original 1-based numbering. m is write-locked while the tree is built,
// so concurrent readers using [mesh.Mesh.View] never observe 0-based ids.
//
// Build returns an error only for an invalid mesh or options. Construction
// itself cannot fail; a broken range invariant panics.
func Build(ctx context.Context, m *mesh.Mesh, opts Options) (tree *Tree, err error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()
	if err := errors.ValidatePositive("max elements per part", opts.MaxElemPerPart); err != nil {
		return nil, err
	}

	nbElem, nbNodes := m.NbElem(), m.NbNodes
	hooks := observability.Build()
	hooks.OnBuildStart(ctx, nbElem, nbNodes)
	start := time.Now()
	defer func() {
		leaves := 0
		if tree != nil {
			leaves = len(tree.Leaves())
		}
		hooks.OnBuildComplete(ctx, nbElem, nbNodes, leaves, time.Since(start), err)
	}()

	b := &builder{
		ctx:     ctx,
		maxElem: opts.MaxElemPerPart,
		dim:     m.Dim,
		part:    partition.Locked(opts.Partitioner),
		fork:    newForker(opts.Workers),
		logger:  opts.Logger,
	}
	m.ZeroBased(func(conn []int) {
		b.conn = conn
		tree = b.run(nbElem, nbNodes)
		b.conn = nil
	})
	tree.MaxElemPerPart = opts.MaxElemPerPart
	tree.BuildID = uuid.NewString()
	number(tree.Root)

	opts.Logger.Debug("built tree",
		"elements", nbElem,
		"nodes", nbNodes,
		"treeNodes", tree.Len(),
		"partitionerCalls", b.calls.Load(),
		"elapsed", time.Since(start).Round(time.Millisecond))
	return tree, nil
}

// run partitions the global nodal graph and builds the tree from the root.
// b.conn holds 0-based ids.
func (b *builder) run(nbElem, nbNodes int) *Tree {
	k := ceilDiv(nbElem, b.maxElem)

	var nodePart []int
	if k > 1 {
		nodePart = b.partition(graph.FromMesh(b.conn, b.dim, nbNodes), k)
	} else {
		nodePart = make([]int, nbNodes)
	}

	b.elemOrig = perm.Seq(nbElem)
	sc := &scope{
		part:   nodePart,
		sizes:  perm.Sizes(nodePart, k),
		origin: nbElem,
	}
	root := b.build(sc,
		interval{0, k - 1},
		interval{0, nbElem - 1},
		interval{0, nbNodes - 1})

	return &Tree{
		Root:     root,
		ElemPerm: perm.Inverse(b.elemOrig),
		NodePerm: perm.FromPartition(nodePart, k),
		NbElem:   nbElem,
		NbNodes:  nbNodes,
	}
}

// partition runs the locked partitioner on g and checks its output.
func (b *builder) partition(g *graph.Graph, k int) []int {
	hooks := observability.Build()
	nv := g.NumVertices()
	hooks.OnPartitionStart(b.ctx, nv, k)
	start := time.Now()

	part, cut := b.part.Partition(g, k)

	elapsed := time.Since(start)
	hooks.OnPartitionComplete(b.ctx, nv, k, cut, elapsed)
	b.calls.Add(1)
	b.logger.Debug("partitioned graph",
		"vertices", nv,
		"edges", g.NumEdges(),
		"parts", k,
		"edgecut", cut,
		"elapsed", elapsed)

	if len(part) != nv {
		panicf("partitioner returned %d ids for %d vertices", len(part), nv)
	}
	for v, p := range part {
		if p < 0 || p >= k {
			panicf("partitioner put vertex %d in part %d outside [0,%d)", v, p, k)
		}
	}
	return part
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
