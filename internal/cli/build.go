package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dctree/pkg/dctree"
	"github.com/matzehuels/dctree/pkg/mesh"
	"github.com/matzehuels/dctree/pkg/perm"
	"github.com/matzehuels/dctree/pkg/treeio"
)

// buildOpts holds the command-line flags for the build command.
type buildOpts struct {
	output    string // tree file path (default: mesh path with .dct extension)
	reordered string // optional path for the mesh in tree order
	maxElem   int    // leaf size override (0 = config)
	workers   int    // worker override (0 = config)
	noCache   bool   // skip the tree store
}

// buildCommand creates the build command.
func (c *CLI) buildCommand() *cobra.Command {
	var opts buildOpts

	cmd := &cobra.Command{
		Use:   "build [mesh]",
		Short: "Build the D&C tree of a mesh",
		Long: `Build the D&C tree of a mesh file.

The mesh is partitioned into ceil(elements / max-elem) parts and recursively
split into a tree. The tree and both permutations are written to a .dct file
next to the mesh unless --output is given.

Trees are kept in the configured store keyed by mesh path and size, so
rebuilding an unchanged mesh is instant. Use --no-cache to force a rebuild.

With --reordered, the mesh is also written in tree order with renumbered
nodes, ready for a solver that lays out its arrays by tree ranges.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBuild(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "tree output file")
	cmd.Flags().StringVar(&opts.reordered, "reordered", "", "also write the mesh in tree order to this file")
	cmd.Flags().IntVar(&opts.maxElem, "max-elem", 0, "maximum elements per leaf (default from config)")
	cmd.Flags().IntVarP(&opts.workers, "workers", "j", 0, "build goroutines (default from config)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the tree store")

	return cmd
}

// runBuild loads the mesh, builds or fetches its tree and writes the outputs.
func (c *CLI) runBuild(ctx context.Context, input string, opts buildOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if opts.maxElem != 0 {
		cfg.MaxElemPerPart = opts.maxElem
	}
	if opts.workers != 0 {
		cfg.Workers = opts.workers
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	m, err := mesh.ReadFile(input)
	if err != nil {
		return err
	}
	digest := m.Digest()
	logger.Debug("loaded mesh", meshFields(m)...)

	st, err := openStore(ctx, cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer st.Close()

	key := treeio.Key(input, m.NbElem(), m.NbNodes)
	tree, cached, err := treeio.Load(ctx, st, key, digest, m.NbElem(), m.NbNodes)
	if err != nil {
		logger.Warn("ignoring stored tree", "key", key, "err", err)
		cached = false
	}
	if cached && tree.MaxElemPerPart != cfg.MaxElemPerPart {
		logger.Debug("stored tree has a different leaf size", "stored", tree.MaxElemPerPart, "want", cfg.MaxElemPerPart)
		cached = false
	}

	if cached {
		// Put the rows where Build would have put them.
		perm.Permute2D(m.Conn, tree.ElemPerm, m.Dim)
	} else {
		tree, err = buildTree(ctx, logger, m, cfg.BuildOptions())
		if err != nil {
			return err
		}
		if err := treeio.Save(ctx, st, key, digest, tree); err != nil {
			logger.Warn("could not store tree", "err", err)
		}
	}

	output := opts.output
	if output == "" {
		output = withExt(input, treeExt)
	}
	if err := treeio.WriteFile(output, tree); err != nil {
		return err
	}

	printSuccess("Built D&C tree for %d elements", tree.NbElem)
	printTreeStats(tree.Stats(), cached)
	printFile(output)

	if opts.reordered != "" {
		perm.Renumber(m.Conn, tree.NodePerm, 1)
		if err := mesh.WriteFile(opts.reordered, m); err != nil {
			return err
		}
		printFile(opts.reordered)
	}

	printNewline()
	printNextStep("Inspect it", fmt.Sprintf("%s inspect %s", appName, output))
	return nil
}

// buildTree runs dctree.Build with a spinner unless debug logs are shown.
func buildTree(ctx context.Context, logger *log.Logger, m *mesh.Mesh, opts dctree.Options) (*dctree.Tree, error) {
	opts.Logger = logger
	prog := newProgress(logger, "built tree")

	var spinner *Spinner
	if logger.GetLevel() > log.DebugLevel {
		spinner = newSpinnerWithContext(ctx, fmt.Sprintf("Partitioning %d elements...", m.NbElem()))
		spinner.Start()
	}
	tree, err := dctree.Build(ctx, m, opts)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return nil, err
	}

	prog.done(treeFields(tree, "workers", opts.Workers)...)
	return tree, nil
}
