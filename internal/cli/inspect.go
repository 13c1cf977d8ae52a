package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dctree/pkg/dctree"
	"github.com/matzehuels/dctree/pkg/errors"
	"github.com/matzehuels/dctree/pkg/mesh"
	"github.com/matzehuels/dctree/pkg/treeio"
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		meshPath string
		leaves   bool
	)

	cmd := &cobra.Command{
		Use:   "inspect [tree.dct]",
		Short: "Print statistics of a stored tree",
		Long: `Print statistics of a stored tree.

The tree is fully decoded and validated. With --mesh, it is also checked
against the size of the given mesh. With --leaves, every leaf is listed
with its element and node ranges.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd.Context(), args[0], meshPath, leaves)
		},
	}

	cmd.Flags().StringVar(&meshPath, "mesh", "", "check the tree against this mesh")
	cmd.Flags().BoolVar(&leaves, "leaves", false, "list every leaf")

	return cmd
}

func runInspect(ctx context.Context, path, meshPath string, listLeaves bool) error {
	tree, err := readTree(path, meshPath)
	if err != nil {
		return err
	}
	loggerFromContext(ctx).Debug("decoded tree", "path", path, "buildID", tree.BuildID)

	s := tree.Stats()
	fmt.Fprintln(out, StyleTitle.Render(path))
	printKeyValue("elements", fmt.Sprint(tree.NbElem))
	printKeyValue("nodes", fmt.Sprint(tree.NbNodes))
	printKeyValue("max per leaf", fmt.Sprint(tree.MaxElemPerPart))
	printKeyValue("build id", tree.BuildID)
	printKeyValue("tree nodes", fmt.Sprintf("%d (%d internal)", s.Nodes, s.Internal))
	printKeyValue("leaves", fmt.Sprintf("%d (%d separator, %d empty)", s.Leaves, s.SeparatorLeaves, s.EmptyLeaves))
	printKeyValue("depth", fmt.Sprint(s.Depth))
	printKeyValue("leaf size", fmt.Sprintf("min %d · mean %.1f · max %d", s.MinLeafElems, s.MeanLeafElems, s.MaxLeafElems))
	printKeyValue("separator elems", fmt.Sprintf("%d (%.1f%%)", s.SeparatorElems, 100*float64(s.SeparatorElems)/float64(max(tree.NbElem, 1))))
	if s.OversizedLeaves > 0 {
		printWarning("%d leaves exceed %d elements", s.OversizedLeaves, tree.MaxElemPerPart)
	}

	if listLeaves {
		printNewline()
		for _, leaf := range tree.Leaves() {
			printLeaf(leaf, tree.MaxElemPerPart)
		}
	}
	return nil
}

// readTree decodes the tree at path, checking it against the mesh at
// meshPath when one is given.
func readTree(path, meshPath string) (*dctree.Tree, error) {
	if meshPath != "" {
		m, err := mesh.ReadFile(meshPath)
		if err != nil {
			return nil, err
		}
		return treeio.ReadFile(path, m.NbElem(), m.NbNodes)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "open %s", path)
	}
	defer f.Close()
	return treeio.Decode(f)
}
