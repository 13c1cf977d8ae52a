package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/dctree/pkg/mesh"
	"github.com/matzehuels/dctree/pkg/perm"
	"github.com/matzehuels/dctree/pkg/treeio"
)

// permuteCommand creates the permute command.
func (c *CLI) permuteCommand() *cobra.Command {
	var (
		output  string
		inverse bool
	)

	cmd := &cobra.Command{
		Use:   "permute [mesh] [tree.dct]",
		Short: "Move a mesh into tree order, or back",
		Long: `Apply a tree's permutations to a mesh.

Elements are moved to their tree positions and node ids are renumbered so
that every tree node's element and node ranges are contiguous. With
--inverse, a mesh in tree order is moved back to the original numbering.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := mesh.ReadFile(args[0])
			if err != nil {
				return err
			}
			tree, err := treeio.ReadFile(args[1], m.NbElem(), m.NbNodes)
			if err != nil {
				return err
			}

			prog := newProgress(loggerFromContext(cmd.Context()), "permuted mesh")
			elemPerm, nodePerm := tree.ElemPerm, tree.NodePerm
			if inverse {
				elemPerm, nodePerm = perm.Inverse(elemPerm), perm.Inverse(nodePerm)
			}
			perm.Permute2D(m.Conn, elemPerm, m.Dim)
			perm.Renumber(m.Conn, nodePerm, 1)

			if output == "" {
				output = args[0]
			}
			if err := mesh.WriteFile(output, m); err != nil {
				return err
			}
			prog.done(meshFields(m, "inverse", inverse)...)
			printSuccess("Permuted %d elements and %d nodes", m.NbElem(), m.NbNodes)
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output mesh file (default: overwrite the input)")
	cmd.Flags().BoolVar(&inverse, "inverse", false, "restore the original order")
	return cmd
}
