package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dctree/pkg/errors"
	"github.com/matzehuels/dctree/pkg/mesh"
)

// generateCommand creates the generate command for structured test meshes.
func (c *CLI) generateCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "generate [nx] [ny] [nz]",
		Short: "Write a structured quad or hex mesh",
		Long: `Write a structured mesh in dctree's text mesh format.

Two sizes produce an nx x ny grid of quadrilaterals, three sizes an
nx x ny x nz grid of hexahedra.`,
		Example: `  dctree generate 64 64 -o square.mesh
  dctree generate 16 16 16 -o cube.mesh`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			sizes := make([]int, len(args))
			for i, a := range args {
				n, err := strconv.Atoi(a)
				if err != nil || n < 1 {
					return errors.New(errors.ErrCodeInvalidInput, "grid size %q must be a positive integer", a)
				}
				sizes[i] = n
			}

			var m *mesh.Mesh
			if len(sizes) == 2 {
				m = mesh.Grid2D(sizes[0], sizes[1])
			} else {
				m = mesh.Grid3D(sizes[0], sizes[1], sizes[2])
			}

			if output == "" {
				output = defaultMeshName(sizes)
			}
			if err := mesh.WriteFile(output, m); err != nil {
				return err
			}
			printSuccess("Generated %d elements over %d nodes", m.NbElem(), m.NbNodes)
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output mesh file (default: grid-<sizes>.mesh)")
	return cmd
}

func defaultMeshName(sizes []int) string {
	name := "grid"
	for _, n := range sizes {
		name += fmt.Sprintf("-%d", n)
	}
	return name + ".mesh"
}
