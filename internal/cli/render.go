package cli

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dctree/pkg/errors"
	"github.com/matzehuels/dctree/pkg/render"
)

const (
	formatDOT = "dot"
	formatSVG = "svg"
	formatPDF = "pdf"
	formatPNG = "png"
)

var renderFormats = []string{formatDOT, formatSVG, formatPDF, formatPNG}

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string  // output file path (default: tree path with format extension)
	format   string  // dot, svg, pdf or png
	meshPath string  // optional mesh to check the tree against
	scale    float64 // PNG scale factor
	render.Options
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{format: formatSVG, scale: 2}

	cmd := &cobra.Command{
		Use:   "render [tree.dct]",
		Short: "Draw a tree as a diagram",
		Long: `Draw a tree as a Graphviz diagram.

Internal nodes are white, ordinary leaves blue and separator leaves orange;
separator subtrees hang off dashed edges. Use --max-depth to cut large trees.

DOT and SVG are produced in-process. PDF and PNG need rsvg-convert (librsvg).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(renderFormats, opts.format) {
				return errors.New(errors.ErrCodeInvalidInput, "unknown format %q (want one of %v)", opts.format, renderFormats)
			}
			return runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: dot, svg, pdf, png")
	cmd.Flags().StringVar(&opts.meshPath, "mesh", "", "check the tree against this mesh")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "show element and node ranges")
	cmd.Flags().IntVar(&opts.MaxDepth, "max-depth", 0, "omit nodes below this depth (0 = all)")

	return cmd
}

func runRender(ctx context.Context, path string, opts renderOpts) error {
	tree, err := readTree(path, opts.meshPath)
	if err != nil {
		return err
	}

	data, err := renderTree(ctx, render.ToDOT(tree, opts.Options), opts)
	if err != nil {
		return err
	}

	output := opts.output
	if output == "" {
		output = withExt(path, "."+opts.format)
	}
	if err := os.WriteFile(output, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	printSuccess("Rendered %d tree nodes", tree.Len())
	printFile(output)
	return nil
}

func renderTree(ctx context.Context, dot string, opts renderOpts) ([]byte, error) {
	if opts.format == formatDOT {
		return []byte(dot), nil
	}
	svg, err := render.RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	switch opts.format {
	case formatPDF:
		return render.ToPDF(ctx, svg)
	case formatPNG:
		return render.ToPNG(ctx, svg, opts.scale)
	default:
		return svg, nil
	}
}
