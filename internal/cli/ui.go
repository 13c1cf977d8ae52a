package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/dctree/pkg/dctree"
	"github.com/matzehuels/dctree/pkg/errors"
)

// out receives all user-facing command output.
var out io.Writer = os.Stdout

// =============================================================================
// Palette
// =============================================================================

// Leaf colors follow the DOT diagrams of the render command.
var (
	colorAccent    = lipgloss.Color("36")  // teal: titles, spinner
	colorOK        = lipgloss.Color("35")  // green: success, store hits
	colorWarn      = lipgloss.Color("220") // amber: warnings, oversized leaves
	colorFail      = lipgloss.Color("167") // soft red: errors
	colorLeaf      = lipgloss.Color("117") // light blue: ordinary leaves
	colorSeparator = lipgloss.Color("214") // orange: separator leaves
	colorValue     = lipgloss.Color("255")
	colorLabel     = lipgloss.Color("245")
	colorMuted     = lipgloss.Color("240")
)

var (
	// StyleTitle is used for headings such as the tree path in inspect.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)

	// StyleDim is used for secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorMuted)

	styleValue   = lipgloss.NewStyle().Foreground(colorValue)
	styleLabel   = lipgloss.NewStyle().Foreground(colorLabel).Width(16)
	styleOK      = lipgloss.NewStyle().Foreground(colorOK)
	styleWarn    = lipgloss.NewStyle().Foreground(colorWarn)
	styleFail    = lipgloss.NewStyle().Foreground(colorFail)
	styleCode    = lipgloss.NewStyle().Foreground(colorMuted)
	styleCommand = lipgloss.NewStyle().Foreground(colorLeaf)

	styleIconSpinner = lipgloss.NewStyle().Foreground(colorAccent)

	kindStyles = map[dctree.Kind]lipgloss.Style{
		dctree.Internal:      lipgloss.NewStyle().Foreground(colorValue),
		dctree.Leaf:          lipgloss.NewStyle().Foreground(colorLeaf),
		dctree.SeparatorLeaf: lipgloss.NewStyle().Foreground(colorSeparator),
	}
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Status lines
// =============================================================================

func printSuccess(format string, args ...any) {
	fmt.Fprintln(out, styleOK.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	fmt.Fprintln(out, styleWarn.Render(iconWarning)+" "+styleWarn.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	fmt.Fprintln(out, StyleDim.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

func printDetail(format string, args ...any) {
	fmt.Fprintln(out, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile reports a file written by a command.
func printFile(path string) {
	fmt.Fprintln(out, "  "+StyleDim.Render(iconArrow)+" "+styleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Fprintln(out, styleLabel.Render(key)+" "+styleValue.Render(value))
}

func printNextStep(description, cmd string) {
	fmt.Fprintln(out, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

func printNewline() {
	fmt.Fprintln(out)
}

// PrintError writes err to w. Coded errors show their message followed by
// the code, so scripts can grep for e.g. MESH_MISMATCH.
func PrintError(w io.Writer, err error) {
	line := styleFail.Render(iconError) + " " + errors.UserMessage(err)
	if code := errors.GetCode(err); code != "" {
		line += " " + styleCode.Render("["+string(code)+"]")
	}
	fmt.Fprintln(w, line)

	var e *errors.Error
	if stderrors.As(err, &e) && e.Cause != nil {
		fmt.Fprintln(w, "  "+StyleDim.Render(e.Cause.Error()))
	}
}

// =============================================================================
// Trees
// =============================================================================

// printTreeStats prints the one-line summary shown after build.
func printTreeStats(s dctree.Stats, cached bool) {
	parts := []string{
		fmt.Sprintf("%d leaves", s.Leaves),
		fmt.Sprintf("%d separator", s.SeparatorLeaves),
		fmt.Sprintf("depth %d", s.Depth),
		fmt.Sprintf("leaf size ≤ %d", s.MaxLeafElems),
	}
	rendered := make([]string, len(parts))
	for i, p := range parts {
		rendered[i] = StyleDim.Render(p)
	}

	status := StyleDim.Render("fresh")
	if cached {
		status = styleOK.Render("from store")
	}
	line := "  " + strings.Join(rendered, StyleDim.Render(" · ")) + StyleDim.Render(" · ") + status
	if s.OversizedLeaves > 0 {
		line += StyleDim.Render(" · ") + styleWarn.Render(fmt.Sprintf("%d oversized", s.OversizedLeaves))
	}
	fmt.Fprintln(out, line)
}

// printLeaf prints one row of inspect --leaves, colored by leaf kind.
func printLeaf(n *dctree.Node, maxElem int) {
	kind := kindStyles[n.Kind()].Width(15).Render(n.Kind().String())
	line := fmt.Sprintf("  #%-5d %s elems [%d,%d]  nodes [%d,%d]",
		n.ID, kind, n.FirstElem, n.LastElem, n.FirstNode, n.LastNode)
	if n.NbElem() > maxElem {
		line += " " + styleWarn.Render(fmt.Sprintf("(%d > %d)", n.NbElem(), maxElem))
	}
	fmt.Fprintln(out, line)
}
