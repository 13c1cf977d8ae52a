// Package cli implements the dctree command-line interface.
//
// This package provides commands for building D&C trees from mesh files,
// inspecting and rendering stored trees, generating structured test meshes,
// and managing the tree store. The CLI is built using cobra and supports
// verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - build: Partition a mesh and write its D&C tree
//   - inspect: Print statistics of a stored tree
//   - render: Draw a tree as DOT, SVG, PDF or PNG
//   - generate: Write structured quad or hex meshes
//   - permute: Move a mesh into tree order and back
//   - store: Manage the tree store
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which includes
// one line per partitioner call. Loggers are passed through context.Context.
//
// # Example
//
//	import "github.com/matzehuels/dctree/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().Execute(); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dctree/pkg/dctree"
	"github.com/matzehuels/dctree/pkg/mesh"
)

// newLogger creates the CLI logger. Lines carry a "15:04:05.00" timestamp.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// meshFields returns the structured log fields describing m, followed by extra.
func meshFields(m *mesh.Mesh, extra ...any) []any {
	return append([]any{"elements", m.NbElem(), "nodes", m.NbNodes, "arity", m.Dim}, extra...)
}

// treeFields returns the structured log fields describing t, followed by extra.
func treeFields(t *dctree.Tree, extra ...any) []any {
	s := t.Stats()
	return append([]any{
		"elements", t.NbElem,
		"leaves", s.Leaves,
		"separators", s.SeparatorLeaves,
		"depth", s.Depth,
		"oversized", s.OversizedLeaves,
	}, extra...)
}

// progress times one stage of a command.
type progress struct {
	logger *log.Logger
	stage  string
	start  time.Time
}

func newProgress(l *log.Logger, stage string) *progress {
	return &progress{logger: l, stage: stage, start: time.Now()}
}

// done logs the stage at info level with fields and the elapsed time,
// rounded to the millisecond.
func (p *progress) done(fields ...any) {
	p.logger.Info(p.stage, append(fields, "elapsed", time.Since(p.start).Round(time.Millisecond))...)
}

type loggerKey struct{}

// withLogger attaches l to ctx for the commands.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext returns the logger attached by withLogger, or
// log.Default() when the command runs without one.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
