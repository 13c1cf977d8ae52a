package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dctree/pkg/buildinfo"
	"github.com/matzehuels/dctree/pkg/config"
	"github.com/matzehuels/dctree/pkg/observability"
	"github.com/matzehuels/dctree/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "dctree"

	// treeExt is the file extension of encoded trees.
	treeExt = ".dct"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath  string
	metricsPath string
	metrics     *prometheus.Registry
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "dctree builds divide-and-conquer trees over unstructured meshes",
		Long: `dctree partitions an unstructured mesh into a divide-and-conquer tree whose
ordinary leaves can be processed in parallel without sharing node data, plus
separator leaves that must run after their siblings.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			c.enableMetrics()
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return c.writeMetrics()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: "+defaultConfigPath()+")")
	root.PersistentFlags().StringVar(&c.metricsPath, "metrics-file", "", "write Prometheus metrics of the run to this file")

	// Register all subcommands
	root.AddCommand(c.buildCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.permuteCommand())
	root.AddCommand(c.storeCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config & Store
// =============================================================================

// loadConfig reads the --config file, or the default config file when it
// exists, over the built-in defaults.
func (c *CLI) loadConfig() (config.Config, error) {
	path := c.configPath
	if path == "" {
		if _, err := os.Stat(defaultConfigPath()); err == nil {
			path = defaultConfigPath()
		}
	}
	return config.Load(path)
}

// openStore opens the configured tree store, or a null store when caching
// is disabled.
func openStore(ctx context.Context, cfg config.Config, noCache bool) (store.Store, error) {
	if noCache {
		return store.NewNullStore(), nil
	}
	return store.Open(ctx, cfg.Store)
}

// =============================================================================
// Metrics
// =============================================================================

// enableMetrics installs Prometheus hooks when --metrics-file is set.
func (c *CLI) enableMetrics() {
	if c.metricsPath == "" || c.metrics != nil {
		return
	}
	c.metrics = prometheus.NewRegistry()
	hooks := observability.NewPrometheusHooks(c.metrics)
	observability.SetBuildHooks(hooks)
	observability.SetStoreHooks(hooks)
}

// writeMetrics writes the collected metrics in the text exposition format,
// ready for a node_exporter textfile collector.
func (c *CLI) writeMetrics() error {
	if c.metrics == nil {
		return nil
	}
	return prometheus.WriteToTextfile(c.metricsPath, c.metrics)
}

// =============================================================================
// Paths
// =============================================================================

// defaultConfigPath returns the config file location following the XDG
// convention (~/.config/dctree/config.toml).
func defaultConfigPath() string {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(appName, "config.toml")
	}
	return filepath.Join(home, ".config", appName, "config.toml")
}

// withExt replaces the extension of path.
func withExt(path, ext string) string {
	return path[:len(path)-len(filepath.Ext(path))] + ext
}
