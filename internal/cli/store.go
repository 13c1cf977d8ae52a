package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dctree/pkg/mesh"
	"github.com/matzehuels/dctree/pkg/store"
	"github.com/matzehuels/dctree/pkg/treeio"
)

// storeCommand creates the store management command.
func (c *CLI) storeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Manage the tree store",
	}

	cmd.AddCommand(c.storeClearCommand())
	cmd.AddCommand(c.storePathCommand())
	cmd.AddCommand(c.storeForgetCommand())

	return cmd
}

// storeClearCommand creates the "store clear" subcommand.
func (c *CLI) storeClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every stored tree (file store only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			st, err := store.Open(cmd.Context(), cfg.Store)
			if err != nil {
				return err
			}
			defer st.Close()

			fs, ok := st.(*store.FileStore)
			if !ok {
				printWarning("The %s store cannot be cleared from here", store.Name(st))
				return nil
			}
			if err := fs.Clear(); err != nil {
				return err
			}
			printSuccess("Cleared stored trees")
			printDetail("Directory: %s", fs.Dir())
			return nil
		},
	}
}

// storePathCommand creates the "store path" subcommand.
func (c *CLI) storePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the file store directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if b := cfg.Store.Backend; b != "" && b != store.BackendFile {
				printInfo("Trees are kept in the %s store", b)
				return nil
			}
			fmt.Fprintln(out, cfg.Store.Dir)
			return nil
		},
	}
}

// storeForgetCommand creates the "store forget" subcommand.
func (c *CLI) storeForgetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "forget [mesh]",
		Short: "Remove the stored tree of one mesh",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			m, err := mesh.ReadFile(args[0])
			if err != nil {
				return err
			}
			st, err := store.Open(cmd.Context(), cfg.Store)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.Delete(cmd.Context(), treeio.Key(args[0], m.NbElem(), m.NbNodes)); err != nil {
				return err
			}
			printSuccess("Forgot the tree of %s", args[0])
			return nil
		},
	}
}
