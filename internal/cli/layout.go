package cli

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dockyard/pkg/layout"
)

// layoutsCommand manages the named-layout store.
func (c *CLI) layoutsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layouts",
		Short: "Manage named layouts",
		Long: `Manage named layouts in the configured store.

The store backend is chosen by the [store] section of the config file:
file (default, ~/.config/dockyard/layouts), redis or memory.`,
	}
	cmd.AddCommand(c.layoutsListCommand())
	cmd.AddCommand(c.layoutsShowCommand())
	cmd.AddCommand(c.layoutsSaveCommand())
	cmd.AddCommand(c.layoutsDeleteCommand())
	return cmd
}

func (c *CLI) layoutsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List named layouts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			names, err := store.List(ctx)
			if err != nil {
				return err
			}
			if len(names) == 0 {
				printInfo("No named layouts")
				return nil
			}

			var rows [][]string
			for _, name := range names {
				d, err := store.Load(ctx, name)
				if err != nil {
					printWarning("Skipping %s: %v", name, err)
					continue
				}
				st := statsOf(d.Root)
				rows = append(rows, []string{name, strconv.Itoa(st.dockables), strconv.Itoa(st.splits), strconv.Itoa(st.groups)})
			}
			printTable([]string{"Name", "Panels", "Splits", "Tab groups"}, rows)
			return nil
		},
	}
}

func (c *CLI) layoutsShowCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "show [name]",
		Short: "Print a named layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := c.loadLayout(cmd.Context(), args[0], true)
			if err != nil {
				return err
			}
			if asJSON {
				return layout.WriteJSON(d, os.Stdout)
			}
			printLayout(d)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the layout as JSON")
	return cmd
}

func (c *CLI) layoutsSaveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "save [name] [file]",
		Short: "Store a layout file under a name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			d, err := layout.ImportJSON(args[1])
			if err != nil {
				return err
			}
			store, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Save(ctx, args[0], d); err != nil {
				return err
			}
			printSuccess("Saved layout %s", StyleValue.Render(args[0]))
			return nil
		},
	}
}

func (c *CLI) layoutsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [name]",
		Short: "Delete a named layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Delete(ctx, args[0]); err != nil {
				return err
			}
			printSuccess("Deleted layout %s", StyleValue.Render(args[0]))
			return nil
		},
	}
}
