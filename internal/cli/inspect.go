package cli

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dockyard/pkg/layout"
)

// inspectCommand prints a layout file as a tree.
func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [file]",
		Short: "Print a layout file as a tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := layout.ImportJSON(args[0])
			if err != nil {
				return err
			}
			c.Logger.Debug("layout loaded", "path", args[0], "dockables", len(d.IDs()))
			printLayout(d)
			return nil
		},
	}
}

// validateCommand checks layout files and reports each one.
func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file...]",
		Short: "Check layout files for structural errors",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var failed int
			for _, path := range args {
				d, err := layout.ImportJSON(path)
				if err != nil {
					printError("%s: %v", path, err)
					failed++
					continue
				}
				printSuccess("%s (%d dockables)", path, len(d.IDs()))
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d layout(s) invalid", failed, len(args))
			}
			return nil
		},
	}
}

// printLayout prints the tree, statistics and recorded properties of d.
func printLayout(d layout.Description) {
	fmt.Print(renderTree(d))
	fmt.Println()

	s := statsOf(d.Root)
	printKeyValue("dockables", strconv.Itoa(s.dockables))
	printKeyValue("splits", strconv.Itoa(s.splits))
	printKeyValue("tab groups", strconv.Itoa(s.groups))
	printKeyValue("depth", strconv.Itoa(s.depth))
	for _, id := range d.IDs() {
		props, ok := d.Properties[id]
		if !ok {
			continue
		}
		pairs := make([]string, 0, len(props))
		for k, v := range props {
			pairs = append(pairs, k+"="+v)
		}
		slices.Sort(pairs)
		printKeyValue(id, strings.Join(pairs, " "))
	}
}
