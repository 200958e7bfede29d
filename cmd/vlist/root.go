package main

import "github.com/spf13/cobra"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "vlist",
		Short: "Windowed viewer for very large lists",
		Long: `Render only the rows of a large list that intersect the viewport.

Use "vlist view" to page through a file, a markdown document or generated rows
in the terminal, and "vlist range" to print the visible range for a viewport.`,
		SilenceUsage: true,
	}
	root.AddCommand(newViewCmd(), newRangeCmd())
	return root
}
