package main

import (
	"fmt"

	"github.com/Harshitk-cp/anchorgraph/internal/service"
	"github.com/spf13/cobra"
)

func newGraphCmd(opts *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Render the dependency graph",
		Long: `Prints the anchor/reading graph as an indented tree (text) or as Graphviz
DOT for piping into "dot -Tsvg".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, closeStore, err := opts.loadEngine(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			out, err := eng.Inspector.RenderGraph(format)
			if err != nil {
				return err
			}
			fmt.Fprint(opts.stdout, out)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", service.FormatText, "output format: text or dot")
	return cmd
}
