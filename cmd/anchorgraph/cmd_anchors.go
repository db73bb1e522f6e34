package main

import (
	"github.com/spf13/cobra"
)

func newAnchorsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "anchors",
		Short: "List anchors by level with their reading counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, closeStore, err := opts.loadEngine(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			anchors := eng.Inspector.ListAnchors()
			if opts.jsonOut {
				return writeJSON(opts.stdout, anchors)
			}
			printAnchors(opts.stdout, anchors)
			return nil
		},
	}
}
