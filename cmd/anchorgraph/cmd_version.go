package main

import (
	"fmt"

	"github.com/Harshitk-cp/anchorgraph/internal/buildconfig"
	"github.com/spf13/cobra"
)

func newVersionCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.jsonOut {
				return writeJSON(opts.stdout, buildconfig.VersionInfo())
			}
			fmt.Fprintln(opts.stdout, buildconfig.Summary())
			return nil
		},
	}
}
