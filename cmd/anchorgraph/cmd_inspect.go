package main

import (
	"errors"
	"fmt"

	"github.com/Harshitk-cp/anchorgraph/internal/service"
	"github.com/spf13/cobra"
)

func newInspectCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <reading>",
		Short: "Show one reading with its anchors and computed ceiling",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, closeStore, err := opts.loadEngine(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			in, err := eng.Inspector.Inspect(args[0])
			if errors.Is(err, service.ErrReadingNotFound) {
				fmt.Fprintf(opts.stdout, "Reading %s not found\n", args[0])
				return errSilent
			}
			if err != nil {
				return err
			}
			if opts.jsonOut {
				return writeJSON(opts.stdout, in)
			}
			printInspection(opts.stdout, in)
			return nil
		},
	}
}
