package main

import (
	"github.com/spf13/cobra"
)

func newValidateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check references, lattice ceilings and cycles; exits 1 when invalid",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, closeStore, err := opts.loadEngine(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			report := eng.Validator.Validate()
			if opts.jsonOut {
				if err := writeJSON(opts.stdout, report); err != nil {
					return err
				}
			} else {
				printValidation(opts.stdout, report)
			}
			if !report.IsValid {
				return errSilent
			}
			return nil
		},
	}
}
