package main

import (
	"github.com/Harshitk-cp/anchorgraph/internal/service"
	"github.com/spf13/cobra"
)

func newRegisterCmd(opts *rootOptions) *cobra.Command {
	var req service.RegisterRequest

	cmd := &cobra.Command{
		Use:   "register <reading>",
		Short: "Register or replace a reading",
		Long: `Adds a reading to the corpus. A confidence above what the reading's anchors
allow is capped, and the cap is reported as a warning. Registering an id that
already exists (in any casing) replaces it.

Example:
  anchorgraph register R12 --depends-on A1,A2 --confidence probable \
    --meaning "Sign 12 is a numeral" --hypothesis H3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.ID = args[0]

			eng, closeStore, err := opts.loadEngine(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			result, err := eng.Registration.Register(cmd.Context(), req)
			if err != nil {
				return err
			}
			if opts.jsonOut {
				return writeJSON(opts.stdout, result)
			}
			printRegistration(opts.stdout, result)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringSliceVar(&req.DependsOn, "depends-on", nil, "anchor ids the reading depends on")
	f.StringVar(&req.Meaning, "meaning", "", "what the reading claims")
	f.StringVar(&req.Confidence, "confidence", "SPECULATIVE", "requested confidence")
	f.StringSliceVar(&req.Supports, "supports", nil, "anchor ids the reading lends evidence to")
	f.StringSliceVar(&req.SupportedHypotheses, "hypothesis", nil, "hypotheses explaining the reading")
	f.StringSliceVar(&req.EvidenceSources, "evidence", nil, "evidence sources")
	return cmd
}
