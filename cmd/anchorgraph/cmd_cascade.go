package main

import (
	"fmt"

	"github.com/Harshitk-cp/anchorgraph/internal/domain"
	"github.com/Harshitk-cp/anchorgraph/internal/service"
	"github.com/spf13/cobra"
)

func newCascadeCmd(opts *rootOptions) *cobra.Command {
	var apply bool

	cmd := &cobra.Command{
		Use:   "cascade <anchor> <status>",
		Short: "Preview (or apply) the effect of moving an anchor to a new status",
		Long: `Walks every reading that depends on the anchor, and every anchor those
readings support, and proposes a confidence for each.

Status is one of QUESTIONED, DEMOTED or REJECTED. Nothing is written unless
--apply is given.

Examples:
  anchorgraph cascade A1 questioned
  anchorgraph cascade A1 REJECTED --apply --json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			anchorID := args[0]
			status, err := domain.ParseAnchorStatus(args[1])
			if err != nil {
				return fmt.Errorf("%w: %s", err, args[1])
			}
			if !status.IsCascadeStatus() {
				return service.ErrInvalidCascadeStatus
			}

			eng, closeStore, err := opts.loadEngine(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			if _, err := eng.Inspector.Anchor(anchorID); err != nil {
				fmt.Fprintf(opts.stdout, "Anchor %s not found\n", anchorID)
				return errSilent
			}

			report, err := eng.Cascade.Cascade(anchorID, status)
			if err != nil {
				return err
			}

			changed := 0
			if apply {
				if changed, err = eng.ApplyCascade(cmd.Context(), report); err != nil {
					return err
				}
			}

			if opts.jsonOut {
				return writeJSON(opts.stdout, struct {
					*domain.CascadeReport
					Applied         bool `json:"applied"`
					ChangedReadings int  `json:"changed_readings,omitempty"`
				}{report, apply, changed})
			}
			printCascade(opts.stdout, report)
			if apply {
				fmt.Fprintf(opts.stdout, "\nApplied: %s is now %s, %d reading(s) changed\n", anchorID, status, changed)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&apply, "apply", false, "write the proposed changes back to the corpus")
	return cmd
}
