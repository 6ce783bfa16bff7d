package cli

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"fleet-scheduler/internal/scheduler"
)

// ErrIssuesFound is returned by verify when the schedule has problems.
var ErrIssuesFound = errors.New("schedule has issues")

// NewVerifyCommand creates the verify command.
func NewVerifyCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "verify <snapshot.json>",
		Short: "Audit a schedule snapshot",
		Long: `Load a snapshot written by the scheduler and report overlapping bookings,
bookings outside vehicle availability, allocations that break trailer rules
and shipments whose allocations do not add up.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			snap, err := scheduler.DecodeSnapshot(raw)
			if err != nil {
				return err
			}
			issues := scheduler.Verify(snap)
			// Restore adds the structural checks: ids, intervals, duplicates,
			// dangling vehicle references.
			restoreErr := scheduler.NewStore(scheduler.Options{}).Restore(snap)
			if len(issues) == 0 && restoreErr != nil {
				return restoreErr
			}

			out := cmd.OutOrStdout()
			if asJSON {
				if issues == nil {
					issues = []scheduler.Issue{}
				}
				if err := writeJSON(out, issues); err != nil {
					return err
				}
			} else if len(issues) == 0 {
				fmt.Fprintf(out, "snapshot v%d: %d shipments, no issues\n", snap.Version, len(snap.Shipments))
			} else {
				tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "KIND\tSHIPMENT\tVEHICLE\tDETAIL")
				for _, is := range issues {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", is.Kind, is.ShipmentID, is.VehicleID, is.Detail)
				}
				if err := tw.Flush(); err != nil {
					return err
				}
			}

			if len(issues) > 0 {
				return errors.Join(fmt.Errorf("%w: %d found", ErrIssuesFound, len(issues)), restoreErr)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print issues as JSON")

	return cmd
}
