package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"fleet-scheduler/internal/domain"
	"fleet-scheduler/internal/scheduler"
)

// ErrAllocationFailed is returned when the allocator could not place the
// whole quantity cleanly. The report is still printed.
var ErrAllocationFailed = errors.New("allocation failed")

// NewAllocateCommand creates the allocate command.
func NewAllocateCommand() *cobra.Command {
	var (
		trailerPath string
		product     string
		quantity    string
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "allocate",
		Short: "Split a quantity across a trailer's compartments",
		Long: `Run the compartment allocator for one product and quantity against a
trailer definition (JSON, same shape as PUT /trailers/{id} with an "id").`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			qty, err := decimal.NewFromString(quantity)
			if err != nil {
				return fmt.Errorf("invalid --quantity %q: %w", quantity, err)
			}

			var trailer domain.Trailer
			if err := readJSONFile(trailerPath, &trailer); err != nil {
				return err
			}
			if err := trailer.Validate(); err != nil {
				return err
			}

			alloc := scheduler.Allocate(domain.ProductType(product), qty, &trailer)

			out := cmd.OutOrStdout()
			if asJSON {
				if err := writeJSON(out, alloc); err != nil {
					return err
				}
			} else {
				tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "COMPARTMENT\tQUANTITY")
				for _, a := range alloc.Allocations {
					fmt.Fprintf(tw, "%s\t%s\n", a.CompartmentID, a.Quantity)
				}
				if err := tw.Flush(); err != nil {
					return err
				}
				fmt.Fprintf(out, "remaining: %s\n", alloc.Remaining)
				for _, e := range alloc.Errors {
					fmt.Fprintf(out, "error: %s\n", e)
				}
			}

			if !alloc.Success {
				return ErrAllocationFailed
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&trailerPath, "trailer", "", "Path to the trailer JSON file")
	cmd.Flags().StringVar(&product, "product", "", "Product type to load")
	cmd.Flags().StringVar(&quantity, "quantity", "", "Quantity to load (decimal)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the allocation as JSON")
	_ = cmd.MarkFlagRequired("trailer")
	_ = cmd.MarkFlagRequired("product")
	_ = cmd.MarkFlagRequired("quantity")

	return cmd
}
