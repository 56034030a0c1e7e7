package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	portssvc "github.com/autobooks/autobooks_app/internal/core/ports/services"
)

// reprocessCmd discards a period's derived journal entries and re-runs the
// classify/generate/aggregate pipeline atomically.
var reprocessCmd = &cobra.Command{
	Use:   "reprocess",
	Short: "Atomically rebuild a period's derived journal entries and totals",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireOrgAndPeriod(); err != nil {
			return err
		}
		return withServices(cmd.Context(), func(ctx context.Context, svc *portssvc.ServicesContainer) error {
			summary, err := svc.PeriodSvc.Reprocess(ctx, flagOrgID, flagPeriodID, "cli")
			if err != nil {
				return err
			}

			fmt.Printf("period %s reprocessed\n", flagPeriodID)
			fmt.Printf("  entries:      %d\n", summary.EntryCount)
			fmt.Printf("  classified:   %d\n", summary.ClassifiedCount)
			fmt.Printf("  unclassified: %d\n", summary.UnclassifiedCount)
			fmt.Printf("  opening:      %s\n", summary.OpeningBalance.StringFixed(2))
			fmt.Printf("  closing:      %s %s\n", summary.ClosingBalance.StringFixed(2), summary.ClosingSide)
			if !summary.ReconciliationGap.IsZero() {
				fmt.Printf("  reconciliation gap: %s\n", summary.ReconciliationGap.StringFixed(2))
			}
			return nil
		})
	},
}
