package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	portssvc "github.com/autobooks/autobooks_app/internal/core/ports/services"
)

// verifyCmd builds the trial balance for a period and exits non-zero when
// the columns disagree, so it can gate a deployment or a nightly check.
var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify that a period's trial balance balances",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireOrgAndPeriod(); err != nil {
			return err
		}
		return withServices(cmd.Context(), func(ctx context.Context, svc *portssvc.ServicesContainer) error {
			report, err := svc.ReportingSvc.TrialBalance(ctx, flagOrgID, flagPeriodID)
			if err != nil {
				return err
			}

			for _, row := range report.Rows {
				fmt.Printf("%-8s %-30s %14s %14s\n", row.AccountCode, row.AccountName, row.Debit.StringFixed(2), row.Credit.StringFixed(2))
			}
			fmt.Printf("%-39s %14s %14s\n", "TOTAL", report.TotalDebits.StringFixed(2), report.TotalCredits.StringFixed(2))
			fmt.Println("trial balance OK")
			return nil
		})
	},
}
