// Package cli implements the autobooks maintenance command line. It talks to
// the database directly through the same service layer as the HTTP backend,
// so CI jobs can verify ledger consistency without a running server.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/autobooks/autobooks_app/internal/chart"
	"github.com/autobooks/autobooks_app/internal/core/services"
	portssvc "github.com/autobooks/autobooks_app/internal/core/ports/services"
	"github.com/autobooks/autobooks_app/internal/repositories/database/pgsql"
	"github.com/autobooks/autobooks_app/pkg/config"
	"github.com/autobooks/autobooks_app/pkg/database"
)

var (
	flagOrgID    string
	flagPeriodID string
)

var rootCmd = &cobra.Command{
	Use:          "autobooks",
	Short:        "Bookkeeping ledger maintenance and verification",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagOrgID, "org", "", "organization id")
	rootCmd.PersistentFlags().StringVar(&flagPeriodID, "period", "", "fiscal period id")

	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(reprocessCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// withServices loads configuration, connects to the database and hands the
// wired service container to fn, closing the pool afterwards.
func withServices(ctx context.Context, fn func(ctx context.Context, svc *portssvc.ServicesContainer) error) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	chartDef, err := chart.Default()
	if err != nil {
		return fmt.Errorf("failed to load chart of accounts: %w", err)
	}

	svc, err := services.NewServicesContainer(chartDef, pgsql.NewRepositoryProvider(pool))
	if err != nil {
		return err
	}
	return fn(ctx, svc)
}

func requireOrgAndPeriod() error {
	if flagOrgID == "" {
		return fmt.Errorf("--org is required")
	}
	if flagPeriodID == "" {
		return fmt.Errorf("--period is required")
	}
	return nil
}
