package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/carpicker/internal/cli"
)

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the stored catalog",
		Args:  cobra.NoArgs,
		RunE:  runStatus,
	}
}

func runStatus(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	settings, err := loadSettings()
	if err != nil {
		return err
	}

	store, err := initStorage(ctx, settings)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.VerifySchema(ctx); err != nil {
		return err
	}

	count, err := store.CountVehicles(ctx)
	if err != nil {
		return err
	}
	latest, err := store.LatestImport(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, cli.FormatTitle("Stored Catalog"))
	fmt.Fprintf(out, "Database: %s\n", store.Path())
	fmt.Fprintf(out, "Vehicles: %d\n", count)
	if latest == nil {
		fmt.Fprintln(out, cli.FormatInfo("No catalog imported yet. Run 'carpicker import'."))
		return nil
	}
	fmt.Fprintf(out, "Imported: %s from %s (%d vehicles)\n",
		latest.ImportedAt.Local().Format("2006-01-02 15:04"), latest.Source, latest.VehicleCount)
	return nil
}
