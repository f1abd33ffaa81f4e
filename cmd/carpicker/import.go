package main

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/Veraticus/carpicker/internal/catalog"
	"github.com/Veraticus/carpicker/internal/cli"
	"github.com/Veraticus/carpicker/internal/config"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [catalog.csv]",
		Short: "Import a catalog CSV into the local database",
		Long: `Read a catalog CSV and replace the stored catalog with it.

The replacement happens in a single transaction: if any row is invalid the
previous catalog is kept. Without an argument the configured catalog path
is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runImport,
	}

	cmd.Flags().Bool("no-progress", false, "disable the progress bar")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	noProgress, _ := cmd.Flags().GetBool("no-progress")

	settings, err := loadSettings()
	if err != nil {
		return err
	}

	var path string
	if len(args) == 1 {
		path = config.ExpandPath(args[0])
	} else {
		path, err = catalog.Resolve(settings.Catalog.Paths...)
		if err != nil {
			return err
		}
	}

	vehicles, err := catalog.LoadFile(path)
	if err != nil {
		return err
	}

	store, err := initStorage(ctx, settings)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	var progress func(int)
	if !noProgress && len(vehicles) > 0 {
		bar := progressbar.NewOptions(len(vehicles),
			progressbar.OptionSetWriter(cmd.ErrOrStderr()),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionShowCount(),
			progressbar.OptionShowElapsedTimeOnFinish(),
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetDescription("[cyan][bold]Importing vehicles...[reset]"),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
			progressbar.OptionOnCompletion(func() {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr())
			}),
		)
		progress = func(done int) {
			_ = bar.Set(done)
		}
	}

	slog.Info("Importing catalog", "path", path, "vehicles", len(vehicles), "database", store.Path())

	if err := store.ReplaceCatalog(ctx, filepath.Base(path), vehicles, progress); err != nil {
		return fmt.Errorf("failed to import catalog: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(
		fmt.Sprintf("Imported %d vehicles from %s", len(vehicles), path)))
	return err
}
