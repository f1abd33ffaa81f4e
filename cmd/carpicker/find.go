package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Veraticus/carpicker/internal/cli"
	"github.com/Veraticus/carpicker/internal/common"
	"github.com/Veraticus/carpicker/internal/config"
	"github.com/Veraticus/carpicker/internal/engine"
	"github.com/Veraticus/carpicker/internal/model"
)

// queryFlags maps find flags onto query field names.
var queryFlags = []struct {
	flag  string
	field string
	usage string
}{
	{"year", model.ColumnYear, "exact model year"},
	{"price", model.ColumnPrice, "maximum price"},
	{"transmission", model.ColumnTransmission, "transmission (Manual/Automatic)"},
	{"mileage", model.ColumnMileage, "maximum mileage"},
	{"fuel-type", model.ColumnFuelType, "fuel type (Gasoline/Diesel/Hybrid)"},
	{"mpg", model.ColumnMPG, "minimum MPG"},
	{"finance-monthly", model.ColumnFinanceMonthly, "maximum monthly finance payment"},
	{"lease-monthly", model.ColumnLeaseMonthly, "maximum monthly lease payment"},
	{"horsepower", model.ColumnHorsepower, "minimum horsepower"},
}

func findCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find",
		Short: "Find vehicles matching your preferences",
		Long: `Filter the catalog by your preferences and show the best matches.

Numeric limits allow the configured tolerance: prices, mileage and monthly
payments may run over by that fraction, MPG and horsepower may fall short
by it. Year, transmission and fuel type must match exactly.`,
		Example: `  carpicker find --price 20000 --transmission automatic
  carpicker find --fuel-type hybrid --mode exhaustive-price
  carpicker find --interactive`,
		Args: cobra.NoArgs,
		RunE: runFind,
	}

	for _, f := range queryFlags {
		cmd.Flags().String(f.flag, "", f.usage)
	}
	cmd.Flags().String("mode", "", "ranking mode: relevance or exhaustive-price (default from engine.mode)")
	cmd.Flags().Int("top", 0, "number of matches to show in relevance mode (default from engine.top_k)")
	cmd.Flags().Float64("tolerance", engine.DefaultTolerance, "tolerance fraction applied to numeric limits")
	cmd.Flags().BoolP("interactive", "i", false, "answer questions instead of passing flags")
	cmd.Flags().String("source", sourceCSV, "catalog source: csv or db")
	cmd.Flags().Bool("json", false, "print the result as JSON")

	_ = viper.BindPFlag(config.KeyEngineTolerance, cmd.Flags().Lookup("tolerance"))

	return cmd
}

func runFind(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	interactive, _ := cmd.Flags().GetBool("interactive")
	asJSON, _ := cmd.Flags().GetBool("json")
	source, _ := cmd.Flags().GetString("source")

	settings, err := loadSettings()
	if err != nil {
		return err
	}

	raw := queryFromFlags(cmd.Flags())
	if interactive {
		handler := cli.NewInterruptHandler(cmd.ErrOrStderr(), "Search canceled")
		askCtx, stop := handler.HandleInterrupts(ctx)
		defer stop()

		answers, err := cli.NewQuestionnaire(cmd.InOrStdin(), cmd.OutOrStdout()).Ask(askCtx)
		if err != nil {
			if handler.WasInterrupted() {
				return nil
			}
			return fmt.Errorf("failed to read answers: %w", err)
		}
		for k, v := range answers {
			raw[k] = v
		}
	}

	query, err := model.ParseQueryStrings(raw)
	if err != nil {
		return err
	}

	loader, err := catalogLoader(settings, source)
	if err != nil {
		return err
	}
	vehicles, from, err := loader(ctx)
	if err != nil {
		return err
	}

	eng, err := engine.NewWithConfig(settings.Engine)
	if err != nil {
		return err
	}

	result, err := eng.Run(vehicles, query)
	if err != nil {
		return err
	}

	slog.Debug("Search complete",
		"catalog", from,
		"survivors", result.TotalSurvivors,
		"mode", result.Mode)

	if asJSON {
		return writeJSONResult(cmd.OutOrStdout(), result)
	}
	return cli.RenderResult(cmd.OutOrStdout(), result)
}

// queryFromFlags collects the query-related flags that were set into the
// raw string form accepted by model.ParseQueryStrings.
func queryFromFlags(flags *pflag.FlagSet) map[string]string {
	raw := make(map[string]string)
	for _, f := range queryFlags {
		if flags.Changed(f.flag) {
			raw[f.field], _ = flags.GetString(f.flag)
		}
	}
	if flags.Changed("mode") {
		raw[model.KeyMode], _ = flags.GetString("mode")
	}
	if flags.Changed("top") {
		top, _ := flags.GetInt("top")
		raw[model.KeyTopK] = strconv.Itoa(top)
	}
	return raw
}

func writeJSONResult(w io.Writer, result *model.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return common.NewUserError("Failed to write result", err)
	}
	return nil
}
