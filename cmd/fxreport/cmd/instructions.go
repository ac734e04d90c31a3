package cmd

import (
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/rustyeddy/fxreport/source"
	"github.com/spf13/cobra"
)

var instructionsCmd = &cobra.Command{
	Use:   "instructions",
	Short: "Manage the SQLite instruction store",
	Long: `Import trade instructions into a SQLite store and list them back.

Subcommands:
  import - Load instructions from a CSV file
  list   - Print stored instructions as CSV

Examples:
  fxreport instructions import instructions.csv --db fx.sqlite
  fxreport instructions list --db fx.sqlite --from 2016-01-01 --to 2016-06-30`,
}

var instructionsImportCmd = &cobra.Command{
	Use:   "import <csv-file>",
	Short: "Load instructions from a CSV file",
	Args:  cobra.ExactArgs(1),
	RunE:  runInstructionsImport,
}

var instructionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print stored instructions as CSV",
	Args:  cobra.NoArgs,
	RunE:  runInstructionsList,
}

var (
	instructionsDBPath string
	listFrom           string
	listTo             string
)

func init() {
	rootCmd.AddCommand(instructionsCmd)
	instructionsCmd.AddCommand(instructionsImportCmd)
	instructionsCmd.AddCommand(instructionsListCmd)

	instructionsCmd.PersistentFlags().StringVarP(&instructionsDBPath, "db", "d", "./fxreport.sqlite", "path to SQLite instruction store")
	instructionsListCmd.Flags().StringVar(&listFrom, "from", "", "first instruction date, YYYY-MM-DD")
	instructionsListCmd.Flags().StringVar(&listTo, "to", "", "last instruction date, YYYY-MM-DD")
}

func runInstructionsImport(cmd *cobra.Command, args []string) error {
	ins, err := source.NewCSV(args[0]).RetrieveInstructions(cmd.Context())
	if err != nil {
		return err
	}

	db, err := source.NewSQLite(instructionsDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	if err := db.SaveAll(cmd.Context(), ins); err != nil {
		return fmt.Errorf("save instructions: %w", err)
	}
	total, err := db.Count(cmd.Context())
	if err != nil {
		return fmt.Errorf("count instructions: %w", err)
	}

	log.Info().
		Str("file", args[0]).
		Str("db", instructionsDBPath).
		Int("imported", len(ins)).
		Int("total", total).
		Msg("instructions imported")
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Imported %d instructions into %s (%d stored)\n", len(ins), instructionsDBPath, total)
	return nil
}

func runInstructionsList(cmd *cobra.Command, args []string) error {
	db, err := source.NewSQLite(instructionsDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	if listFrom == "" && listTo == "" {
		ins, err := db.RetrieveInstructions(cmd.Context())
		if err != nil {
			return fmt.Errorf("query instructions: %w", err)
		}
		return source.WriteCSV(cmd.OutOrStdout(), ins)
	}

	start, end, err := dateRange(listFrom, listTo)
	if err != nil {
		return err
	}
	ins, err := db.ListBetween(cmd.Context(), start, end)
	if err != nil {
		return fmt.Errorf("query instructions: %w", err)
	}
	return source.WriteCSV(cmd.OutOrStdout(), ins)
}

// dateRange parses the --from/--to pair. A missing bound is open.
func dateRange(from, to string) (civil.Date, civil.Date, error) {
	start := civil.Date{Year: 1, Month: 1, Day: 1}
	end := civil.Date{Year: 9999, Month: 12, Day: 31}

	var err error
	if from != "" {
		if start, err = civil.ParseDate(from); err != nil {
			return start, end, fmt.Errorf("--from: %w", err)
		}
	}
	if to != "" {
		if end, err = civil.ParseDate(to); err != nil {
			return start, end, fmt.Errorf("--to: %w", err)
		}
	}
	if end.Before(start) {
		return start, end, fmt.Errorf("--to %s is before --from %s", end, start)
	}
	return start, end, nil
}
