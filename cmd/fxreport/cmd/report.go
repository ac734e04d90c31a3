package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/rustyeddy/fxreport/report"
	"github.com/rustyeddy/fxreport/source"
	"github.com/rustyeddy/fxreport/tradeops"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Produce the daily settlement report",
	Long: `Read trade instructions, settle them per currency working week and print
the daily settled amounts and entity rankings in both directions.

Flags override the config file and environment.

Examples:
  fxreport report
  fxreport report --source csv --path instructions.csv
  fxreport report --source sqlite --path fx.sqlite --format org -o report.org`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

var (
	reportSource string
	reportPath   string
	reportFormat string
	reportOutput string
)

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVar(&reportSource, "source", "", "instruction source: static, csv or sqlite")
	reportCmd.Flags().StringVar(&reportPath, "path", "", "CSV file or SQLite database for the source")
	reportCmd.Flags().StringVar(&reportFormat, "format", "", "output format: console or org")
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "write the report to a file instead of stdout")
}

func runReport(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	if flags.Changed("source") {
		cfg.Source.Type = reportSource
	}
	if flags.Changed("path") {
		cfg.Source.Path = reportPath
	}
	if flags.Changed("format") {
		cfg.Report.Format = reportFormat
	}
	if flags.Changed("output") {
		cfg.Report.Output = reportOutput
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	src, closeSrc, err := source.Open(cfg.Source)
	if err != nil {
		return err
	}
	defer closeSrc()

	out := cmd.OutOrStdout()
	if cfg.Report.Output != "" {
		f, err := os.Create(cfg.Report.Output)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}

	sink, err := newSink(out)
	if err != nil {
		return err
	}

	engine := &report.Engine{
		Source:   src,
		Ops:      tradeops.New(),
		Sink:     sink,
		Firm:     cfg.Report.Firm,
		Title:    cfg.Report.Title,
		Currency: cfg.Report.Currency,
		Logger: log.With().
			Str("source", cfg.Source.Type).
			Str("format", cfg.Report.Format).
			Logger(),
	}

	meta, err := engine.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}
	if cfg.Report.Output != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "✓ Report %s written to %s (%d sections)\n", meta.RunID, cfg.Report.Output, meta.Sections)
	}
	return nil
}

func newSink(w io.Writer) (report.Sink, error) {
	switch cfg.Report.Format {
	case "org":
		return report.NewOrg(w), nil
	case "", "console":
		locale, err := language.Parse(cfg.Report.Locale)
		if err != nil {
			return nil, fmt.Errorf("locale: %w", err)
		}
		return report.NewConsole(w, locale, cfg.Report.DateLayout), nil
	}
	return nil, fmt.Errorf("unknown report format %q", cfg.Report.Format)
}
