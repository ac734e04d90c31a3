package cmd

import (
	"github.com/rs/zerolog"
	"github.com/rustyeddy/fxreport/config"
	"github.com/rustyeddy/fxreport/pkg/logger"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fxreport",
	Short: "Daily settlement report for client FX trade instructions",
	Long: `fxreport reads the trade instructions sent by clients, works out when each
one settles in its currency's working week and reports:

  - the USD amount settled incoming and outgoing per day
  - entities ranked by incoming and outgoing amount

Instructions come from the built-in sample set, a CSV file or a SQLite
store. Settings are read from a YAML or JSON config file, a .env file and
FXREPORT_* environment variables.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

var (
	cfgFile string
	envFile string

	cfg *config.Config
	log zerolog.Logger
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (YAML or JSON, default built-in settings)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "dotenv file with FXREPORT_* overrides")
}

func setup(cmd *cobra.Command, args []string) error {
	if err := config.LoadDotEnv(envFile); err != nil {
		return err
	}

	c, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	cfg = c

	log = logger.NewWithWriter(logger.Config{
		Level:  cfg.Log.Level,
		Pretty: cfg.Log.Pretty,
	}, cmd.ErrOrStderr())
	logger.SetGlobalLogger(log)
	return nil
}
