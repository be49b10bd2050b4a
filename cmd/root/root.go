// Package root contains the root command for the application.
package root

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/spendscope/spendscope/internal/common"
	"github.com/spendscope/spendscope/internal/config"
)

// CommonFlags represents the flags that are shared by multiple commands.
type CommonFlags struct {
	Input  string
	Output string
}

var (
	// Log is the shared logger instance for commands.
	Log = logrus.New()

	// Cfg holds the loaded application configuration.
	Cfg *config.Config

	// SharedFlags are accessible to all commands.
	SharedFlags = CommonFlags{}

	// Cmd is the root command.
	Cmd = &cobra.Command{
		Use:   "spendscope",
		Short: "A CLI tool to analyze purchase histories: recurring purchases, categories and spending trends.",
		Long: `spendscope reads purchase records from CSV files and runs a
feature-engineering pipeline over them: it detects recurring purchases
(subscriptions, rent, bills), categorizes purchases by keyword, derives
calendar and purchase-frequency features, and produces spending reports.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to spendscope!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()

			cfg, err := config.InitializeConfig()
			if err != nil {
				Log.Fatalf("Configuration error: %v", err)
			}
			Cfg = cfg

			Log = config.ConfigureLoggingFromConfig(cfg)
			common.SetLogger(Log)
			common.SetDelimiter([]rune(cfg.CSV.Delimiter)[0])
		},
	}
)

// Init wires the persistent flags onto the root command.
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input CSV file with purchase records")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file")
}
