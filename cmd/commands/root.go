package commands

// Root command for Cobra CLI
// Loads configuration and sets up logging before any subcommand runs
// Registers all subcommands (bot, poll, check)

import (
	"fmt"

	"memecoin-radar/internal/infra/config"
	"memecoin-radar/internal/infra/log"

	"github.com/spf13/cobra"
)

// cfg is loaded once in PersistentPreRunE and shared by subcommands.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "memecoin-radar",
	Short: "MemeCoin Radar - Telegram alerts for new Solana tokens",
	Long: `MemeCoin Radar polls Birdeye for newly created Solana tokens, filters them by
DexScreener liquidity and volume, runs a Solscan ownership and LP lock check,
and sends a SAFE or RISKY alert to a Telegram chat.`,
	Version:       "1.0.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.LoadConfig(cmd.Flags())
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := log.Setup(log.Options{Dir: loaded.App.LogDir, Level: loaded.App.LogLevel}); err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		log.Sync()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	config.RegisterFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(botCmd)
	rootCmd.AddCommand(pollCmd)
	rootCmd.AddCommand(checkCmd)
}
