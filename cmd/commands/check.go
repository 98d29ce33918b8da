package commands

// Command to inspect one token: market data, filter verdict, safety check and alert preview

import (
	"fmt"

	"memecoin-radar/internal/features/token_poller"
	"memecoin-radar/internal/models"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <token-address>",
	Short: "Check one token against the filter and safety heuristic",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	mint, err := solana.PublicKeyFromBase58(args[0])
	if err != nil {
		return fmt.Errorf("invalid token address %q: %w", args[0], err)
	}
	address := mint.String()
	out := cmd.OutOrStdout()
	src := newSources(cfg)

	snapshot, err := src.dexscreener.GetMarketSnapshot(cmd.Context(), address)
	if err != nil {
		return err
	}
	if snapshot == nil {
		fmt.Fprintf(out, "%s has no trading pairs\n", address)
		return nil
	}

	filter := token_poller.Filter{
		MinLiquidityUSD: cfg.Monitor.MinLiquidityUSD,
		MinVolume24hUSD: cfg.Monitor.MinVolume24hUSD,
	}
	verdict := "passes"
	if !filter.Passes(*snapshot) {
		verdict = "below thresholds"
	}
	fmt.Fprintf(out, "Liquidity: %.2f\nVolume (24h): %.2f\nFilter: %s\n\n",
		snapshot.LiquidityUSD, snapshot.Volume24hUSD, verdict)

	assessment := src.safety.Check(cmd.Context(), address)
	token := models.TokenCandidate{Address: address, Name: "?", Symbol: "?"}
	fmt.Fprint(out, token_poller.FormatAlert(token, *snapshot, assessment))
	return nil
}
