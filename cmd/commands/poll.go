package commands

// Command to run a single poll and print alerts to stdout instead of Telegram

import (
	"context"
	"fmt"
	"io"

	"memecoin-radar/internal/infra/tracing"

	"github.com/spf13/cobra"
)

var pollCmd = &cobra.Command{
	Use:   "poll",
	Short: "Run one poll and print alerts to stdout",
	Long:  `Fetch the newest tokens once, apply the filter and safety check, and print every alert instead of sending it.`,
	RunE:  runPoll,
}

type writerNotifier struct {
	out io.Writer
}

func (n writerNotifier) Send(ctx context.Context, chatID int64, text string) error {
	_, err := fmt.Fprintln(n.out, text)
	return err
}

func runPoll(cmd *cobra.Command, args []string) error {
	tp, err := tracing.InitTracer(cmd.Context(), cfg.Tracing)
	if err != nil {
		return err
	}
	defer tracing.Shutdown(tp)

	sess, err := newSession(cfg)
	if err != nil {
		return err
	}
	if _, ok := sess.Destination(); !ok {
		// no chat is involved, any destination lets the tick run
		sess.Register(0)
	}

	poller, err := newPoller(cfg, newSources(cfg), sess, writerNotifier{out: cmd.OutOrStdout()})
	if err != nil {
		return err
	}

	stats := poller.PollOnce(cmd.Context())
	if stats.Err != nil {
		return stats.Err
	}

	fmt.Fprintf(cmd.OutOrStdout(),
		"candidates=%d ignored=%d no_pairs=%d lookup_failures=%d filtered_out=%d alerts=%d\n",
		stats.Candidates, stats.Ignored, stats.NoPairs, stats.LookupFailures, stats.FilteredOut, stats.Alerts)
	return nil
}
