package commands

// Command to run the full bot
// Starts the Telegram command handler, the new token monitor and the keep-alive server
// Implements graceful shutdown for proper termination

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"memecoin-radar/bots_monitor"
	"memecoin-radar/internal/infra/keepalive"
	"memecoin-radar/internal/infra/log"
	"memecoin-radar/internal/infra/tracing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Run the Telegram bot with the new token monitor",
	Long:  `Run the complete bot: /start, /ping and /status commands, a poll every monitor.interval seconds, and the keep-alive HTTP server.`,
	RunE:  runBot,
}

func runBot(cmd *cobra.Command, args []string) error {
	if err := cfg.RequireTelegram(); err != nil {
		log.LogError("Invalid Telegram config", zap.Error(err))
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	tp, err := tracing.InitTracer(ctx, cfg.Tracing)
	if err != nil {
		log.LogError("Failed to initialize tracing", zap.Error(err))
		return err
	}
	defer tracing.Shutdown(tp)

	bot, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		log.LogError("Failed to initialize bot", zap.Error(err))
		return fmt.Errorf("failed to initialize bot: %w", err)
	}
	log.LogSuccess("Bot authorized", zap.String("username", bot.Self.UserName))

	sess, err := newSession(cfg)
	if err != nil {
		return err
	}
	poller, err := newPoller(cfg, newSources(cfg), sess, bots_monitor.NewTelegramNotifier(bot))
	if err != nil {
		return err
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		bots_monitor.RunCommandHandler(ctx, bot, sess)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		bots_monitor.RunNewTokenMonitor(ctx, poller, time.Duration(cfg.Monitor.Interval)*time.Second)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := keepalive.Run(ctx, cfg.App.Port, keepalive.NewRouter(sess)); err != nil {
			log.LogError("Keep-alive server stopped", zap.Error(err))
		}
	}()

	log.LogSuccess("Bot is running", zap.String("status", "active"))

	<-ctx.Done()
	log.LogInfo("Shutdown signal received, gracefully stopping...")

	cancel()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.LogSuccess("All monitors stopped gracefully")
	case <-time.After(10 * time.Second):
		log.LogWarn("Timeout waiting for monitors to stop, forcing shutdown")
	}

	return nil
}
