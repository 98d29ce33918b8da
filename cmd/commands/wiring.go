package commands

import (
	"fmt"
	"time"

	"memecoin-radar/internal/clients_api/apiclient"
	"memecoin-radar/internal/clients_api/birdeye"
	"memecoin-radar/internal/clients_api/dexscreener"
	"memecoin-radar/internal/clients_api/solscan"
	"memecoin-radar/internal/features/safety"
	"memecoin-radar/internal/features/seen"
	"memecoin-radar/internal/features/session"
	"memecoin-radar/internal/features/token_poller"
	"memecoin-radar/internal/infra/config"
	storage "memecoin-radar/internal/infra/fs"
	"memecoin-radar/internal/infra/log"

	"go.uber.org/zap"
)

type sources struct {
	birdeye     *birdeye.Client
	dexscreener *dexscreener.Client
	safety      *safety.Checker
}

// newSources builds one rate limited, circuit broken client per upstream.
func newSources(cfg *config.Config) sources {
	timeout := time.Duration(cfg.Sources.RequestTimeout) * time.Second
	options := func(name, baseURL string, headers map[string]string) apiclient.Options {
		return apiclient.Options{
			Name:      name,
			BaseURL:   baseURL,
			Timeout:   timeout,
			Headers:   headers,
			RateLimit: cfg.Sources.RateLimit,
			RateBurst: cfg.Sources.RateBurst,
		}
	}

	solscanClient := solscan.NewClient(apiclient.New(options("solscan",
		cfg.Sources.SolscanBaseURL, solscan.Headers(cfg.Sources.SolscanAPIKey))))

	return sources{
		birdeye: birdeye.NewClient(apiclient.New(options("birdeye",
			cfg.Sources.BirdeyeBaseURL, birdeye.Headers(cfg.Sources.Chain, cfg.Sources.BirdeyeAPIKey)))),
		dexscreener: dexscreener.NewClient(apiclient.New(options("dexscreener",
			cfg.Sources.DexscreenerBaseURL, nil))),
		safety: safety.NewChecker(solscanClient, solscanClient),
	}
}

// newSession creates the seen set and registers telegram.chat_id when it is configured.
func newSession(cfg *config.Config) (*session.Session, error) {
	sess := session.New(seen.New(cfg.Monitor.SeenCapacity))
	if cfg.Telegram.ChatID != "" {
		chatID, err := cfg.ChatID()
		if err != nil {
			return nil, err
		}
		sess.Register(chatID)
		log.LogInfo("Alert destination preconfigured", zap.Int64("chatID", chatID))
	}
	return sess, nil
}

func newPoller(cfg *config.Config, src sources, sess *session.Session, notifier token_poller.Notifier) (*token_poller.Poller, error) {
	ignored, err := storage.LoadIgnoredTokens(cfg.App.IgnoreFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load ignore list: %w", err)
	}
	if len(ignored) > 0 {
		log.LogInfo("Ignore list loaded", zap.Int("count", len(ignored)))
	}

	return token_poller.NewPoller(src.birdeye, src.dexscreener, src.safety, notifier, sess, token_poller.Config{
		PageSize: cfg.Monitor.PageSize,
		Filter: token_poller.Filter{
			MinLiquidityUSD: cfg.Monitor.MinLiquidityUSD,
			MinVolume24hUSD: cfg.Monitor.MinVolume24hUSD,
		},
		Ignored: ignored,
	}), nil
}
