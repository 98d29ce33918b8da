package token_poller

// One tick of the new token pipeline:
// token list -> per candidate (ignore list, seen set, market data, filter)
// -> safety check -> mark seen -> alert.
// Candidates are handled one after another. Failures never escape a tick.

import (
	"context"

	"memecoin-radar/internal/features/session"
	"memecoin-radar/internal/infra/log"
	"memecoin-radar/internal/models"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type TokenLister interface {
	ListNewTokens(ctx context.Context, limit int) ([]models.TokenCandidate, error)
}

// MarketDataSource returns (nil, nil) for a token without trading pairs.
type MarketDataSource interface {
	GetMarketSnapshot(ctx context.Context, address string) (*models.MarketSnapshot, error)
}

type SafetyChecker interface {
	Check(ctx context.Context, address string) models.SafetyAssessment
}

// Notifier delivers one alert to the destination chat.
type Notifier interface {
	Send(ctx context.Context, chatID int64, text string) error
}

type Config struct {
	PageSize int
	Filter   Filter
	Ignored  []string // addresses never alerted on
}

// TickStats summarizes one PollOnce call.
type TickStats struct {
	NoDestination  bool
	Candidates     int
	Ignored        int
	AlreadySeen    int
	LookupFailures int
	NoPairs        int
	FilteredOut    int
	Alerts         int
	SendFailures   int
	Err            error // token list failure, the tick did nothing
}

type Poller struct {
	tokens   TokenLister
	market   MarketDataSource
	safety   SafetyChecker
	notifier Notifier
	session  *session.Session
	tracer   trace.Tracer

	pageSize int
	filter   Filter
	ignored  map[string]struct{}
}

type Option func(*Poller)

func WithTracer(tracer trace.Tracer) Option {
	return func(p *Poller) { p.tracer = tracer }
}

func NewPoller(tokens TokenLister, market MarketDataSource, safety SafetyChecker, notifier Notifier, sess *session.Session, cfg Config, opts ...Option) *Poller {
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	ignored := make(map[string]struct{}, len(cfg.Ignored))
	for _, address := range cfg.Ignored {
		ignored[address] = struct{}{}
	}

	p := &Poller{
		tokens:   tokens,
		market:   market,
		safety:   safety,
		notifier: notifier,
		session:  sess,
		tracer:   otel.Tracer("memecoin-radar/token_poller"),
		pageSize: pageSize,
		filter:   cfg.Filter,
		ignored:  ignored,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// PollOnce runs a single tick. It is a no-op until a destination is registered.
func (p *Poller) PollOnce(ctx context.Context) TickStats {
	var stats TickStats

	chatID, ok := p.session.Destination()
	if !ok {
		log.LogDebug("No destination registered yet, skipping poll")
		stats.NoDestination = true
		return stats
	}

	ctx, span := p.tracer.Start(ctx, "token_poller.poll_once")
	defer span.End()

	candidates, err := p.tokens.ListNewTokens(ctx, p.pageSize)
	if err != nil {
		log.LogError("Error fetching new tokens", zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "token list failed")
		stats.Err = err
		return stats
	}
	stats.Candidates = len(candidates)

	for _, candidate := range candidates {
		if ctx.Err() != nil {
			log.LogWarn("Poll interrupted", zap.Error(ctx.Err()))
			break
		}
		p.processCandidate(ctx, chatID, candidate, &stats)
	}

	span.SetAttributes(
		attribute.Int("candidates", stats.Candidates),
		attribute.Int("alerts", stats.Alerts),
	)
	log.LogDebug("Poll finished",
		zap.Int("candidates", stats.Candidates),
		zap.Int("alreadySeen", stats.AlreadySeen),
		zap.Int("filteredOut", stats.FilteredOut),
		zap.Int("alerts", stats.Alerts))

	return stats
}

func (p *Poller) processCandidate(ctx context.Context, chatID int64, candidate models.TokenCandidate, stats *TickStats) {
	address := candidate.Address

	if _, ignored := p.ignored[address]; ignored {
		stats.Ignored++
		return
	}
	if p.session.Seen().Contains(address) {
		stats.AlreadySeen++
		return
	}

	ctx, span := p.tracer.Start(ctx, "token_poller.candidate", trace.WithAttributes(attribute.String("address", address)))
	defer span.End()

	snapshot, err := p.market.GetMarketSnapshot(ctx, address)
	if err != nil {
		log.LogWarn("Market data fetch failed", zap.String("address", address), zap.Error(err))
		span.RecordError(err)
		stats.LookupFailures++
		return
	}
	if snapshot == nil {
		log.LogDebug("No trading pairs yet", zap.String("address", address))
		stats.NoPairs++
		return
	}

	// Not marked seen: liquidity may still grow past the thresholds on a later tick.
	if !p.filter.Passes(*snapshot) {
		log.LogDebug("Token below thresholds",
			zap.String("address", address),
			zap.Float64("liquidityUsd", snapshot.LiquidityUSD),
			zap.Float64("volume24hUsd", snapshot.Volume24hUSD))
		stats.FilteredOut++
		return
	}

	assessment := p.safety.Check(ctx, address)
	p.session.Seen().Add(address)

	span.SetAttributes(
		attribute.Bool("renounced", assessment.OwnershipRenounced),
		attribute.Bool("lpLocked", assessment.LiquidityLocked),
	)

	text := FormatAlert(candidate, *snapshot, assessment)
	if err := p.notifier.Send(ctx, chatID, text); err != nil {
		log.LogError("Failed to send new token alert",
			zap.String("address", address),
			zap.Int64("chatID", chatID),
			zap.Error(err))
		span.RecordError(err)
		stats.SendFailures++
		return
	}

	stats.Alerts++
	log.LogSuccess("New token alert sent",
		zap.String("address", address),
		zap.String("symbol", candidate.Symbol),
		zap.Bool("safe", assessment.Safe()))
}
