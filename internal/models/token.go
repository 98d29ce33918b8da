package models

import "time"

// TokenCandidate is a token reported as newly created by the token-list source.
type TokenCandidate struct {
	Address   string
	Name      string
	Symbol    string
	CreatedAt time.Time // zero when the source omits it
	MarketCap *float64  // nil when the source omits it
}

// MarketSnapshot is taken from the first trading pair of a token.
type MarketSnapshot struct {
	LiquidityUSD float64
	Volume24hUSD float64
	ChartURL     string
}

// SafetyAssessment is a best-effort heuristic, never a guarantee.
// The zero value is the conservative "risky" verdict.
type SafetyAssessment struct {
	OwnershipRenounced bool
	LiquidityLocked    bool
}

// Safe is true only when both checks passed.
func (a SafetyAssessment) Safe() bool {
	return a.OwnershipRenounced && a.LiquidityLocked
}

// PoolInfo is one liquidity pool record from the pool-info source.
type PoolInfo struct {
	Address string
	Locked  bool
}
