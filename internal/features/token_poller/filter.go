package token_poller

import "memecoin-radar/internal/models"

const (
	DefaultMinLiquidityUSD = 20000
	DefaultMinVolume24hUSD = 10000
	DefaultPageSize        = 5
)

// Filter bounds are inclusive.
type Filter struct {
	MinLiquidityUSD float64
	MinVolume24hUSD float64
}

func DefaultFilter() Filter {
	return Filter{MinLiquidityUSD: DefaultMinLiquidityUSD, MinVolume24hUSD: DefaultMinVolume24hUSD}
}

func (f Filter) Passes(snapshot models.MarketSnapshot) bool {
	return snapshot.LiquidityUSD >= f.MinLiquidityUSD && snapshot.Volume24hUSD >= f.MinVolume24hUSD
}
