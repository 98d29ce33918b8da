package dexscreener

import (
	"context"
	"fmt"
	"net/url"

	"memecoin-radar/internal/clients_api/apiclient"
	"memecoin-radar/internal/models"
)

// TokenPairsResponse - body of GET /latest/dex/tokens/{address}. pairs is null for unlisted tokens.
type TokenPairsResponse struct {
	SchemaVersion string `json:"schemaVersion"`
	Pairs         []Pair `json:"pairs"`
}

type Pair struct {
	ChainID     string `json:"chainId"`
	DexID       string `json:"dexId"`
	URL         string `json:"url"`
	PairAddress string `json:"pairAddress"`
	Liquidity   *struct {
		USD float64 `json:"usd"`
	} `json:"liquidity"`
	Volume *struct {
		H24 float64 `json:"h24"`
	} `json:"volume"`
}

type Client struct {
	api *apiclient.Client
}

func NewClient(api *apiclient.Client) *Client {
	return &Client{api: api}
}

// GetMarketSnapshot reads the first trading pair of address.
// It returns (nil, nil) when the token has no pairs yet.
func (c *Client) GetMarketSnapshot(ctx context.Context, address string) (*models.MarketSnapshot, error) {
	endpoint := "/latest/dex/tokens/" + url.PathEscape(address)

	var resp TokenPairsResponse
	if err := c.api.GetJSON(ctx, endpoint, nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to get pairs for %s: %w", address, err)
	}
	if len(resp.Pairs) == 0 {
		return nil, nil
	}

	pair := resp.Pairs[0]
	snapshot := &models.MarketSnapshot{ChartURL: pair.URL}
	if pair.Liquidity != nil {
		snapshot.LiquidityUSD = pair.Liquidity.USD
	}
	if pair.Volume != nil {
		snapshot.Volume24hUSD = pair.Volume.H24
	}
	return snapshot, nil
}
