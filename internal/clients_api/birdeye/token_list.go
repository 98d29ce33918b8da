package birdeye

// Token-list source: the most recently created tokens on a chain, newest first.

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"memecoin-radar/internal/clients_api/apiclient"
	"memecoin-radar/internal/models"
)

const tokenListEndpoint = "/public/tokenlist"

// TokenListResponse - body of GET /public/tokenlist.
type TokenListResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Tokens []Token `json:"tokens"`
	} `json:"data"`
}

type Token struct {
	Address   string   `json:"address"`
	Name      string   `json:"name"`
	Symbol    string   `json:"symbol"`
	CreatedAt float64  `json:"createdAt"` // unix seconds
	MarketCap *float64 `json:"mc"`
}

type Client struct {
	api *apiclient.Client
}

// NewClient wraps an apiclient configured with the Birdeye base URL, x-chain and X-API-KEY headers.
func NewClient(api *apiclient.Client) *Client {
	return &Client{api: api}
}

// Headers returns the request headers Birdeye expects for chain.
func Headers(chain, apiKey string) map[string]string {
	headers := map[string]string{"x-chain": chain}
	if apiKey != "" {
		headers["X-API-KEY"] = apiKey
	}
	return headers
}

// ListNewTokens returns up to limit tokens sorted by creation time, newest first.
func (c *Client) ListNewTokens(ctx context.Context, limit int) ([]models.TokenCandidate, error) {
	query := url.Values{}
	query.Set("sort_by", "createdAt")
	query.Set("sort_type", "desc")
	query.Set("offset", "0")
	query.Set("limit", strconv.Itoa(limit))

	var resp TokenListResponse
	if err := c.api.GetJSON(ctx, tokenListEndpoint, query, &resp); err != nil {
		return nil, fmt.Errorf("failed to get token list: %w", err)
	}

	candidates := make([]models.TokenCandidate, 0, len(resp.Data.Tokens))
	for _, token := range resp.Data.Tokens {
		if token.Address == "" {
			continue
		}
		candidates = append(candidates, token.toCandidate())
	}
	return candidates, nil
}

func (t Token) toCandidate() models.TokenCandidate {
	candidate := models.TokenCandidate{
		Address:   t.Address,
		Name:      t.Name,
		Symbol:    t.Symbol,
		MarketCap: t.MarketCap,
	}
	if t.CreatedAt > 0 {
		candidate.CreatedAt = time.Unix(int64(t.CreatedAt), 0).UTC()
	}
	return candidate
}
