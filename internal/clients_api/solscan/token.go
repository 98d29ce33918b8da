package solscan

// Solscan public API: token ownership and liquidity pool records.

import (
	"context"
	"fmt"
	"net/url"

	"memecoin-radar/internal/clients_api/apiclient"
	"memecoin-radar/internal/models"
)

// TokenResponse - body of GET /token/{address}. Only the owner is read.
type TokenResponse struct {
	Owner string `json:"owner"`
}

// MarketResponse - body of GET /market/token/{address}.
type MarketResponse struct {
	Data []PoolRecord `json:"data"`
}

type PoolRecord struct {
	Address string `json:"address"`
	Locked  bool   `json:"locked"`
}

type Client struct {
	api *apiclient.Client
}

func NewClient(api *apiclient.Client) *Client {
	return &Client{api: api}
}

// Headers returns the auth header Solscan expects, if a key is configured.
func Headers(apiKey string) map[string]string {
	if apiKey == "" {
		return nil
	}
	return map[string]string{"token": apiKey}
}

// GetTokenOwner returns the owner field of address; empty when the source omits it.
func (c *Client) GetTokenOwner(ctx context.Context, address string) (string, error) {
	var resp TokenResponse
	if err := c.api.GetJSON(ctx, "/token/"+url.PathEscape(address), nil, &resp); err != nil {
		return "", fmt.Errorf("failed to get token info for %s: %w", address, err)
	}
	return resp.Owner, nil
}

// GetPools returns the liquidity pool records of address.
func (c *Client) GetPools(ctx context.Context, address string) ([]models.PoolInfo, error) {
	var resp MarketResponse
	if err := c.api.GetJSON(ctx, "/market/token/"+url.PathEscape(address), nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to get pools for %s: %w", address, err)
	}

	pools := make([]models.PoolInfo, 0, len(resp.Data))
	for _, record := range resp.Data {
		pools = append(pools, models.PoolInfo{Address: record.Address, Locked: record.Locked})
	}
	return pools, nil
}
