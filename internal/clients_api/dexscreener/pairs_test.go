package dexscreener

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"memecoin-radar/internal/clients_api/apiclient"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestServer(t *testing.T, path string, status int, body string) *Client {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, path, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	return NewClient(apiclient.New(apiclient.Options{
		Name:       "dexscreener",
		BaseURL:    server.URL,
		HTTPClient: server.Client(),
	}))
}

func TestGetMarketSnapshotUsesFirstPair(t *testing.T) {
	client := setupTestServer(t, "/latest/dex/tokens/X", http.StatusOK, `{
		"schemaVersion": "1.0.0",
		"pairs": [
			{"url": "https://dexscreener.com/solana/first", "liquidity": {"usd": 25000}, "volume": {"h24": 15000}},
			{"url": "https://dexscreener.com/solana/second", "liquidity": {"usd": 999999}, "volume": {"h24": 999999}}
		]
	}`)

	snapshot, err := client.GetMarketSnapshot(context.Background(), "X")
	require.NoError(t, err)
	require.NotNil(t, snapshot)
	assert.Equal(t, 25000.0, snapshot.LiquidityUSD)
	assert.Equal(t, 15000.0, snapshot.Volume24hUSD)
	assert.Equal(t, "https://dexscreener.com/solana/first", snapshot.ChartURL)
}

func TestGetMarketSnapshotMissingFieldsReadAsZero(t *testing.T) {
	client := setupTestServer(t, "/latest/dex/tokens/X", http.StatusOK, `{"pairs": [{"url": "u"}]}`)

	snapshot, err := client.GetMarketSnapshot(context.Background(), "X")
	require.NoError(t, err)
	require.NotNil(t, snapshot)
	assert.Zero(t, snapshot.LiquidityUSD)
	assert.Zero(t, snapshot.Volume24hUSD)
}

func TestGetMarketSnapshotNoPairs(t *testing.T) {
	for _, body := range []string{`{"pairs": null}`, `{"pairs": []}`, `{}`} {
		client := setupTestServer(t, "/latest/dex/tokens/X", http.StatusOK, body)

		snapshot, err := client.GetMarketSnapshot(context.Background(), "X")
		require.NoError(t, err, body)
		assert.Nil(t, snapshot, body)
	}
}

func TestGetMarketSnapshotUpstreamError(t *testing.T) {
	client := setupTestServer(t, "/latest/dex/tokens/X", http.StatusInternalServerError, `oops`)

	_, err := client.GetMarketSnapshot(context.Background(), "X")
	assert.ErrorContains(t, err, "failed to get pairs for X")
}
