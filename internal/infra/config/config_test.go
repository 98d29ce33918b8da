package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp keeps config.yaml and .env lookups away from the package directory.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{"TOKEN", "TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID", "PORT", "MONITOR_INTERVAL", "MONITOR_PAGE_SIZE", "BIRDEYE_API_KEY", "OTEL_EXPORTER_OTLP_ENDPOINT", "OTEL_SERVICE_NAME"} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	chdirTemp(t)
	clearEnv(t)

	cfg, err := LoadConfig(nil)
	require.NoError(t, err)

	assert.Equal(t, 60, cfg.Monitor.Interval)
	assert.Equal(t, 5, cfg.Monitor.PageSize)
	assert.Equal(t, 20000.0, cfg.Monitor.MinLiquidityUSD)
	assert.Equal(t, 10000.0, cfg.Monitor.MinVolume24hUSD)
	assert.Equal(t, 0, cfg.Monitor.SeenCapacity)
	assert.Equal(t, 3000, cfg.App.Port)
	assert.Equal(t, "solana", cfg.Sources.Chain)
	assert.Equal(t, "https://api.dexscreener.com", cfg.Sources.DexscreenerBaseURL)
	assert.Empty(t, cfg.Tracing.Endpoint)
	assert.Equal(t, "memecoin-radar", cfg.Tracing.ServiceName)
	assert.Error(t, cfg.RequireTelegram())
}

func TestLoadConfigTracingFromOtelEnv(t *testing.T) {
	chdirTemp(t)
	clearEnv(t)
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "collector:4317")

	cfg, err := LoadConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, "collector:4317", cfg.Tracing.Endpoint)
}

func TestLoadConfigHostingEnvNames(t *testing.T) {
	chdirTemp(t)
	clearEnv(t)
	t.Setenv("TOKEN", "123:abc")
	t.Setenv("PORT", "8080")

	cfg, err := LoadConfig(nil)
	require.NoError(t, err)

	assert.Equal(t, "123:abc", cfg.Telegram.Token)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.NoError(t, cfg.RequireTelegram())
}

func TestLoadConfigYAMLAndFlags(t *testing.T) {
	dir := chdirTemp(t)
	clearEnv(t)
	yaml := "monitor:\n  interval: 30\n  page_size: 10\ntelegram:\n  chat_id: \"-100123\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"--monitor.page_size=7"}))

	cfg, err := LoadConfig(fs)
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.Monitor.Interval)
	assert.Equal(t, 7, cfg.Monitor.PageSize)

	chatID, err := cfg.ChatID()
	require.NoError(t, err)
	assert.Equal(t, int64(-100123), chatID)
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	chdirTemp(t)
	clearEnv(t)

	t.Setenv("MONITOR_INTERVAL", "0")
	_, err := LoadConfig(nil)
	assert.ErrorContains(t, err, "monitor.interval")

	t.Setenv("MONITOR_INTERVAL", "60")
	t.Setenv("MONITOR_PAGE_SIZE", "500")
	_, err = LoadConfig(nil)
	assert.ErrorContains(t, err, "monitor.page_size")
}

func TestRequireTelegramRejectsBadChatID(t *testing.T) {
	cfg := &Config{Telegram: TelegramConfig{Token: "t", ChatID: "12abc"}}
	assert.ErrorContains(t, cfg.RequireTelegram(), "not a number")
}
