package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config -
type Config struct {
	Telegram TelegramConfig `mapstructure:"telegram"`
	Monitor  MonitorConfig  `mapstructure:"monitor"`
	Sources  SourcesConfig  `mapstructure:"sources"`
	App      AppConfig      `mapstructure:"app"`
	Tracing  TracingConfig  `mapstructure:"tracing"`
}

type TelegramConfig struct {
	Token  string `mapstructure:"token"`
	ChatID string `mapstructure:"chat_id"` // optional destination registered at startup
}

// MonitorConfig - new token polling and filtering
type MonitorConfig struct {
	Interval        int     `mapstructure:"interval"` // seconds between ticks
	PageSize        int     `mapstructure:"page_size"`
	MinLiquidityUSD float64 `mapstructure:"min_liquidity_usd"`
	MinVolume24hUSD float64 `mapstructure:"min_volume_24h_usd"`
	SeenCapacity    int     `mapstructure:"seen_capacity"` // 0 keeps every alerted address
}

// SourcesConfig - upstream data APIs
type SourcesConfig struct {
	BirdeyeBaseURL     string  `mapstructure:"birdeye_base_url"`
	BirdeyeAPIKey      string  `mapstructure:"birdeye_api_key"`
	Chain              string  `mapstructure:"chain"`
	DexscreenerBaseURL string  `mapstructure:"dexscreener_base_url"`
	SolscanBaseURL     string  `mapstructure:"solscan_base_url"`
	SolscanAPIKey      string  `mapstructure:"solscan_api_key"`
	RequestTimeout     int     `mapstructure:"request_timeout"` // seconds
	RateLimit          float64 `mapstructure:"rate_limit"`      // requests per second per source
	RateBurst          int     `mapstructure:"rate_burst"`
}

// AppConfig -
type AppConfig struct {
	Port       int    `mapstructure:"port"`
	LogDir     string `mapstructure:"log_dir"`
	LogLevel   string `mapstructure:"log_level"`
	IgnoreFile string `mapstructure:"ignore_file"`
}

// TracingConfig - spans go to an OTLP gRPC collector when endpoint is set,
// otherwise they are written to the debug log.
type TracingConfig struct {
	Endpoint    string `mapstructure:"endpoint"`
	ServiceName string `mapstructure:"service_name"`
}

// LoadConfig builds the config from, lowest to highest priority:
// 1. defaults
// 2. config.yaml in the working directory
// 3. environment (.env is loaded into it first)
// 4. flags that were set on the command line
// flags may be nil.
func LoadConfig(flags *pflag.FlagSet) (*Config, error) {
	_ = godotenv.Load(".env")

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config.yaml: %w", err)
		}
	}

	setupEnvAliases(v)

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	config.Telegram.ChatID = strings.TrimSpace(config.Telegram.ChatID)

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func setupEnvAliases(v *viper.Viper) {
	// TOKEN and PORT are the names hosting platforms already set for this bot.
	v.BindEnv("telegram.token", "TOKEN", "TELEGRAM_BOT_TOKEN")
	v.BindEnv("telegram.chat_id", "TELEGRAM_CHAT_ID")

	v.BindEnv("monitor.interval", "MONITOR_INTERVAL")
	v.BindEnv("monitor.page_size", "MONITOR_PAGE_SIZE")
	v.BindEnv("monitor.min_liquidity_usd", "MONITOR_MIN_LIQUIDITY_USD")
	v.BindEnv("monitor.min_volume_24h_usd", "MONITOR_MIN_VOLUME_24H_USD")
	v.BindEnv("monitor.seen_capacity", "MONITOR_SEEN_CAPACITY")

	v.BindEnv("sources.birdeye_base_url", "BIRDEYE_BASE_URL")
	v.BindEnv("sources.birdeye_api_key", "BIRDEYE_API_KEY")
	v.BindEnv("sources.chain", "CHAIN")
	v.BindEnv("sources.dexscreener_base_url", "DEXSCREENER_BASE_URL")
	v.BindEnv("sources.solscan_base_url", "SOLSCAN_BASE_URL")
	v.BindEnv("sources.solscan_api_key", "SOLSCAN_API_KEY")
	v.BindEnv("sources.request_timeout", "SOURCES_REQUEST_TIMEOUT")
	v.BindEnv("sources.rate_limit", "SOURCES_RATE_LIMIT")
	v.BindEnv("sources.rate_burst", "SOURCES_RATE_BURST")

	v.BindEnv("app.port", "PORT")
	v.BindEnv("app.log_dir", "LOG_DIR")
	v.BindEnv("app.log_level", "LOG_LEVEL")
	v.BindEnv("app.ignore_file", "IGNORE_FILE")

	v.BindEnv("tracing.endpoint", "OTEL_EXPORTER_OTLP_ENDPOINT")
	v.BindEnv("tracing.service_name", "OTEL_SERVICE_NAME")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("telegram.token", "")
	v.SetDefault("telegram.chat_id", "")

	v.SetDefault("monitor.interval", 60)
	v.SetDefault("monitor.page_size", 5)
	v.SetDefault("monitor.min_liquidity_usd", 20000.0)
	v.SetDefault("monitor.min_volume_24h_usd", 10000.0)
	v.SetDefault("monitor.seen_capacity", 0)

	v.SetDefault("sources.birdeye_base_url", "https://public-api.birdeye.so")
	v.SetDefault("sources.birdeye_api_key", "")
	v.SetDefault("sources.chain", "solana")
	v.SetDefault("sources.dexscreener_base_url", "https://api.dexscreener.com")
	v.SetDefault("sources.solscan_base_url", "https://public-api.solscan.io")
	v.SetDefault("sources.solscan_api_key", "")
	v.SetDefault("sources.request_timeout", 15)
	v.SetDefault("sources.rate_limit", 5.0)
	v.SetDefault("sources.rate_burst", 5)

	v.SetDefault("app.port", 3000)
	v.SetDefault("app.log_dir", "logs")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.ignore_file", "data_in/ignored_tokens.json")

	v.SetDefault("tracing.endpoint", "")
	v.SetDefault("tracing.service_name", "memecoin-radar")
}

// RegisterFlags adds one flag per key. Flag names match viper keys so BindPFlags maps them directly.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("telegram.token", "", "Telegram bot token (env: TOKEN)")
	fs.String("telegram.chat_id", "", "Chat ID to alert without waiting for /start (env: TELEGRAM_CHAT_ID)")

	fs.Int("monitor.interval", 60, "Seconds between polls (env: MONITOR_INTERVAL)")
	fs.Int("monitor.page_size", 5, "Newest tokens fetched per poll (env: MONITOR_PAGE_SIZE)")
	fs.Float64("monitor.min_liquidity_usd", 20000, "Minimum pair liquidity in USD (env: MONITOR_MIN_LIQUIDITY_USD)")
	fs.Float64("monitor.min_volume_24h_usd", 10000, "Minimum 24h volume in USD (env: MONITOR_MIN_VOLUME_24H_USD)")
	fs.Int("monitor.seen_capacity", 0, "Max remembered alerted tokens, 0 = unbounded (env: MONITOR_SEEN_CAPACITY)")

	fs.String("sources.birdeye_base_url", "https://public-api.birdeye.so", "Birdeye API base URL (env: BIRDEYE_BASE_URL)")
	fs.String("sources.birdeye_api_key", "", "Birdeye API key (env: BIRDEYE_API_KEY)")
	fs.String("sources.chain", "solana", "Chain passed to Birdeye (env: CHAIN)")
	fs.String("sources.dexscreener_base_url", "https://api.dexscreener.com", "DexScreener API base URL (env: DEXSCREENER_BASE_URL)")
	fs.String("sources.solscan_base_url", "https://public-api.solscan.io", "Solscan API base URL (env: SOLSCAN_BASE_URL)")
	fs.String("sources.solscan_api_key", "", "Solscan API key (env: SOLSCAN_API_KEY)")
	fs.Int("sources.request_timeout", 15, "Per-request timeout in seconds (env: SOURCES_REQUEST_TIMEOUT)")
	fs.Float64("sources.rate_limit", 5, "Requests per second per source (env: SOURCES_RATE_LIMIT)")
	fs.Int("sources.rate_burst", 5, "Request burst per source (env: SOURCES_RATE_BURST)")

	fs.Int("app.port", 3000, "Keep-alive listen port (env: PORT)")
	fs.String("app.log_dir", "logs", "Log directory (env: LOG_DIR)")
	fs.String("app.log_level", "info", "File log level (env: LOG_LEVEL)")
	fs.String("app.ignore_file", "data_in/ignored_tokens.json", "JSON file of token addresses to never alert on (env: IGNORE_FILE)")

	fs.String("tracing.endpoint", "", "OTLP gRPC collector host:port, empty logs spans instead (env: OTEL_EXPORTER_OTLP_ENDPOINT)")
	fs.String("tracing.service_name", "memecoin-radar", "Service name on exported spans (env: OTEL_SERVICE_NAME)")
}

func validateConfig(cfg *Config) error {
	if cfg.Monitor.Interval <= 0 {
		return fmt.Errorf("monitor.interval must be positive, got %d", cfg.Monitor.Interval)
	}
	if cfg.Monitor.PageSize < 1 || cfg.Monitor.PageSize > 50 {
		return fmt.Errorf("monitor.page_size must be between 1 and 50, got %d", cfg.Monitor.PageSize)
	}
	if cfg.Monitor.MinLiquidityUSD < 0 || cfg.Monitor.MinVolume24hUSD < 0 {
		return fmt.Errorf("monitor thresholds must not be negative")
	}
	if cfg.Monitor.SeenCapacity < 0 {
		return fmt.Errorf("monitor.seen_capacity must not be negative, got %d", cfg.Monitor.SeenCapacity)
	}
	if cfg.Sources.RequestTimeout <= 0 {
		return fmt.Errorf("sources.request_timeout must be positive, got %d", cfg.Sources.RequestTimeout)
	}
	return nil
}

// RequireTelegram checks what the long-running bot needs on top of validateConfig.
func (c *Config) RequireTelegram() error {
	if c.Telegram.Token == "" {
		return fmt.Errorf("telegram.token is required (env: TOKEN)")
	}
	if c.Telegram.ChatID != "" {
		if _, err := c.ChatID(); err != nil {
			return err
		}
	}
	return nil
}

// ChatID parses telegram.chat_id. Group chats have negative ids.
func (c *Config) ChatID() (int64, error) {
	chatID, err := strconv.ParseInt(c.Telegram.ChatID, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("telegram.chat_id %q is not a number: %w", c.Telegram.ChatID, err)
	}
	return chatID, nil
}
