package fs

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	logging "memecoin-radar/internal/infra/log"

	"go.uber.org/zap"
)

// IgnoredTokensData - {"tokens": ["<mint address>", ...]}
type IgnoredTokensData struct {
	Tokens []string `json:"tokens"`
}

// LoadIgnoredTokens reads the list of token addresses that must never be alerted on.
// A missing or empty file is an empty list. The file is read once at startup and never written.
func LoadIgnoredTokens(filePath string) ([]string, error) {
	if filePath == "" {
		return []string{}, nil
	}

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		logging.LogDebug("Ignored tokens file does not exist, returning empty list", zap.String("file", filePath))
		return []string{}, nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read ignored tokens file: %w", err)
	}

	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "{}" {
		logging.LogDebug("Ignored tokens file is empty, returning empty list", zap.String("file", filePath))
		return []string{}, nil
	}

	var tokensData IgnoredTokensData
	if err := json.Unmarshal(data, &tokensData); err != nil {
		return nil, fmt.Errorf("failed to parse ignored tokens JSON: %w", err)
	}

	tokens := make([]string, 0, len(tokensData.Tokens))
	for _, token := range tokensData.Tokens {
		if token = strings.TrimSpace(token); token != "" {
			tokens = append(tokens, token)
		}
	}

	logging.LogDebug("Loaded ignored tokens from file",
		zap.String("file", filePath),
		zap.Int("count", len(tokens)))

	return tokens, nil
}
