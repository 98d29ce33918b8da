package token_poller

import (
	"fmt"
	"strings"

	"memecoin-radar/internal/models"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	TagSafe  = "✅ SAFE"
	TagRisky = "❌ RISKY"
)

var usdPrinter = message.NewPrinter(language.English)

// FormatAlert renders the plain-text alert sent to the chat.
func FormatAlert(token models.TokenCandidate, snapshot models.MarketSnapshot, safety models.SafetyAssessment) string {
	tag := TagRisky
	if safety.Safe() {
		tag = TagSafe
	}

	created := "?"
	if !token.CreatedAt.IsZero() {
		created = token.CreatedAt.UTC().Format("2006-01-02 15:04:05 UTC")
	}

	marketCap := "?"
	if token.MarketCap != nil && *token.MarketCap > 0 {
		marketCap = formatUSD(*token.MarketCap)
	}

	var text strings.Builder
	text.WriteString(fmt.Sprintf("%s NEW SOLANA TOKEN\n\n", tag))
	text.WriteString(fmt.Sprintf("Name: %s (%s)\n", token.Name, token.Symbol))
	text.WriteString(fmt.Sprintf("CA: %s\n", token.Address))
	text.WriteString(fmt.Sprintf("Created: %s\n", created))
	text.WriteString(fmt.Sprintf("Liquidity: %s\n", formatUSD(snapshot.LiquidityUSD)))
	text.WriteString(fmt.Sprintf("Volume (24h): %s\n", formatUSD(snapshot.Volume24hUSD)))
	text.WriteString(fmt.Sprintf("Ownership Renounced: %s\n", checkMark(safety.OwnershipRenounced)))
	text.WriteString(fmt.Sprintf("LP Locked: %s\n", checkMark(safety.LiquidityLocked)))
	text.WriteString(fmt.Sprintf("Market Cap: %s\n", marketCap))
	text.WriteString(fmt.Sprintf("Chart: %s\n", snapshot.ChartURL))

	return text.String()
}

// 25000 -> $25,000
func formatUSD(value float64) string {
	return "$" + usdPrinter.Sprintf("%.0f", value)
}

func checkMark(ok bool) string {
	if ok {
		return "✅"
	}
	return "❌"
}
