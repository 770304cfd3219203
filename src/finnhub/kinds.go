package finnhub

import (
	"strings"

	"finnhub-bridge/src/models"
)

// -----------------------------------------------------------------------------
// Query kinds
// -----------------------------------------------------------------------------

// QueryKind is the enumerated category of a target. Unknown kinds are not an
// error anywhere in the pipeline; they fall through to the default behavior.
type QueryKind string

const (
	KindProfile     QueryKind = "profile"
	KindCandle      QueryKind = "candle"
	KindMetric      QueryKind = "metric"
	KindQuote       QueryKind = "quote"
	KindQuoteStream QueryKind = "quote-stream"
	KindEarnings    QueryKind = "earnings"
	KindFreeText    QueryKind = "free-text"
)

// -----------------------------------------------------------------------------

// KindOf returns the kind of a target.
func KindOf(target models.MTarget) QueryKind {
	return QueryKind(target.QueryType)
}

// -----------------------------------------------------------------------------

// NormalizeSymbol uppercases a ticker. Total and idempotent; an empty symbol
// stays empty and is simply omitted from provider requests.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
