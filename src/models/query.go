package models

import "time"

// -----------------------------------------------------------------------------
// Inbound query contract (caller -> bridge)
// -----------------------------------------------------------------------------

// MTimeRange is the window shared by every target of a batch.
// Only windowed kinds (candle) consume it.
type MTimeRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// MTarget is one query unit within a batch. RefID is caller-supplied and is
// echoed back unchanged on every result; it is the only demultiplexing key.
type MTarget struct {
	RefID      string `json:"refId"`
	QueryType  string `json:"queryType"`
	Symbol     string `json:"symbol"`
	Resolution string `json:"resolution,omitempty"`
	Metric     string `json:"metric,omitempty"`
	RawQuery   string `json:"rawQuery,omitempty"`
}

// MQueryRequest is a batch of targets sharing one time range.
type MQueryRequest struct {
	Range   MTimeRange `json:"range"`
	Targets []MTarget  `json:"targets"`
}

// MQueryResponse is the resolved payload for a non-streaming batch, or the
// subscription acknowledgement for a streaming one.
type MQueryResponse struct {
	Stream  bool                `json:"stream,omitempty"`
	RefIDs  []string            `json:"refIds,omitempty"`
	Results []MNormalizedOutput `json:"results"`
}

// -----------------------------------------------------------------------------
// Provider request (bridge -> finnhub REST)
// -----------------------------------------------------------------------------

// MProviderRequest is the flat key/value payload derived from a target.
// It never retains the target itself, only its RefID.
type MProviderRequest struct {
	RefID  string
	Params map[string]string
}

// -----------------------------------------------------------------------------
// Health
// -----------------------------------------------------------------------------

type MHealthStatus struct {
	Status        string `json:"status"` // "success" or "error"
	Subscriptions int    `json:"subscriptions"`
	MarketOpen    bool   `json:"market_open"`
}
