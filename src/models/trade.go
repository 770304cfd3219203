package models

// -----------------------------------------------------------------------------
// Finnhub trade-stream wire shapes
// -----------------------------------------------------------------------------

// MSubscribeMessage is the handshake sent right after the socket opens.
type MSubscribeMessage struct {
	Type   string `json:"type"`
	Symbol string `json:"symbol"`
}

// MTradeTick is one tick inside a trade message. Timestamp is epoch seconds.
type MTradeTick struct {
	Symbol    string  `json:"s"`
	Price     float64 `json:"p"`
	Timestamp int64   `json:"t"`
	Volume    float64 `json:"v"`
}

// MStreamMessage is the inbound envelope. Types other than "trade" are ignored.
type MStreamMessage struct {
	Type string       `json:"type"`
	Data []MTradeTick `json:"data"`
}

// MStreamUpdate is one emission on the merged feed: the current rolling
// buffer of the subscription that received a tick, keyed by its RefID.
type MStreamUpdate struct {
	RefID   string          `json:"refId"`
	Symbol  string          `json:"symbol"`
	Samples []MStreamSample `json:"samples"`
}
