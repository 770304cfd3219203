package models

// Ring buffer feature layout (row = [timestamp, value])
const (
	RB_NUM_FEATURES = 2

	RB_IDX_TIMESTAMP = 0
	RB_IDX_VALUE     = 1
)

// MStreamSample is one (timestamp, value) sample of a rolling streaming
// buffer. Timestamp is epoch seconds as delivered by the provider.
type MStreamSample struct {
	Timestamp int64   `json:"timestamp"`
	Value     float64 `json:"value"`
}
