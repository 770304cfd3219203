package models

// -----------------------------------------------------------------------------
// Normalized output shapes (the only vocabulary the caller understands)
// -----------------------------------------------------------------------------

// MColumn is one typed table column. Type is "string" or "number".
type MColumn struct {
	Text string `json:"text"`
	Type string `json:"type"`
}

// MTable is an ordered column list plus row value-sequences.
type MTable struct {
	Columns []MColumn       `json:"columns"`
	Rows    [][]interface{} `json:"rows"`
}

// MPoint is one time-series sample; Timestamp is epoch milliseconds.
type MPoint struct {
	Value     float64 `json:"value"`
	Timestamp int64   `json:"timestamp"`
}

// MTimeSeries is one named series of samples.
type MTimeSeries struct {
	Name   string   `json:"target"`
	Points []MPoint `json:"datapoints"`
}

// MNormalizedOutput is either a Table or a set of time series, tagged with
// the RefID of the target that produced it.
type MNormalizedOutput struct {
	RefID  string        `json:"refId"`
	Table  *MTable       `json:"table,omitempty"`
	Series []MTimeSeries `json:"series,omitempty"`
}
