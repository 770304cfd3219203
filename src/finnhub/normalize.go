package finnhub

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"finnhub-bridge/src/models"
)

// -----------------------------------------------------------------------------
// Response Shape Normalizer
//
// Provider payloads are not validated against a schema; only the expected
// fields are extracted and extras are tolerated. An unrecognized kind yields
// an empty result shape, never an error.
// -----------------------------------------------------------------------------

// Normalize decodes a raw provider payload into the uniform output shape for
// the given kind and format. RefID tagging is the dispatcher's job.
func Normalize(raw []byte, kind QueryKind, format OutputFormat) (models.MNormalizedOutput, error) {
	var payload interface{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &payload); err != nil {
			return models.MNormalizedOutput{}, fmt.Errorf("failed to decode provider payload: %w", err)
		}
	}

	payload = unwrapMetricEnvelope(payload)

	if format == FormatTable {
		table := normalizeTable(payload)
		return models.MNormalizedOutput{Table: &table}, nil
	}

	return models.MNormalizedOutput{Series: normalizeSeries(payload, kind)}, nil
}

// -----------------------------------------------------------------------------

// unwrapMetricEnvelope strips the provider's nested `metric` wrapper when
// present, before any classification or decoding.
func unwrapMetricEnvelope(payload interface{}) interface{} {
	if m, ok := payload.(map[string]interface{}); ok {
		if inner, ok := m["metric"].(map[string]interface{}); ok {
			return inner
		}
	}
	return payload
}

// -----------------------------------------------------------------------------
// Table path
// -----------------------------------------------------------------------------

func normalizeTable(payload interface{}) models.MTable {
	rows := asRowMaps(payload)
	if len(rows) == 0 {
		// Empty table sentinel: no columns, no rows
		return models.MTable{
			Columns: []models.MColumn{},
			Rows:    [][]interface{}{},
		}
	}

	// Columns come from the key set of the first row, in deterministic order
	keys := make([]string, 0, len(rows[0]))
	for k := range rows[0] {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	columns := make([]models.MColumn, 0, len(keys))
	for _, k := range keys {
		colType := "number"
		if _, isText := rows[0][k].(string); isText {
			colType = "string"
		}
		columns = append(columns, models.MColumn{Text: k, Type: colType})
	}

	tableRows := make([][]interface{}, 0, len(rows))
	for _, row := range rows {
		values := make([]interface{}, 0, len(keys))
		for _, k := range keys {
			values = append(values, row[k])
		}
		tableRows = append(tableRows, values)
	}

	return models.MTable{Columns: columns, Rows: tableRows}
}

// -----------------------------------------------------------------------------

// asRowMaps coerces a payload into a list of row objects. A single object is
// treated as a one-row list; anything else is empty.
func asRowMaps(payload interface{}) []map[string]interface{} {
	switch v := payload.(type) {
	case []interface{}:
		rows := make([]map[string]interface{}, 0, len(v))
		for _, entry := range v {
			if m, ok := entry.(map[string]interface{}); ok {
				rows = append(rows, m)
			}
		}
		return rows
	case map[string]interface{}:
		if len(v) == 0 {
			return nil
		}
		return []map[string]interface{}{v}
	default:
		return nil
	}
}

// -----------------------------------------------------------------------------
// Time-series path
// -----------------------------------------------------------------------------

func normalizeSeries(payload interface{}, kind QueryKind) []models.MTimeSeries {
	switch kind {
	case KindEarnings:
		return earningsSeries(payload)
	case KindQuote:
		return quoteSeries(payload)
	case KindCandle:
		return candleSeries(payload)
	default:
		return []models.MTimeSeries{}
	}
}

// -----------------------------------------------------------------------------

// earningsSeries turns every field of each data point except period and
// symbol into its own named series, timestamped by the period date.
func earningsSeries(payload interface{}) []models.MTimeSeries {
	points, ok := payload.([]interface{})
	if !ok {
		return []models.MTimeSeries{}
	}

	names := make(map[string]bool)
	for _, p := range points {
		entry, ok := p.(map[string]interface{})
		if !ok {
			continue
		}
		for field := range entry {
			if field == "period" || field == "symbol" {
				continue
			}
			names[field] = true
		}
	}

	ordered := make([]string, 0, len(names))
	for name := range names {
		ordered = append(ordered, name)
	}
	sort.Strings(ordered)

	series := make([]models.MTimeSeries, 0, len(ordered))
	for _, name := range ordered {
		s := models.MTimeSeries{Name: name, Points: []models.MPoint{}}
		for _, p := range points {
			entry, ok := p.(map[string]interface{})
			if !ok {
				continue
			}
			value, hasValue := asFloat(entry[name])
			period, _ := entry["period"].(string)
			ts, err := periodToMs(period)
			if !hasValue || err != nil {
				continue
			}
			s.Points = append(s.Points, models.MPoint{Value: value, Timestamp: ts})
		}
		series = append(series, s)
	}

	return series
}

// -----------------------------------------------------------------------------

// quoteSeries is a single "current price" series with exactly one sample.
func quoteSeries(payload interface{}) []models.MTimeSeries {
	entry, ok := payload.(map[string]interface{})
	if !ok {
		return []models.MTimeSeries{}
	}

	price, hasPrice := asFloat(entry["c"])
	ts, hasTs := asFloat(entry["t"])
	if !hasPrice || !hasTs {
		return []models.MTimeSeries{}
	}

	return []models.MTimeSeries{{
		Name: "current price",
		Points: []models.MPoint{
			{Value: price, Timestamp: int64(ts) * 1000},
		},
	}}
}

// -----------------------------------------------------------------------------

// candleSeries zips the candle payload's time axis against the open and
// close arrays, scaling timestamps to milliseconds.
func candleSeries(payload interface{}) []models.MTimeSeries {
	entry, ok := payload.(map[string]interface{})
	if !ok {
		return []models.MTimeSeries{}
	}

	times := asFloats(entry["t"])
	opens := asFloats(entry["o"])
	closes := asFloats(entry["c"])

	return []models.MTimeSeries{
		zipSeries("open price", times, opens),
		zipSeries("close price", times, closes),
	}
}

// -----------------------------------------------------------------------------

func zipSeries(name string, times, values []float64) models.MTimeSeries {
	n := len(times)
	if len(values) < n {
		n = len(values)
	}

	points := make([]models.MPoint, 0, n)
	for i := 0; i < n; i++ {
		points = append(points, models.MPoint{
			Value:     values[i],
			Timestamp: int64(times[i]) * 1000,
		})
	}

	return models.MTimeSeries{Name: name, Points: points}
}

// -----------------------------------------------------------------------------
// Field extraction helpers
// -----------------------------------------------------------------------------

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// -----------------------------------------------------------------------------

func asFloats(v interface{}) []float64 {
	list, ok := v.([]interface{})
	if !ok {
		return nil
	}

	result := make([]float64, 0, len(list))
	for _, entry := range list {
		if f, ok := asFloat(entry); ok {
			result = append(result, f)
		}
	}
	return result
}

// -----------------------------------------------------------------------------

// periodToMs parses an earnings period date ("2006-01-02") into epoch ms.
func periodToMs(period string) (int64, error) {
	t, err := time.Parse("2006-01-02", period)
	if err != nil {
		return 0, err
	}
	return t.UnixMilli(), nil
}
