package finnhub

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyFreeTextAlwaysTable(t *testing.T) {
	for _, kind := range []QueryKind{KindProfile, KindCandle, KindQuote, KindEarnings, KindMetric} {
		assert.Equal(t, FormatTable, Classify(kind, true), "kind %s", kind)
	}
}

func TestClassifyStandardKinds(t *testing.T) {
	assert.Equal(t, FormatTable, Classify(KindMetric, false))

	for _, kind := range []QueryKind{KindProfile, KindCandle, KindQuote, KindEarnings} {
		assert.Equal(t, FormatTimeSeries, Classify(kind, false), "kind %s", kind)
	}
}

func TestClassifyUnknownKind(t *testing.T) {
	assert.Equal(t, FormatTimeSeries, Classify(QueryKind("mystery"), false))
}
