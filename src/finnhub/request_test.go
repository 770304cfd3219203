package finnhub

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finnhub-bridge/src/models"
)

func TestBuildRequestCandle(t *testing.T) {
	target := models.MTarget{
		RefID:      "A",
		QueryType:  "candle",
		Symbol:     "aapl",
		Resolution: "D",
	}
	rng := models.MTimeRange{
		From: time.Unix(1600000000, 0),
		To:   time.Unix(1600086400, 0),
	}

	req := BuildRequest(target, rng)

	assert.Equal(t, "A", req.RefID)
	assert.Equal(t, "AAPL", req.Params["symbol"])
	assert.Equal(t, "D", req.Params["resolution"])
	assert.Equal(t, "1600000000", req.Params["from"])
	assert.Equal(t, "1600086400", req.Params["to"])
}

func TestBuildRequestMetric(t *testing.T) {
	target := models.MTarget{
		RefID:     "B",
		QueryType: "metric",
		Symbol:    "msft",
		Metric:    "price",
	}

	req := BuildRequest(target, models.MTimeRange{})

	assert.Equal(t, "B", req.RefID)
	assert.Equal(t, "MSFT", req.Params["symbol"])
	assert.Equal(t, "price", req.Params["metric"])
	assert.NotContains(t, req.Params, "from")
	assert.NotContains(t, req.Params, "to")
}

func TestBuildRequestDefaultShape(t *testing.T) {
	for _, kind := range []string{"profile", "quote", "earnings", "something-new"} {
		target := models.MTarget{RefID: "C", QueryType: kind, Symbol: "tsla"}

		req := BuildRequest(target, models.MTimeRange{})

		require.Equal(t, "C", req.RefID, "kind %s", kind)
		assert.Equal(t, map[string]string{"symbol": "TSLA"}, req.Params, "kind %s", kind)
	}
}

func TestBuildRequestAbsentSymbol(t *testing.T) {
	req := BuildRequest(models.MTarget{RefID: "D", QueryType: "profile"}, models.MTimeRange{})

	assert.NotContains(t, req.Params, "symbol")
}

func TestNormalizeSymbolIdempotent(t *testing.T) {
	once := NormalizeSymbol("aapl")
	twice := NormalizeSymbol(once)

	assert.Equal(t, "AAPL", once)
	assert.Equal(t, once, twice)
}
