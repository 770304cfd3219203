package finnhub

import (
	"strconv"

	"finnhub-bridge/src/models"
)

// -----------------------------------------------------------------------------
// Query Descriptor Builder
// -----------------------------------------------------------------------------

// BuildRequest converts a target plus the batch time range into the flat
// provider request payload. Total over kind: candle gets resolution and the
// range as unix seconds, metric gets the metric name, everything else
// (profile, quote, earnings, unknown) gets just the symbol.
func BuildRequest(target models.MTarget, rng models.MTimeRange) models.MProviderRequest {
	params := make(map[string]string)

	if symbol := NormalizeSymbol(target.Symbol); symbol != "" {
		params["symbol"] = symbol
	}

	switch KindOf(target) {
	case KindCandle:
		params["resolution"] = target.Resolution
		params["from"] = strconv.FormatInt(rng.From.Unix(), 10)
		params["to"] = strconv.FormatInt(rng.To.Unix(), 10)

	case KindMetric:
		params["metric"] = target.Metric
	}

	return models.MProviderRequest{
		RefID:  target.RefID,
		Params: params,
	}
}
