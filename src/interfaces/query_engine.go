package interfaces

import "finnhub-bridge/src/models"

// -----------------------------------------------------------------------------
// IQueryEngine is the bridge's entry point: batch dispatch plus health probe.
// -----------------------------------------------------------------------------

type IQueryEngine interface {

	// -----------------------------------------------------------------------------

	// QueryData resolves one batch of targets sharing a time range.
	// A batch whose first target is the streaming kind is routed entirely to
	// the streaming path; everything else goes through the REST pipeline.
	QueryData(req models.MQueryRequest) (models.MQueryResponse, error)

	// -----------------------------------------------------------------------------

	// CheckHealth probes the provider with current credentials.
	CheckHealth() models.MHealthStatus
}
