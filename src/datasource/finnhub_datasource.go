package datasource

import (
	"fmt"
	"sync"
	"time"

	"finnhub-bridge/src/finnhub"
	"finnhub-bridge/src/logger"
	"finnhub-bridge/src/models"
	"finnhub-bridge/src/stream"
	"finnhub-bridge/src/utils"
)

// -----------------------------------------------------------------------------
// FinnhubDataSource is the bridge's entry point: it routes a batch either to
// the streaming path or through the build -> dispatch -> normalize pipeline.
// -----------------------------------------------------------------------------

type FinnhubDataSource struct {
	Client      *finnhub.Client
	Sessions    *stream.Manager
	Logger      *logger.Logger
	ProbeSymbol string
	Calendar    *utils.TradingCalendar
}

// -----------------------------------------------------------------------------

func NewFinnhubDataSource(cfg *models.MConfig, client *finnhub.Client, sessions *stream.Manager, log *logger.Logger) *FinnhubDataSource {
	return &FinnhubDataSource{
		Client:      client,
		Sessions:    sessions,
		Logger:      log,
		ProbeSymbol: cfg.Provider.ProbeSymbol,
		Calendar:    utils.GetCalendar(cfg.Provider.ProbeSymbol),
	}
}

// -----------------------------------------------------------------------------

// QueryData resolves one batch of targets sharing a time range. The batch is
// routed uniformly on the first target's kind: quote-stream batches open one
// subscription per target, everything else is fetched over REST. Every batch
// starts by closing all previously open subscriptions.
func (ds *FinnhubDataSource) QueryData(req models.MQueryRequest) (models.MQueryResponse, error) {
	ds.Sessions.CloseAll()

	if len(req.Targets) == 0 {
		return models.MQueryResponse{Results: []models.MNormalizedOutput{}}, nil
	}

	if finnhub.KindOf(req.Targets[0]) == finnhub.KindQuoteStream {
		return ds.openStreams(req.Targets)
	}

	return ds.dispatchBatch(req)
}

// -----------------------------------------------------------------------------

// openStreams opens one subscription per target. Emissions flow over the
// session manager's merged feed; the response only acknowledges the refIds.
func (ds *FinnhubDataSource) openStreams(targets []models.MTarget) (models.MQueryResponse, error) {
	refIDs := make([]string, 0, len(targets))

	for _, target := range targets {
		if err := ds.Sessions.Open(target); err != nil {
			ds.Sessions.CloseAll()
			return models.MQueryResponse{}, err
		}
		refIDs = append(refIDs, target.RefID)
	}

	return models.MQueryResponse{
		Stream:  true,
		RefIDs:  refIDs,
		Results: []models.MNormalizedOutput{},
	}, nil
}

// -----------------------------------------------------------------------------

// dispatchBatch fetches all targets concurrently and joins positionally:
// results keep the original target order and the whole batch fails if any
// one target fails.
func (ds *FinnhubDataSource) dispatchBatch(req models.MQueryRequest) (models.MQueryResponse, error) {
	results := make([]models.MNormalizedOutput, len(req.Targets))
	errs := make([]error, len(req.Targets))

	var wg sync.WaitGroup
	for i, target := range req.Targets {
		wg.Add(1)
		go func(idx int, t models.MTarget) {
			defer wg.Done()

			out, err := ds.queryTarget(t, req.Range)
			if err != nil {
				errs[idx] = err
				return
			}
			results[idx] = out
		}(i, target)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return models.MQueryResponse{}, fmt.Errorf("target %s failed: %w", req.Targets[i].RefID, err)
		}
	}

	return models.MQueryResponse{Results: results}, nil
}

// -----------------------------------------------------------------------------

// queryTarget runs one target through the pipeline. A raw free-text override
// bypasses request construction and always renders as a table.
func (ds *FinnhubDataSource) queryTarget(target models.MTarget, rng models.MTimeRange) (models.MNormalizedOutput, error) {
	kind := finnhub.KindOf(target)
	freeText := target.RawQuery != ""

	var raw []byte
	var err error
	if freeText {
		raw, err = ds.Client.FetchRaw(target.RawQuery)
	} else {
		raw, err = ds.Client.FetchResource(kind, finnhub.BuildRequest(target, rng))
	}
	if err != nil {
		return models.MNormalizedOutput{}, err
	}

	out, err := finnhub.Normalize(raw, kind, finnhub.Classify(kind, freeText))
	if err != nil {
		return models.MNormalizedOutput{}, err
	}

	out.RefID = target.RefID
	return out, nil
}

// -----------------------------------------------------------------------------

// CheckHealth probes the provider with a profile request for a known symbol.
// Success is purely an HTTP success status.
func (ds *FinnhubDataSource) CheckHealth() models.MHealthStatus {
	status := "success"
	if err := ds.Client.Probe(ds.ProbeSymbol); err != nil {
		ds.Logger.Error("Connectivity probe failed: %v", err)
		status = "error"
	}

	return models.MHealthStatus{
		Status:        status,
		Subscriptions: ds.Sessions.LiveCount(),
		MarketOpen:    ds.Calendar.IsOpenOnMinute(time.Now()),
	}
}
