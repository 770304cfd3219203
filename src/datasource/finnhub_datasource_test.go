package datasource_test

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finnhub-bridge/src/datasource"
	"finnhub-bridge/src/finnhub"
	"finnhub-bridge/src/logger"
	"finnhub-bridge/src/models"
	"finnhub-bridge/src/stream"
)

// -----------------------------------------------------------------------------
// Fake provider transport
// -----------------------------------------------------------------------------

type fakeNetwork struct {
	mu      sync.Mutex
	urls    []string
	handler func(url string, params map[string]string) ([]byte, error)
}

func (f *fakeNetwork) Get(url string, params map[string]string) ([]byte, error) {
	f.mu.Lock()
	f.urls = append(f.urls, url)
	f.mu.Unlock()
	return f.handler(url, params)
}

func (f *fakeNetwork) recorded() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.urls...)
}

// -----------------------------------------------------------------------------

func newTestDataSource(net *fakeNetwork) *datasource.FinnhubDataSource {
	cfg := &models.MConfig{
		Provider: models.MProviderConfig{
			BaseURL:     "https://fin.test/api/v1",
			StreamURL:   "ws://fin.test",
			Token:       "tok",
			ProbeSymbol: "AAPL",
		},
		Stream: models.MStreamConfig{BufferCapacity: 10},
	}
	log := logger.NewLogger("ERROR", "datasource-test")
	client := finnhub.NewClient(cfg, net, log)
	sessions := stream.NewManager(cfg, log)

	return datasource.NewFinnhubDataSource(cfg, client, sessions, log)
}

// -----------------------------------------------------------------------------

func TestQueryDataPositionalResults(t *testing.T) {
	net := &fakeNetwork{handler: func(url string, params map[string]string) ([]byte, error) {
		switch {
		case strings.HasSuffix(url, "/quote"):
			return []byte(`{"c":250.5,"t":1690000000}`), nil
		case strings.Contains(url, "/stock/candle"):
			return []byte(`{"t":[100,200],"o":[10,11],"c":[12,13]}`), nil
		default:
			return nil, fmt.Errorf("unexpected url: %s", url)
		}
	}}

	ds := newTestDataSource(net)

	resp, err := ds.QueryData(models.MQueryRequest{
		Range: models.MTimeRange{From: time.Unix(100, 0), To: time.Unix(200, 0)},
		Targets: []models.MTarget{
			{RefID: "A", QueryType: "quote", Symbol: "tsla"},
			{RefID: "B", QueryType: "candle", Symbol: "aapl", Resolution: "D"},
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Results, 2)

	// Results keep target order regardless of completion order
	assert.Equal(t, "A", resp.Results[0].RefID)
	require.Len(t, resp.Results[0].Series, 1)
	assert.Equal(t, "current price", resp.Results[0].Series[0].Name)

	assert.Equal(t, "B", resp.Results[1].RefID)
	require.Len(t, resp.Results[1].Series, 2)
	assert.Equal(t, "open price", resp.Results[1].Series[0].Name)
}

func TestQueryDataWholeBatchFails(t *testing.T) {
	net := &fakeNetwork{handler: func(url string, params map[string]string) ([]byte, error) {
		if strings.Contains(url, "/stock/profile") {
			return nil, fmt.Errorf("bad status: 500")
		}
		return []byte(`{"c":1,"t":1}`), nil
	}}

	ds := newTestDataSource(net)

	_, err := ds.QueryData(models.MQueryRequest{
		Targets: []models.MTarget{
			{RefID: "A", QueryType: "quote", Symbol: "TSLA"},
			{RefID: "B", QueryType: "profile", Symbol: "AAPL"},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "B")
}

func TestFreeTextOverrideAlwaysTable(t *testing.T) {
	net := &fakeNetwork{handler: func(url string, params map[string]string) ([]byte, error) {
		return []byte(`[{"a":1,"b":"x"}]`), nil
	}}

	ds := newTestDataSource(net)

	resp, err := ds.QueryData(models.MQueryRequest{
		Targets: []models.MTarget{
			{RefID: "A", QueryType: "quote", RawQuery: "stock/profile2?symbol=AAPL"},
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)

	// Raw override bypasses request construction and renders as a table
	require.NotNil(t, resp.Results[0].Table)
	assert.Empty(t, resp.Results[0].Series)

	urls := net.recorded()
	require.Len(t, urls, 1)
	assert.Equal(t, "https://fin.test/api/v1/stock/profile2?symbol=AAPL&token=tok", urls[0])
}

func TestQueryDataEmptyBatch(t *testing.T) {
	net := &fakeNetwork{handler: func(url string, params map[string]string) ([]byte, error) {
		return nil, fmt.Errorf("should not be called")
	}}

	ds := newTestDataSource(net)

	resp, err := ds.QueryData(models.MQueryRequest{})
	require.NoError(t, err)
	assert.Empty(t, resp.Results)
	assert.Empty(t, net.recorded())
}

func TestCheckHealth(t *testing.T) {
	net := &fakeNetwork{handler: func(url string, params map[string]string) ([]byte, error) {
		return []byte(`{"name":"Apple Inc"}`), nil
	}}

	ds := newTestDataSource(net)

	health := ds.CheckHealth()
	assert.Equal(t, "success", health.Status)
	assert.Equal(t, 0, health.Subscriptions)

	urls := net.recorded()
	require.Len(t, urls, 1)
	assert.Contains(t, urls[0], "/stock/profile")
}

func TestCheckHealthProbeFailure(t *testing.T) {
	net := &fakeNetwork{handler: func(url string, params map[string]string) ([]byte, error) {
		return nil, fmt.Errorf("bad status: 401")
	}}

	ds := newTestDataSource(net)

	health := ds.CheckHealth()
	assert.Equal(t, "error", health.Status)
}
