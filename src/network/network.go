package network

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"finnhub-bridge/src/logger"
	"finnhub-bridge/src/models"
)

// NetworkManager issues plain GET requests to the provider. There is no
// retry or backoff here: a failed request is the caller's problem.
type NetworkManager struct {
	Config *models.MConfig
	Client *http.Client
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewNetworkManager(cfg *models.MConfig, log *logger.Logger) *NetworkManager {
	return &NetworkManager{
		Config: cfg,
		Logger: log,
		Client: &http.Client{
			Timeout: time.Duration(cfg.Network.RequestTimeout) * time.Second,
		},
	}
}

// -----------------------------------------------------------------------------

// Get performs a GET request and returns the response body.
// A non-2xx status is reported as an error.
func (nm *NetworkManager) Get(urlStr string, params map[string]string) ([]byte, error) {
	reqUrl, err := url.Parse(urlStr)
	if err != nil {
		return nil, err
	}

	if len(params) > 0 {
		q := reqUrl.Query()
		for k, v := range params {
			q.Add(k, v)
		}
		reqUrl.RawQuery = q.Encode()
	}

	req, err := http.NewRequest("GET", reqUrl.String(), nil)
	if err != nil {
		return nil, err
	}

	if nm.Config.Network.UserAgent != "" {
		req.Header.Set("User-Agent", nm.Config.Network.UserAgent)
	}

	resp, err := nm.Client.Do(req)
	if err != nil {
		nm.Logger.Error("Request failed: %v", err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		nm.Logger.Info("Bad status %d for %s", resp.StatusCode, reqUrl.Path)
		return nil, fmt.Errorf("bad status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return body, nil
}
