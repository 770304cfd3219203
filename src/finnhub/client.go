package finnhub

import (
	"fmt"
	"strings"

	"finnhub-bridge/src/interfaces"
	"finnhub-bridge/src/logger"
	"finnhub-bridge/src/models"
)

// -----------------------------------------------------------------------------
// Client issues REST requests to the provider. The auth token always travels
// as a query parameter, never as a header.
// -----------------------------------------------------------------------------

type Client struct {
	BaseURL string
	Token   string
	Network interfaces.INetworkManager
	Logger  *logger.Logger
}

// -----------------------------------------------------------------------------

func NewClient(cfg *models.MConfig, netMgr interfaces.INetworkManager, log *logger.Logger) *Client {
	return &Client{
		BaseURL: strings.TrimRight(cfg.Provider.BaseURL, "/"),
		Token:   cfg.Provider.Token,
		Network: netMgr,
		Logger:  log,
	}
}

// -----------------------------------------------------------------------------

// FetchResource dispatches a built request for a kind. Every kind lives under
// the stock/ sub-path except quote, which sits at the API root.
func (c *Client) FetchResource(kind QueryKind, req models.MProviderRequest) ([]byte, error) {
	params := make(map[string]string, len(req.Params)+1)
	for k, v := range req.Params {
		params[k] = v
	}
	params["token"] = c.Token

	body, err := c.Network.Get(c.resourceURL(kind), params)
	if err != nil {
		c.Logger.Error("Fetch failed for kind %s (refId %s): %v", kind, req.RefID, err)
		return nil, err
	}

	return body, nil
}

// -----------------------------------------------------------------------------

func (c *Client) resourceURL(kind QueryKind) string {
	if kind == KindQuote {
		return fmt.Sprintf("%s/%s", c.BaseURL, kind)
	}
	return fmt.Sprintf("%s/stock/%s", c.BaseURL, kind)
}

// -----------------------------------------------------------------------------

// FetchRaw issues a free-text query verbatim: base path prefixed, token
// appended. Errors propagate exactly like the structured path.
func (c *Client) FetchRaw(rawQuery string) ([]byte, error) {
	raw := strings.TrimLeft(rawQuery, "/")

	sep := "?"
	if strings.Contains(raw, "?") {
		sep = "&"
	}
	url := fmt.Sprintf("%s/%s%stoken=%s", c.BaseURL, raw, sep, c.Token)

	body, err := c.Network.Get(url, nil)
	if err != nil {
		c.Logger.Error("Raw query failed (%s): %v", rawQuery, err)
		return nil, err
	}

	return body, nil
}

// -----------------------------------------------------------------------------

// Probe issues a profile request for a known symbol. Success is an HTTP
// success status; the payload content does not matter.
func (c *Client) Probe(symbol string) error {
	req := models.MProviderRequest{
		Params: map[string]string{"symbol": NormalizeSymbol(symbol)},
	}
	_, err := c.FetchResource(KindProfile, req)
	return err
}
