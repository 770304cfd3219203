package interfaces

// -----------------------------------------------------------------------------
// INetworkManager defines the contract for HTTP requests to the provider.
// -----------------------------------------------------------------------------

type INetworkManager interface {

	// -----------------------------------------------------------------------------

	// Get performs a GET request to the specified URL with query parameters.
	// Returns the response body as bytes; a non-2xx status is an error.
	Get(url string, params map[string]string) ([]byte, error)
}
