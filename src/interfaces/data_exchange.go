package interfaces

import "finnhub-bridge/src/models"

// -----------------------------------------------------------------------------
// IDataExchanger defines the interface for pushing data to external listeners.
// -----------------------------------------------------------------------------

type IDataExchanger interface {
	// -----------------------------------------------------------------------------
	// Broadcast pushes one streaming update to all connected listeners.
	Broadcast(update models.MStreamUpdate)

	// -----------------------------------------------------------------------------
	// Start the server
	Start() error

	// -----------------------------------------------------------------------------
	// Stop the server gracefully
	Stop() error
}
