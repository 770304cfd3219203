package stream

import (
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"finnhub-bridge/src/finnhub"
	"finnhub-bridge/src/logger"
	"finnhub-bridge/src/models"
	"finnhub-bridge/src/utils"
)

// -----------------------------------------------------------------------------
// Manager owns every live streaming subscription. The live set is the only
// piece of shared mutable state: appended on Open, cleared on CloseAll.
// Emissions from all subscriptions are merged into one updates channel; each
// emission carries its own RefID so the caller can demultiplex.
// -----------------------------------------------------------------------------

type Manager struct {
	StreamURL string
	Token     string
	Capacity  int
	Logger    *logger.Logger

	updates chan models.MStreamUpdate
	mu      sync.Mutex
	live    []*Session
}

// -----------------------------------------------------------------------------

func NewManager(cfg *models.MConfig, log *logger.Logger) *Manager {
	return &Manager{
		StreamURL: cfg.Provider.StreamURL,
		Token:     cfg.Provider.Token,
		Capacity:  cfg.Stream.BufferCapacity,
		Logger:    log,
		// Buffered so a burst of ticks does not block the read loops
		updates: make(chan models.MStreamUpdate, 256),
	}
}

// -----------------------------------------------------------------------------

// Updates returns the merged feed of all live subscriptions.
func (m *Manager) Updates() <-chan models.MStreamUpdate {
	return m.updates
}

// -----------------------------------------------------------------------------

// Open dials the provider stream, sends the subscribe handshake for the
// target's symbol and starts the read loop. One connection per target.
func (m *Manager) Open(target models.MTarget) error {
	symbol := finnhub.NormalizeSymbol(target.Symbol)
	wsURL := fmt.Sprintf("%s?token=%s", m.StreamURL, m.Token)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		return fmt.Errorf("failed to open stream for %s: %w", symbol, err)
	}

	handshake := models.MSubscribeMessage{Type: "subscribe", Symbol: symbol}
	if err := conn.WriteJSON(handshake); err != nil {
		conn.Close()
		return fmt.Errorf("failed to subscribe to %s: %w", symbol, err)
	}

	if !utils.GetCalendar(symbol).IsOpenOnMinute(time.Now()) {
		m.Logger.Info("Subscribed to %s while its market is closed; expect no ticks", symbol)
	}

	session := &Session{
		target:  target,
		symbol:  symbol,
		conn:    conn,
		buffer:  utils.NewRingBuffer(m.Capacity),
		logger:  m.Logger,
		manager: m,
	}

	m.mu.Lock()
	m.live = append(m.live, session)
	m.mu.Unlock()

	go session.readLoop()

	m.Logger.Info("Opened streaming subscription for %s (refId %s)", symbol, target.RefID)
	return nil
}

// -----------------------------------------------------------------------------

// CloseAll tears down every live subscription. Runs unconditionally at the
// start of every new query batch and on shutdown; there is no reuse of
// connections across batches.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	live := m.live
	m.live = nil
	m.mu.Unlock()

	for _, session := range live {
		session.Close()
	}

	if len(live) > 0 {
		m.Logger.Info("Closed %d streaming subscription(s)", len(live))
	}
}

// -----------------------------------------------------------------------------

// LiveCount returns the number of currently open subscriptions.
func (m *Manager) LiveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.live)
}

// -----------------------------------------------------------------------------

// remove drops one session from the live set after its read loop exits.
func (m *Manager) remove(session *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, s := range m.live {
		if s == session {
			m.live = append(m.live[:i], m.live[i+1:]...)
			return
		}
	}
}
