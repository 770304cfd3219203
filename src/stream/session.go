package stream

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"finnhub-bridge/src/logger"
	"finnhub-bridge/src/models"
	"finnhub-bridge/src/utils"
)

// -----------------------------------------------------------------------------

const closeWriteWait = 2 * time.Second

// -----------------------------------------------------------------------------
// Session is one streaming subscription: one transport connection, one
// rolling buffer, one symbol. Lifecycle: Open dials and subscribes, the read
// loop receives until the transport closes or errors, then the session is
// removed from the manager's live set and its feed completes.
// -----------------------------------------------------------------------------

type Session struct {
	target  models.MTarget
	symbol  string
	conn    *websocket.Conn
	buffer  *utils.RingBuffer
	logger  *logger.Logger
	manager *Manager

	closeOnce sync.Once
}

// -----------------------------------------------------------------------------

// readLoop decodes inbound messages until the connection goes away.
// A transport read error counts as a close: leaving the subscription open on
// error would stall it silently.
func (s *Session) readLoop() {
	defer func() {
		s.Close()
		s.manager.remove(s)
		s.logger.Info("Streaming subscription for %s closed (refId %s)", s.symbol, s.target.RefID)
	}()

	for {
		_, message, err := s.conn.ReadMessage()
		if err != nil {
			return
		}

		var msg models.MStreamMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			// Malformed message: drop it, keep receiving
			s.logger.Info("Dropping malformed stream message for %s: %v", s.symbol, err)
			continue
		}

		// Only trade messages carry samples; everything else is ignored
		if msg.Type != "trade" || len(msg.Data) == 0 {
			continue
		}

		tick := msg.Data[0]
		s.buffer.Append(models.MStreamSample{
			Timestamp: tick.Timestamp,
			Value:     tick.Price,
		})

		update := models.MStreamUpdate{
			RefID:   s.target.RefID,
			Symbol:  s.symbol,
			Samples: s.buffer.GetAll(),
		}

		select {
		case s.manager.updates <- update:
		default:
			s.logger.Warning("Updates channel full! Dropping emission for %s", s.symbol)
		}
	}
}

// -----------------------------------------------------------------------------

// Close tears down the transport connection with a "going away" close code.
// Safe to call more than once; the read loop also calls it on its way out.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "")
		s.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(closeWriteWait))
		s.conn.Close()
	})
}
