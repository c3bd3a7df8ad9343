package natsadapter

import (
	"encoding/json"
	"log/slog"

	"github.com/nats-io/nats.go"
	"github.com/samirrijal/ecoaldeas/internal/core/domain"
)

// Subscriber implements ports.EventSubscriber over a shared NATS connection.
type Subscriber struct {
	conn *nats.Conn
}

// NewSubscriber creates a subscriber sharing conn.
func NewSubscriber(conn *nats.Conn) *Subscriber {
	return &Subscriber{conn: conn}
}

// SubscribeSelection delivers the session's selection changes to handler
// until the returned function is called.
func (s *Subscriber) SubscribeSelection(sessionID string, handler func(detail domain.Detail)) (func(), error) {
	sub, err := s.conn.Subscribe(SelectionSubject(sessionID), func(msg *nats.Msg) {
		var d domain.Detail
		if err := json.Unmarshal(msg.Data, &d); err != nil {
			slog.Warn("drop malformed selection event", "subject", msg.Subject, "error", err)
			return
		}
		handler(d)
	})
	if err != nil {
		return nil, err
	}
	return func() { _ = sub.Unsubscribe() }, nil
}
