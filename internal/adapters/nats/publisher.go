package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/samirrijal/ecoaldeas/internal/core/domain"
)

// SelectionSubject returns the subject carrying one session's selection changes.
func SelectionSubject(sessionID string) string {
	return "ecoaldeas.selection." + sessionID
}

// Publisher implements ports.EventPublisher using core NATS. Selection
// changes are ephemeral so they are not persisted in JetStream.
type Publisher struct {
	conn *nats.Conn
}

// NewPublisher connects to NATS.
func NewPublisher(url string) (*Publisher, error) {
	conn, err := RawConn(url)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	return &Publisher{conn: conn}, nil
}

// Conn exposes the underlying connection for health checks.
func (p *Publisher) Conn() *nats.Conn {
	return p.conn
}

func (p *Publisher) PublishSelection(ctx context.Context, sessionID string, detail domain.Detail) error {
	data, err := json.Marshal(detail)
	if err != nil {
		return err
	}
	return p.conn.Publish(SelectionSubject(sessionID), data)
}

// Close drains and closes the connection.
func (p *Publisher) Close() {
	_ = p.conn.Drain()
}

// RawConn creates a plain NATS connection.
func RawConn(url string) (*nats.Conn, error) {
	return nats.Connect(url,
		nats.Name("ecoaldeas-dashboard"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
}
