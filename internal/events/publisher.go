package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexivanou/worldwise/internal/model"
	"github.com/nats-io/nats.go"
)

// Type names a city lifecycle event
type Type string

const (
	CityCreated Type = "created"
	CityDeleted Type = "deleted"
)

// Event is published after a successful write to the city store
type Event struct {
	Type   Type        `json:"type"`
	CityID int         `json:"cityId"`
	City   *model.City `json:"city,omitempty"`
	At     time.Time   `json:"at"`
}

// Publisher announces city changes to other services
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Connected() bool
	Close()
}

// Nop discards events. Used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
func (Nop) Connected() bool                      { return false }
func (Nop) Close()                               {}

type natsConn interface {
	Publish(subject string, data []byte) error
	IsConnected() bool
	Drain() error
}

// NATSPublisher publishes events as JSON on <prefix>.<type>
type NATSPublisher struct {
	conn   natsConn
	prefix string
}

// NewNATSPublisher connects to NATS, retrying in the background when the
// server is not up yet.
func NewNATSPublisher(url, subjectPrefix string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url,
		nats.Name("worldwise"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	return &NATSPublisher{conn: conn, prefix: subjectPrefix}, nil
}

// Subject returns the subject an event type is published on
func (p *NATSPublisher) Subject(t Type) string {
	return p.prefix + "." + string(t)
}

func (p *NATSPublisher) Publish(_ context.Context, e Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	if err := p.conn.Publish(p.Subject(e.Type), data); err != nil {
		return fmt.Errorf("publish %s: %w", e.Type, err)
	}
	return nil
}

func (p *NATSPublisher) Connected() bool {
	return p.conn.IsConnected()
}

// Close drains and closes the connection.
func (p *NATSPublisher) Close() {
	_ = p.conn.Drain()
}
