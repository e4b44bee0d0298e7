package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"
)

const EventTradeshowActivationToggled = "tradeshow.activation_toggled"

// TradeshowToggledEvent records an admin flipping a tradeshow's active flag
type TradeshowToggledEvent struct {
	EventType   string    `json:"event_type"`
	TradeshowID int64     `json:"tradeshow_id"`
	TenantID    int64     `json:"tenant_id"`
	AdminID     int64     `json:"admin_id"`
	AdminEmail  string    `json:"admin_email"`
	Before      bool      `json:"before"`
	After       bool      `json:"after"`
	Timestamp   time.Time `json:"timestamp"`
}

// Publisher sends domain events to NATS
type Publisher struct {
	conn   *nats.Conn
	prefix string
	logger *logrus.Logger
}

// NewPublisher connects to NATS. Connection loss is retried in the background
// by the client; publishes during an outage are buffered.
func NewPublisher(url, prefix string, logger *logrus.Logger) (*Publisher, error) {
	opts := []nats.Option{
		nats.Name("leadcapture"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.WithError(err).Warn("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.WithField("url", nc.ConnectedUrl()).Info("NATS reconnected")
		}),
	}

	conn, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &Publisher{conn: conn, prefix: prefix, logger: logger}, nil
}

// Subject returns the full subject for an event type
func (p *Publisher) Subject(eventType string) string {
	return Subject(p.prefix, eventType)
}

func Subject(prefix, eventType string) string {
	if prefix == "" {
		return eventType
	}
	return prefix + "." + eventType
}

// PublishTradeshowToggled implements the service's event sink
func (p *Publisher) PublishTradeshowToggled(_ context.Context, event TradeshowToggledEvent) error {
	event.EventType = EventTradeshowActivationToggled
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := p.conn.Publish(p.Subject(EventTradeshowActivationToggled), data); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

// Close drains pending messages and closes the connection
func (p *Publisher) Close() error {
	return p.conn.Drain()
}
