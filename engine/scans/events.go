package scans

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel"
)

// Subject carries one message per recorded scan.
const Subject = "krushit.scans.recorded"

// headerCarrier adapts nats.Msg headers for OTel TextMapCarrier.
type headerCarrier nats.Msg

func (c *headerCarrier) Get(key string) string {
	if c.Header == nil {
		return ""
	}
	return c.Header.Get(key)
}

func (c *headerCarrier) Set(key, val string) {
	if c.Header == nil {
		c.Header = make(nats.Header)
	}
	c.Header.Set(key, val)
}

func (c *headerCarrier) Keys() []string {
	if c.Header == nil {
		return nil
	}
	keys := make([]string, 0, len(c.Header))
	for k := range c.Header {
		keys = append(keys, k)
	}
	return keys
}

// Publisher hands a scan to whatever stores it.
type Publisher interface {
	Publish(ctx context.Context, scan Scan) error
}

// NATSPublisher publishes scans on Subject.
type NATSPublisher struct {
	nc *nats.Conn
}

// NewNATSPublisher creates a publisher on nc.
func NewNATSPublisher(nc *nats.Conn) *NATSPublisher {
	return &NATSPublisher{nc: nc}
}

// Publish serializes scan as JSON and injects the trace context from ctx into
// the message headers.
func (p *NATSPublisher) Publish(ctx context.Context, scan Scan) error {
	data, err := json.Marshal(scan)
	if err != nil {
		return fmt.Errorf("scans: encode %s: %w", scan.ID, err)
	}
	msg := &nats.Msg{Subject: Subject, Data: data}
	otel.GetTextMapPropagator().Inject(ctx, (*headerCarrier)(msg))
	if err := p.nc.PublishMsg(msg); err != nil {
		return fmt.Errorf("scans: publish %s: %w", scan.ID, err)
	}
	return nil
}

// Subscribe calls handle for every scan published on Subject. Malformed
// messages and handler errors are logged and dropped. A non-empty queue
// spreads messages across recorder instances.
func Subscribe(nc *nats.Conn, queue string, handle func(context.Context, Scan) error, logger *slog.Logger) (*nats.Subscription, error) {
	if logger == nil {
		logger = slog.Default()
	}
	cb := func(msg *nats.Msg) {
		var s Scan
		if err := json.Unmarshal(msg.Data, &s); err != nil {
			logger.Warn("dropping malformed scan event", "err", err)
			return
		}
		ctx := otel.GetTextMapPropagator().Extract(context.Background(), (*headerCarrier)(msg))
		if err := handle(ctx, s); err != nil {
			logger.Error("scan event handler failed", "scan", s.ID, "err", err)
		}
	}
	if queue != "" {
		return nc.QueueSubscribe(Subject, queue, cb)
	}
	return nc.Subscribe(Subject, cb)
}
