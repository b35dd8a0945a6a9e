// Package event publishes storefront domain events to Kafka. Publishing is
// best effort and never blocks a customer-facing request on broker errors.
package event

import (
	"context"
	"log/slog"

	"github.com/ssroyels/Trendex/pkg/kafka"
	"github.com/ssroyels/Trendex/pkg/logger"
)

// Topics for storefront events.
const (
	TopicCartEvents    = "trendex.cart.events"
	TopicOrderEvents   = "trendex.order.events"
	TopicProductEvents = "trendex.product.events"
)

// Event types carried on the topics above.
const (
	TypeCartUpdated    = "cart.updated"
	TypeOrderPlaced    = "order.placed"
	TypeStockDepleted  = "product.stock_depleted"
	TypeProductCreated = "product.created"
	TypeProductUpdated = "product.updated"
)

const source = "trendex-storefront"

// CartUpdated describes a cart mutation.
type CartUpdated struct {
	SessionID string `json:"session_id"`
	ItemCount int    `json:"item_count"`
	Subtotal  int64  `json:"subtotal"`
}

// OrderPlaced describes a confirmed order.
type OrderPlaced struct {
	OrderID       string `json:"order_id"`
	SessionID     string `json:"session_id"`
	UserID        string `json:"user_id,omitempty"`
	Subtotal      int64  `json:"subtotal"`
	ItemCount     int    `json:"item_count"`
	PaymentMethod string `json:"payment_method"`
}

// StockDepleted signals a variant that just reached zero available quantity.
type StockDepleted struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

// ProductChanged describes an admin catalog mutation.
type ProductChanged struct {
	VariantID string `json:"variant_id"`
	Slug      string `json:"slug"`
	Category  string `json:"category"`
}

// publisher is the producer surface used by this package.
type publisher interface {
	Publish(ctx context.Context, topic string, event *kafka.Event) error
}

// Producer emits domain events. A nil inner producer turns every publish
// into a no-op, which is how deployments without Kafka run.
type Producer struct {
	inner  publisher
	logger *slog.Logger
}

// NewProducer wraps a Kafka producer. Pass nil when Kafka is disabled.
func NewProducer(inner *kafka.Producer, log *slog.Logger) *Producer {
	if inner == nil {
		return &Producer{logger: log}
	}
	return &Producer{inner: inner, logger: log}
}

// CartUpdated publishes a cart mutation event.
func (p *Producer) CartUpdated(ctx context.Context, payload CartUpdated) {
	p.publish(ctx, TopicCartEvents, TypeCartUpdated, payload.SessionID, payload)
}

// OrderPlaced publishes an order placement event.
func (p *Producer) OrderPlaced(ctx context.Context, payload OrderPlaced) {
	p.publish(ctx, TopicOrderEvents, TypeOrderPlaced, payload.OrderID, payload)
}

// StockDepleted publishes a zero-stock event for a variant.
func (p *Producer) StockDepleted(ctx context.Context, payload StockDepleted) {
	p.publish(ctx, TopicProductEvents, TypeStockDepleted, payload.Slug, payload)
}

// ProductCreated publishes an admin catalog creation event.
func (p *Producer) ProductCreated(ctx context.Context, payload ProductChanged) {
	p.publish(ctx, TopicProductEvents, TypeProductCreated, payload.VariantID, payload)
}

// ProductUpdated publishes an admin catalog update event.
func (p *Producer) ProductUpdated(ctx context.Context, payload ProductChanged) {
	p.publish(ctx, TopicProductEvents, TypeProductUpdated, payload.VariantID, payload)
}

func (p *Producer) publish(ctx context.Context, topic, eventType, subjectID string, payload any) {
	if p.inner == nil {
		return
	}

	evt, err := kafka.NewEvent(eventType, subjectID, source, payload)
	if err != nil {
		p.logger.ErrorContext(ctx, "build event",
			slog.String("event_type", eventType),
			slog.String("error", err.Error()))
		return
	}
	if cid := logger.CorrelationIDFromContext(ctx); cid != "" {
		evt = evt.WithCorrelationID(cid)
	}

	if err := p.inner.Publish(ctx, topic, evt); err != nil {
		p.logger.ErrorContext(ctx, "publish event",
			slog.String("topic", topic),
			slog.String("event_type", eventType),
			slog.String("error", err.Error()))
	}
}
