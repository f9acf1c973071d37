// Package events publishes domain events to kafka after the owning
// transaction has committed. Delivery is best-effort: a publish failure is
// logged and never rolls back the committed state change.
package events

//go:generate go run go.uber.org/mock/mockgen -source=./publisher.go -destination=./mocks/publisher_mock.go -package=mocks

import (
	"context"
	"time"

	"github.com/phuhk2908/rms-backend/infras/kafka"
	"github.com/phuhk2908/rms-backend/infras/otel"
	"github.com/phuhk2908/rms-backend/shared/constant"
	"github.com/phuhk2908/rms-backend/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	TopicOrderCreated       = "rms.order.created"
	TopicOrderUpdated       = "rms.order.updated"
	TopicOrderCompleted     = "rms.order.completed"
	TopicKitchenItemUpdated = "rms.kitchen.item-updated"
	TopicReservationChanged = "rms.reservation.changed"
)

type OrderEvent struct {
	OrderID     string    `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	Status      string    `json:"status"`
	TableID     string    `json:"table_id,omitempty"`
	StaffID     string    `json:"staff_id"`
	TotalAmount float64   `json:"total_amount"`
	OccurredAt  time.Time `json:"occurred_at"`
}

type KitchenItemEvent struct {
	OrderID    string    `json:"order_id"`
	ItemID     string    `json:"item_id"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

type ReservationEvent struct {
	ReservationID string    `json:"reservation_id"`
	Status        string    `json:"status"`
	TableID       string    `json:"table_id,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

type Publisher interface {
	OrderCreated(ctx context.Context, event OrderEvent)
	OrderUpdated(ctx context.Context, event OrderEvent)
	OrderCompleted(ctx context.Context, event OrderEvent)
	KitchenItemUpdated(ctx context.Context, event KitchenItemEvent)
	ReservationChanged(ctx context.Context, event ReservationEvent)
}

type publisherImpl struct {
	client kafka.Client
	otel   otel.Otel
}

func New(client kafka.Client, otl otel.Otel) Publisher {
	return &publisherImpl{
		client: client,
		otel:   otl,
	}
}

// publish sends asynchronously on a detached context so the event survives
// the end of the originating request.
func (p *publisherImpl) publish(ctx context.Context, topic, key string, value any) {
	c := context.WithoutCancel(ctx)

	go func() {
		c, scope := p.otel.NewScope(c, constant.OtelEventScopeName, constant.OtelEventScopeName+".publish")
		defer scope.End()

		scope.SetAttribute("topic", topic)

		if err := p.client.SendMessages(c, topic, kafka.Message{Key: key, Value: value}); err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Str("topic", topic).Str("key", key).Msg("failed to publish event")
		}
	}()
}

func (p *publisherImpl) OrderCreated(ctx context.Context, event OrderEvent) {
	event.OccurredAt = timezone.Now()
	p.publish(ctx, TopicOrderCreated, event.OrderID, event)
}

func (p *publisherImpl) OrderUpdated(ctx context.Context, event OrderEvent) {
	event.OccurredAt = timezone.Now()
	p.publish(ctx, TopicOrderUpdated, event.OrderID, event)
}

func (p *publisherImpl) OrderCompleted(ctx context.Context, event OrderEvent) {
	event.OccurredAt = timezone.Now()
	p.publish(ctx, TopicOrderCompleted, event.OrderID, event)
}

func (p *publisherImpl) KitchenItemUpdated(ctx context.Context, event KitchenItemEvent) {
	event.OccurredAt = timezone.Now()
	p.publish(ctx, TopicKitchenItemUpdated, event.OrderID, event)
}

func (p *publisherImpl) ReservationChanged(ctx context.Context, event ReservationEvent) {
	event.OccurredAt = timezone.Now()
	p.publish(ctx, TopicReservationChanged, event.ReservationID, event)
}
