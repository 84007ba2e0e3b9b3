package adapters

import (
	"context"

	"go-shop/internal/shop/domain"
	"go-shop/pkg/events"
	"go-shop/pkg/logger"
	"go-shop/pkg/rabbitmq"
)

// RabbitMQPublisher implements EventPublisher using RabbitMQ
type RabbitMQPublisher struct {
	publisher *rabbitmq.Publisher
	log       *logger.Logger
}

// NewRabbitMQPublisher creates a new RabbitMQ event publisher
func NewRabbitMQPublisher(publisher *rabbitmq.Publisher, log *logger.Logger) *RabbitMQPublisher {
	return &RabbitMQPublisher{
		publisher: publisher,
		log:       log,
	}
}

// PublishOrderCreated publishes an order created event
func (p *RabbitMQPublisher) PublishOrderCreated(ctx context.Context, order *domain.Order) error {
	return p.publish(ctx, events.RoutingKeyOrderCreated, order)
}

// PublishOrderPaid publishes an order paid event
func (p *RabbitMQPublisher) PublishOrderPaid(ctx context.Context, order *domain.Order) error {
	return p.publish(ctx, events.RoutingKeyOrderPaid, order)
}

// PublishOrderCanceled publishes an order canceled event
func (p *RabbitMQPublisher) PublishOrderCanceled(ctx context.Context, order *domain.Order) error {
	return p.publish(ctx, events.RoutingKeyOrderCanceled, order)
}

func (p *RabbitMQPublisher) publish(ctx context.Context, routingKey string, order *domain.Order) error {
	traceID := logger.GetTraceID(ctx)

	event := events.NewOrderEvent(
		routingKey,
		order.ID,
		order.UserID,
		order.Status.String(),
		order.OrderAmount,
		order.CreatedAt,
		traceID,
	)

	return p.publisher.Publish(ctx, routingKey, event)
}
