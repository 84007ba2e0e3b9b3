package events

import "time"

// Exchange names
const (
	ExchangeOrders = "orders.events"
)

// Routing keys
const (
	RoutingKeyOrderCreated  = "order.created"
	RoutingKeyOrderPaid     = "order.paid"
	RoutingKeyOrderCanceled = "order.canceled"
)

// OrderEvent is the envelope for order lifecycle events
type OrderEvent struct {
	Version   string       `json:"version"`
	EventType string       `json:"event_type"`
	Timestamp time.Time    `json:"timestamp"`
	TraceID   string       `json:"trace_id"`
	Payload   OrderPayload `json:"payload"`
}

// OrderPayload contains order data
type OrderPayload struct {
	ID          uint      `json:"id"`
	UserID      uint      `json:"user_id"`
	Status      string    `json:"status"`
	OrderAmount float64   `json:"order_amount"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewOrderEvent creates an order lifecycle event
func NewOrderEvent(eventType string, id, userID uint, status string, orderAmount float64, createdAt time.Time, traceID string) *OrderEvent {
	return &OrderEvent{
		Version:   "1.0",
		EventType: eventType,
		Timestamp: time.Now(),
		TraceID:   traceID,
		Payload: OrderPayload{
			ID:          id,
			UserID:      userID,
			Status:      status,
			OrderAmount: orderAmount,
			CreatedAt:   createdAt,
		},
	}
}
