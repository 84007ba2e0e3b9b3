package domain

import (
	"time"
)

// OrderStatus enumerates the order lifecycle states.
type OrderStatus uint

const (
	StatusUnpaid OrderStatus = iota + 1
	StatusPaid
	StatusInProcessing
	StatusAgreed
	StatusAssembled
	StatusSent
	StatusOnTheWay
	StatusDelivered
	StatusHandedToBuyer
	StatusCanceled
)

var statusTitles = map[OrderStatus]string{
	StatusUnpaid:        "unpaid",
	StatusPaid:          "paid",
	StatusInProcessing:  "in processing",
	StatusAgreed:        "agreed",
	StatusAssembled:     "assembled",
	StatusSent:          "sent",
	StatusOnTheWay:      "on the way",
	StatusDelivered:     "delivered",
	StatusHandedToBuyer: "handed to buyer",
	StatusCanceled:      "canceled",
}

func (s OrderStatus) String() string {
	if title, ok := statusTitles[s]; ok {
		return title
	}
	return "unknown"
}

// Valid reports whether the status is one of the enumerated states.
func (s OrderStatus) Valid() bool {
	_, ok := statusTitles[s]
	return ok
}

// Order is an immutable-once-created snapshot of cart line items. Only the
// status and payment-error fields change after creation.
type Order struct {
	ID                  uint
	UserID              uint
	CreatedAt           time.Time
	DeliveryTypeID      uint
	City                string
	Address             string
	PaymentMethodID     uint
	Status              OrderStatus
	PaymentError        string
	PaymentErrorMessage string
	OrderAmount         float64
	Items               []OrderItem
}

// NewOrder creates an unpaid order with validation.
func NewOrder(userID, deliveryTypeID, paymentMethodID uint, city, address string, amount float64) (*Order, error) {
	order := &Order{
		UserID:          userID,
		CreatedAt:       time.Now(),
		DeliveryTypeID:  deliveryTypeID,
		City:            city,
		Address:         address,
		PaymentMethodID: paymentMethodID,
		Status:          StatusUnpaid,
		OrderAmount:     amount,
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	return order, nil
}

// Validate validates the order entity
func (o *Order) Validate() error {
	if o.UserID == 0 {
		return ErrUserIDRequired
	}
	if o.City == "" {
		return ErrCityRequired
	}
	if o.Address == "" {
		return ErrAddressRequired
	}
	if o.OrderAmount <= 0 {
		return ErrInvalidOrderAmount
	}
	return nil
}

// MarkPaid transitions the order to Paid and clears any payment error.
func (o *Order) MarkPaid() {
	o.Status = StatusPaid
	o.PaymentError = ""
	o.PaymentErrorMessage = ""
}

// RecordPaymentError stores a user-visible payment failure without changing
// the status; the order stays retryable.
func (o *Order) RecordPaymentError(code, message string) {
	o.PaymentError = code
	o.PaymentErrorMessage = message
}

// HoldsInventory reports whether inventory must be restored when the order is
// canceled. Unpaid orders never reserved stock, Canceled orders already gave
// it back.
func (o *Order) HoldsInventory() bool {
	return o.Status != StatusUnpaid && o.Status != StatusCanceled
}

// OrderItem is a cart line frozen at order-creation time. Price is captured
// once and never recomputed from the product.
type OrderItem struct {
	ID        uint
	OrderID   uint
	ProductID uint
	Price     float64
	Quantity  int
	Amount    float64
}

// NewOrderItem freezes a cart line at the given unit price.
func NewOrderItem(orderID, productID uint, unitPrice float64, quantity int) OrderItem {
	return OrderItem{
		OrderID:   orderID,
		ProductID: productID,
		Price:     unitPrice,
		Quantity:  quantity,
		Amount:    float64(quantity) * unitPrice,
	}
}

// DeliveryType describes a delivery option and its free-delivery rule.
type DeliveryType struct {
	ID                            uint
	Title                         string
	FreeDelivery                  bool
	PurchaseAmountForFreeDelivery float64
	DeliveryCost                  float64
}

// Fee returns the delivery cost to add for the given order subtotal. A type
// without free delivery always charges; a type with free delivery charges
// only below its threshold.
func (d *DeliveryType) Fee(subtotal float64) float64 {
	if !d.FreeDelivery {
		return d.DeliveryCost
	}
	if subtotal < d.PurchaseAmountForFreeDelivery {
		return d.DeliveryCost
	}
	return 0
}

// Payment method identifiers; method routing picks the payment-entry page.
const (
	PaymentMethodOwnAccount     uint = 1
	PaymentMethodSomeoneAccount uint = 2
)

// PaymentMethod describes how the buyer pays for an order.
type PaymentMethod struct {
	ID    uint
	Title string
}
