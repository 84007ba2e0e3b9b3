package ports

import (
	"context"

	"go-shop/internal/shop/domain"
)

// Store aggregates the repositories behind a single transactional boundary.
// WithinTx runs fn against a Store bound to one database transaction; any
// error rolls the whole unit back.
type Store interface {
	WithinTx(ctx context.Context, fn func(Store) error) error

	Products() ProductRepository
	Carts() CartRepository
	Orders() OrderRepository
	Promotions() PromotionRepository
	Settings() SettingsRepository
}

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// GetByID retrieves a product by ID
	GetByID(ctx context.Context, id uint) (*domain.Product, error)

	// GetForUpdate retrieves a product and locks its row for the duration of
	// the enclosing transaction
	GetForUpdate(ctx context.Context, id uint) (*domain.Product, error)

	// ListByPromotion retrieves the products attached to a promotion
	ListByPromotion(ctx context.Context, promotionID uint) ([]*domain.Product, error)

	// Save persists the mutable product fields
	Save(ctx context.Context, product *domain.Product) error

	// UpdateQuantity sets the available quantity of a product
	UpdateQuantity(ctx context.Context, id uint, quantity int) error
}

// CartRepository defines the interface for cart and line-item persistence
type CartRepository interface {
	// GetByUser retrieves a user's cart with its line items
	GetByUser(ctx context.Context, userID uint) (*domain.Cart, error)

	// GetBySession retrieves an anonymous session's cart with its line items
	GetBySession(ctx context.Context, sessionKey string) (*domain.Cart, error)

	// Create creates an empty cart
	Create(ctx context.Context, cart *domain.Cart) error

	// Delete removes a cart and its remaining line items
	Delete(ctx context.Context, cartID uint) error

	// Reassign re-points a session cart to a registered user
	Reassign(ctx context.Context, cartID, userID uint) error

	// GetItem retrieves the line item for a product inside a cart
	GetItem(ctx context.Context, cartID, productID uint) (*domain.CartItem, error)

	// CreateItem creates a new line item
	CreateItem(ctx context.Context, item *domain.CartItem) error

	// UpdateItem persists quantity and amount of a line item
	UpdateItem(ctx context.Context, item *domain.CartItem) error

	// DeleteItem removes a line item. A line already removed by a concurrent
	// transaction is reported as not found so the caller's transaction fails
	// instead of operating on consumed lines.
	DeleteItem(ctx context.Context, itemID uint) error

	// MoveItem re-points a line item to another cart
	MoveItem(ctx context.Context, itemID, toCartID uint) error

	// RepriceProduct recomputes the stored amount of every line item holding
	// the product from its unit price
	RepriceProduct(ctx context.Context, productID uint, unitPrice float64) error
}

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// Create creates a new order
	Create(ctx context.Context, order *domain.Order) error

	// CreateItem creates a frozen order line item
	CreateItem(ctx context.Context, item *domain.OrderItem) error

	// GetByID retrieves an order with its line items
	GetByID(ctx context.Context, id uint) (*domain.Order, error)

	// GetForUpdate retrieves an order with its line items and locks the order
	// row for the duration of the enclosing transaction
	GetForUpdate(ctx context.Context, id uint) (*domain.Order, error)

	// ListByUser retrieves a user's orders, newest first
	ListByUser(ctx context.Context, userID uint) ([]*domain.Order, error)

	// UpdateStatus sets the order status
	UpdateStatus(ctx context.Context, id uint, status domain.OrderStatus) error

	// UpdatePaymentState sets the status together with the payment-error
	// fields; empty strings clear a previous error
	UpdatePaymentState(ctx context.Context, id uint, status domain.OrderStatus, errCode, errMessage string) error

	// GetDeliveryType retrieves a delivery type by ID
	GetDeliveryType(ctx context.Context, id uint) (*domain.DeliveryType, error)

	// GetPaymentMethod retrieves a payment method by ID
	GetPaymentMethod(ctx context.Context, id uint) (*domain.PaymentMethod, error)
}

// PromotionRepository defines the interface for promotion persistence
type PromotionRepository interface {
	// List retrieves all promotions
	List(ctx context.Context) ([]*domain.Promotion, error)

	// Save persists the mutable promotion fields
	Save(ctx context.Context, promotion *domain.Promotion) error
}

// SettingsRepository defines the interface for the site settings row
type SettingsRepository interface {
	// Get retrieves the settings row, or a NotFound error when none exists
	Get(ctx context.Context) (*domain.Settings, error)
}

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	// PublishOrderCreated publishes an order created event
	PublishOrderCreated(ctx context.Context, order *domain.Order) error

	// PublishOrderPaid publishes an order paid event
	PublishOrderPaid(ctx context.Context, order *domain.Order) error

	// PublishOrderCanceled publishes an order canceled event
	PublishOrderCanceled(ctx context.Context, order *domain.Order) error
}

// PaymentAuthorizer is the pluggable payment authorization predicate. A nil
// return approves the payment; domain.ErrPaymentDeclined declines it.
type PaymentAuthorizer interface {
	Authorize(ctx context.Context, cardNumber string) error
}

// ProductCache defines the interface for the read-through product cache.
// A cache miss returns (nil, nil).
type ProductCache interface {
	Get(ctx context.Context, id uint) (*domain.Product, error)
	Set(ctx context.Context, product *domain.Product) error
	Invalidate(ctx context.Context, ids ...uint) error
}
