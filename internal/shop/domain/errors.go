package domain

import "go-shop/pkg/errors"

// Domain-specific errors
var (
	ErrUserIDRequired         = errors.NewValidation("user_id is required", nil)
	ErrCityRequired           = errors.NewValidation("delivery city is required", nil)
	ErrAddressRequired        = errors.NewValidation("delivery address is required", nil)
	ErrInvalidOrderAmount     = errors.NewValidation("order amount must be greater than 0", nil)
	ErrProductTitleRequired   = errors.NewValidation("product title is required", nil)
	ErrNegativePrice          = errors.NewValidation("price cannot be negative", nil)
	ErrNegativeQuantity       = errors.NewValidation("quantity cannot be negative", nil)
	ErrInvalidDiscount        = errors.NewValidation("discount size must be between 0 and 100", nil)
	ErrPromotionDatesInverted = errors.NewValidation("promotion end date precedes start date", nil)
	ErrInvalidItemQuantity    = errors.NewValidation("item quantity must be positive", nil)
	ErrEmptyCart              = errors.NewPrecondition("cart is empty, nothing to order", nil)
)

// NewProductNotFound creates a not found error with the product ID
func NewProductNotFound(id uint) error {
	return errors.NewNotFound("product", id)
}

// NewCartNotFound creates a not found error for a cart identity
func NewCartNotFound(identity interface{}) error {
	return errors.NewNotFound("cart", identity)
}

// NewCartItemNotFound creates a not found error for a cart line item
func NewCartItemNotFound(productID uint) error {
	return errors.NewNotFound("cart item for product", productID)
}

// NewOrderNotFound creates a not found error with the order ID
func NewOrderNotFound(id uint) error {
	return errors.NewNotFound("order", id)
}

// NewDeliveryTypeNotFound creates a not found error with the delivery type ID
func NewDeliveryTypeNotFound(id uint) error {
	return errors.NewNotFound("delivery type", id)
}

// NewPaymentMethodNotFound creates a not found error with the payment method ID
func NewPaymentMethodNotFound(id uint) error {
	return errors.NewNotFound("payment method", id)
}

// NewQuantityExceedsStock creates a precondition error for a cart mutation
// asking for more units than the inventory holds.
func NewQuantityExceedsStock(productID uint, requested, available int) error {
	return errors.NewPrecondition("requested quantity exceeds available stock", map[string]interface{}{
		"product_id": productID,
		"requested":  requested,
		"available":  available,
	})
}

// NewOrderNotPayable creates a precondition error for a payment attempt on a
// non-Unpaid order.
func NewOrderNotPayable(id uint, status OrderStatus) error {
	return errors.NewPrecondition("order is not awaiting payment", map[string]interface{}{
		"order_id": id,
		"status":   status.String(),
	})
}

// NewStatusNotAssignable creates a validation error for a direct status update
// that must go through the payment or cancellation workflow instead.
func NewStatusNotAssignable(status OrderStatus) error {
	return errors.NewValidation("status cannot be assigned directly", map[string]interface{}{
		"status": status.String(),
	})
}
