package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"go-shop/internal/shop/domain"
	apperrors "go-shop/pkg/errors"
)

// orderRepository implements ports.OrderRepository using PostgreSQL
type orderRepository struct {
	db *gorm.DB
}

// Create creates a new order
func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	model := OrderModel{
		UserID:              order.UserID,
		DeliveryTypeID:      order.DeliveryTypeID,
		City:                order.City,
		Address:             order.Address,
		PaymentMethodID:     order.PaymentMethodID,
		StatusID:            uint(order.Status),
		PaymentError:        order.PaymentError,
		PaymentErrorMessage: order.PaymentErrorMessage,
		OrderAmount:         order.OrderAmount,
	}

	result := r.db.WithContext(ctx).Create(&model)
	if result.Error != nil {
		return apperrors.NewInternal("failed to create order", result.Error)
	}

	order.ID = model.ID
	order.CreatedAt = model.CreatedAt
	return nil
}

// CreateItem creates a frozen order line item
func (r *orderRepository) CreateItem(ctx context.Context, item *domain.OrderItem) error {
	model := OrderItemModel{
		OrderID:   item.OrderID,
		ProductID: item.ProductID,
		Price:     item.Price,
		Quantity:  item.Quantity,
		Amount:    item.Amount,
	}

	result := r.db.WithContext(ctx).Create(&model)
	if result.Error != nil {
		return apperrors.NewInternal("failed to create order item", result.Error)
	}

	item.ID = model.ID
	return nil
}

// GetByID retrieves an order with its line items
func (r *orderRepository) GetByID(ctx context.Context, id uint) (*domain.Order, error) {
	var model OrderModel

	result := r.db.WithContext(ctx).Preload("Items").First(&model, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.NewOrderNotFound(id)
		}
		return nil, apperrors.NewInternal("failed to get order", result.Error)
	}

	return orderToDomain(&model), nil
}

// GetForUpdate retrieves an order with its line items and locks the order row
// until the enclosing transaction commits. Line items never change after
// creation, so only the order row needs the lock.
func (r *orderRepository) GetForUpdate(ctx context.Context, id uint) (*domain.Order, error) {
	var model OrderModel

	result := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&model, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.NewOrderNotFound(id)
		}
		return nil, apperrors.NewInternal("failed to lock order", result.Error)
	}

	var items []OrderItemModel
	if err := r.db.WithContext(ctx).Where("order_id = ?", id).Find(&items).Error; err != nil {
		return nil, apperrors.NewInternal("failed to get order items", err)
	}
	model.Items = items

	return orderToDomain(&model), nil
}

// ListByUser retrieves a user's orders, newest first
func (r *orderRepository) ListByUser(ctx context.Context, userID uint) ([]*domain.Order, error) {
	var models []OrderModel

	result := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models)
	if result.Error != nil {
		return nil, apperrors.NewInternal("failed to list orders by user", result.Error)
	}

	orders := make([]*domain.Order, len(models))
	for i := range models {
		orders[i] = orderToDomain(&models[i])
	}
	return orders, nil
}

// UpdateStatus sets the order status
func (r *orderRepository) UpdateStatus(ctx context.Context, id uint, status domain.OrderStatus) error {
	result := r.db.WithContext(ctx).
		Model(&OrderModel{}).
		Where("id = ?", id).
		Update("status_id", uint(status))
	if result.Error != nil {
		return apperrors.NewInternal("failed to update order status", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewOrderNotFound(id)
	}
	return nil
}

// UpdatePaymentState sets the status together with the payment-error fields
func (r *orderRepository) UpdatePaymentState(ctx context.Context, id uint, status domain.OrderStatus, errCode, errMessage string) error {
	result := r.db.WithContext(ctx).
		Model(&OrderModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status_id":             uint(status),
			"payment_error":         errCode,
			"payment_error_message": errMessage,
		})
	if result.Error != nil {
		return apperrors.NewInternal("failed to update order payment state", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewOrderNotFound(id)
	}
	return nil
}

// GetDeliveryType retrieves a delivery type by ID
func (r *orderRepository) GetDeliveryType(ctx context.Context, id uint) (*domain.DeliveryType, error) {
	var model DeliveryTypeModel

	result := r.db.WithContext(ctx).First(&model, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.NewDeliveryTypeNotFound(id)
		}
		return nil, apperrors.NewInternal("failed to get delivery type", result.Error)
	}

	return &domain.DeliveryType{
		ID:                            model.ID,
		Title:                         model.Title,
		FreeDelivery:                  model.FreeDelivery,
		PurchaseAmountForFreeDelivery: model.PurchaseAmountForFreeDelivery,
		DeliveryCost:                  model.DeliveryCost,
	}, nil
}

// GetPaymentMethod retrieves a payment method by ID
func (r *orderRepository) GetPaymentMethod(ctx context.Context, id uint) (*domain.PaymentMethod, error) {
	var model PaymentMethodModel

	result := r.db.WithContext(ctx).First(&model, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.NewPaymentMethodNotFound(id)
		}
		return nil, apperrors.NewInternal("failed to get payment method", result.Error)
	}

	return &domain.PaymentMethod{ID: model.ID, Title: model.Title}, nil
}

// orderToDomain converts a GORM model to a domain entity
func orderToDomain(model *OrderModel) *domain.Order {
	order := &domain.Order{
		ID:                  model.ID,
		UserID:              model.UserID,
		CreatedAt:           model.CreatedAt,
		DeliveryTypeID:      model.DeliveryTypeID,
		City:                model.City,
		Address:             model.Address,
		PaymentMethodID:     model.PaymentMethodID,
		Status:              domain.OrderStatus(model.StatusID),
		PaymentError:        model.PaymentError,
		PaymentErrorMessage: model.PaymentErrorMessage,
		OrderAmount:         model.OrderAmount,
		Items:               make([]domain.OrderItem, len(model.Items)),
	}
	for i := range model.Items {
		item := &model.Items[i]
		order.Items[i] = domain.OrderItem{
			ID:        item.ID,
			OrderID:   item.OrderID,
			ProductID: item.ProductID,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Amount:    item.Amount,
		}
	}
	return order
}
