package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"go-shop/internal/shop/domain"
	apperrors "go-shop/pkg/errors"
)

// cartRepository implements ports.CartRepository using PostgreSQL
type cartRepository struct {
	db *gorm.DB
}

// GetByUser retrieves a user's cart with its line items
func (r *cartRepository) GetByUser(ctx context.Context, userID uint) (*domain.Cart, error) {
	var model CartModel

	result := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.NewCartNotFound(userID)
		}
		return nil, apperrors.NewInternal("failed to get cart by user", result.Error)
	}

	return cartToDomain(&model), nil
}

// GetBySession retrieves an anonymous session's cart with its line items
func (r *cartRepository) GetBySession(ctx context.Context, sessionKey string) (*domain.Cart, error) {
	if sessionKey == "" {
		return nil, domain.NewCartNotFound(sessionKey)
	}

	var model CartModel

	result := r.db.WithContext(ctx).
		Preload("Items").
		Where("session_key = ?", sessionKey).
		First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.NewCartNotFound(sessionKey)
		}
		return nil, apperrors.NewInternal("failed to get cart by session", result.Error)
	}

	return cartToDomain(&model), nil
}

// Create creates an empty cart
func (r *cartRepository) Create(ctx context.Context, cart *domain.Cart) error {
	model := CartModel{
		UserID:     cart.UserID,
		SessionKey: cart.SessionKey,
	}

	result := r.db.WithContext(ctx).Create(&model)
	if result.Error != nil {
		return apperrors.NewInternal("failed to create cart", result.Error)
	}

	cart.ID = model.ID
	return nil
}

// Delete removes a cart and its remaining line items
func (r *cartRepository) Delete(ctx context.Context, cartID uint) error {
	db := r.db.WithContext(ctx)

	if err := db.Where("cart_id = ?", cartID).Delete(&CartItemModel{}).Error; err != nil {
		return apperrors.NewInternal("failed to delete cart items", err)
	}
	if err := db.Delete(&CartModel{}, cartID).Error; err != nil {
		return apperrors.NewInternal("failed to delete cart", err)
	}
	return nil
}

// Reassign re-points a session cart to a registered user. The session key is
// cleared so the old anonymous identity cannot reach the cart anymore.
func (r *cartRepository) Reassign(ctx context.Context, cartID, userID uint) error {
	result := r.db.WithContext(ctx).
		Model(&CartModel{}).
		Where("id = ?", cartID).
		Updates(map[string]interface{}{
			"user_id":     userID,
			"session_key": "",
		})
	if result.Error != nil {
		return apperrors.NewInternal("failed to reassign cart", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewCartNotFound(cartID)
	}
	return nil
}

// GetItem retrieves the line item for a product inside a cart
func (r *cartRepository) GetItem(ctx context.Context, cartID, productID uint) (*domain.CartItem, error) {
	var model CartItemModel

	result := r.db.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.NewCartItemNotFound(productID)
		}
		return nil, apperrors.NewInternal("failed to get cart item", result.Error)
	}

	item := cartItemToDomain(&model)
	return &item, nil
}

// CreateItem creates a new line item
func (r *cartRepository) CreateItem(ctx context.Context, item *domain.CartItem) error {
	model := CartItemModel{
		CartID:    item.CartID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
		Amount:    item.Amount,
	}

	result := r.db.WithContext(ctx).Create(&model)
	if result.Error != nil {
		return apperrors.NewInternal("failed to create cart item", result.Error)
	}

	item.ID = model.ID
	return nil
}

// UpdateItem persists quantity and amount of a line item
func (r *cartRepository) UpdateItem(ctx context.Context, item *domain.CartItem) error {
	result := r.db.WithContext(ctx).
		Model(&CartItemModel{}).
		Where("id = ?", item.ID).
		Updates(map[string]interface{}{
			"quantity": item.Quantity,
			"amount":   item.Amount,
		})
	if result.Error != nil {
		return apperrors.NewInternal("failed to update cart item", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewCartItemNotFound(item.ProductID)
	}
	return nil
}

// DeleteItem removes a line item. Zero affected rows means a concurrent
// transaction already consumed the line; reporting not found makes the
// caller's transaction abort instead of double-booking the line.
func (r *cartRepository) DeleteItem(ctx context.Context, itemID uint) error {
	result := r.db.WithContext(ctx).Delete(&CartItemModel{}, itemID)
	if result.Error != nil {
		return apperrors.NewInternal("failed to delete cart item", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFound("cart item", itemID)
	}
	return nil
}

// MoveItem re-points a line item to another cart
func (r *cartRepository) MoveItem(ctx context.Context, itemID, toCartID uint) error {
	result := r.db.WithContext(ctx).
		Model(&CartItemModel{}).
		Where("id = ?", itemID).
		Update("cart_id", toCartID)
	if result.Error != nil {
		return apperrors.NewInternal("failed to move cart item", result.Error)
	}
	return nil
}

// RepriceProduct recomputes the stored amount of every line item holding the
// product from its unit price
func (r *cartRepository) RepriceProduct(ctx context.Context, productID uint, unitPrice float64) error {
	result := r.db.WithContext(ctx).
		Model(&CartItemModel{}).
		Where("product_id = ?", productID).
		Update("amount", gorm.Expr("quantity * ?", unitPrice))
	if result.Error != nil {
		return apperrors.NewInternal("failed to reprice cart items", result.Error)
	}
	return nil
}

// cartToDomain converts a GORM model to a domain entity
func cartToDomain(model *CartModel) *domain.Cart {
	cart := &domain.Cart{
		ID:         model.ID,
		UserID:     model.UserID,
		SessionKey: model.SessionKey,
		Items:      make([]domain.CartItem, len(model.Items)),
	}
	for i := range model.Items {
		cart.Items[i] = cartItemToDomain(&model.Items[i])
	}
	return cart
}

func cartItemToDomain(model *CartItemModel) domain.CartItem {
	return domain.CartItem{
		ID:        model.ID,
		CartID:    model.CartID,
		ProductID: model.ProductID,
		Quantity:  model.Quantity,
		Amount:    model.Amount,
	}
}
