package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"go-shop/internal/shop/domain"
	apperrors "go-shop/pkg/errors"
)

// productRepository implements ports.ProductRepository using PostgreSQL
type productRepository struct {
	db *gorm.DB
}

// GetByID retrieves a product by ID
func (r *productRepository) GetByID(ctx context.Context, id uint) (*domain.Product, error) {
	var model ProductModel

	result := r.db.WithContext(ctx).First(&model, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.NewProductNotFound(id)
		}
		return nil, apperrors.NewInternal("failed to get product", result.Error)
	}

	return productToDomain(&model), nil
}

// GetForUpdate retrieves a product and locks its row until the enclosing
// transaction commits. Conflicting inventory writers serialize here.
func (r *productRepository) GetForUpdate(ctx context.Context, id uint) (*domain.Product, error) {
	var model ProductModel

	result := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&model, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.NewProductNotFound(id)
		}
		return nil, apperrors.NewInternal("failed to lock product", result.Error)
	}

	return productToDomain(&model), nil
}

// ListByPromotion retrieves the products attached to a promotion
func (r *productRepository) ListByPromotion(ctx context.Context, promotionID uint) ([]*domain.Product, error) {
	var models []ProductModel

	result := r.db.WithContext(ctx).Where("promotion_id = ?", promotionID).Find(&models)
	if result.Error != nil {
		return nil, apperrors.NewInternal("failed to list products by promotion", result.Error)
	}

	products := make([]*domain.Product, len(models))
	for i := range models {
		products[i] = productToDomain(&models[i])
	}
	return products, nil
}

// Save persists the mutable product fields
func (r *productRepository) Save(ctx context.Context, product *domain.Product) error {
	result := r.db.WithContext(ctx).
		Model(&ProductModel{}).
		Where("id = ?", product.ID).
		Updates(map[string]interface{}{
			"price":         product.Price,
			"current_price": product.CurrentPrice,
			"quantity":      product.Quantity,
			"promotion_id":  product.PromotionID,
			"is_limited":    product.IsLimited,
		})
	if result.Error != nil {
		return apperrors.NewInternal("failed to save product", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewProductNotFound(product.ID)
	}
	return nil
}

// UpdateQuantity sets the available quantity of a product
func (r *productRepository) UpdateQuantity(ctx context.Context, id uint, quantity int) error {
	result := r.db.WithContext(ctx).
		Model(&ProductModel{}).
		Where("id = ?", id).
		Update("quantity", quantity)
	if result.Error != nil {
		return apperrors.NewInternal("failed to update product quantity", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewProductNotFound(id)
	}
	return nil
}

// productToDomain converts a GORM model to a domain entity
func productToDomain(model *ProductModel) *domain.Product {
	return &domain.Product{
		ID:           model.ID,
		SKU:          model.SKU,
		Title:        model.Title,
		Price:        model.Price,
		CurrentPrice: model.CurrentPrice,
		Quantity:     model.Quantity,
		PromotionID:  model.PromotionID,
		IsLimited:    model.IsLimited,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}
