package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"go-shop/internal/shop/domain"
	apperrors "go-shop/pkg/errors"
)

// promotionRepository implements ports.PromotionRepository using PostgreSQL
type promotionRepository struct {
	db *gorm.DB
}

// List retrieves all promotions
func (r *promotionRepository) List(ctx context.Context) ([]*domain.Promotion, error) {
	var models []PromotionModel

	result := r.db.WithContext(ctx).Order("end_date").Find(&models)
	if result.Error != nil {
		return nil, apperrors.NewInternal("failed to list promotions", result.Error)
	}

	promotions := make([]*domain.Promotion, len(models))
	for i := range models {
		promotions[i] = promotionToDomain(&models[i])
	}
	return promotions, nil
}

// Save persists the mutable promotion fields
func (r *promotionRepository) Save(ctx context.Context, promotion *domain.Promotion) error {
	result := r.db.WithContext(ctx).
		Model(&PromotionModel{}).
		Where("id = ?", promotion.ID).
		Updates(map[string]interface{}{
			"discount_size": promotion.DiscountSize,
			"start_date":    promotion.StartDate,
			"end_date":      promotion.EndDate,
			"is_active":     promotion.IsActive,
		})
	if result.Error != nil {
		return apperrors.NewInternal("failed to save promotion", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFound("promotion", promotion.ID)
	}
	return nil
}

func promotionToDomain(model *PromotionModel) *domain.Promotion {
	return &domain.Promotion{
		ID:           model.ID,
		Title:        model.Title,
		Description:  model.Description,
		DiscountSize: model.DiscountSize,
		StartDate:    model.StartDate,
		EndDate:      model.EndDate,
		IsActive:     model.IsActive,
	}
}

// settingsRepository implements ports.SettingsRepository using PostgreSQL
type settingsRepository struct {
	db *gorm.DB
}

// Get retrieves the settings row
func (r *settingsRepository) Get(ctx context.Context) (*domain.Settings, error) {
	var model SettingsModel

	result := r.db.WithContext(ctx).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("settings", "site")
		}
		return nil, apperrors.NewInternal("failed to get settings", result.Error)
	}

	return &domain.Settings{
		ID:          model.ID,
		StoreTitle:  model.StoreTitle,
		Currency:    model.Currency,
		ServerEmail: model.ServerEmail,
		EmailHost:   model.EmailHost,
		EmailPort:   model.EmailPort,
		EmailUseTLS: model.EmailUseTLS,
	}, nil
}
