package application

import (
	"context"
	"time"

	"go-shop/internal/shop/domain"
	"go-shop/internal/shop/ports"
	"go-shop/pkg/logger"

	"go.uber.org/zap"
)

// CatalogUseCase handles product reads and the promotion lifecycle.
type CatalogUseCase struct {
	store ports.Store
	cache ports.ProductCache
	log   *logger.Logger
}

// NewCatalogUseCase creates a new catalog use case. cache may be nil.
func NewCatalogUseCase(store ports.Store, cache ports.ProductCache, log *logger.Logger) *CatalogUseCase {
	return &CatalogUseCase{store: store, cache: cache, log: log}
}

// GetProductOutput represents the output of a product read
type GetProductOutput struct {
	Product *domain.Product
}

// GetProduct retrieves a product, reading through the cache when one is
// configured.
func (uc *CatalogUseCase) GetProduct(ctx context.Context, productID uint) (*GetProductOutput, error) {
	if uc.cache != nil {
		product, err := uc.cache.Get(ctx, productID)
		if err != nil {
			uc.log.WithContext(ctx).Warn("product cache read failed", zap.Error(err))
		} else if product != nil {
			return &GetProductOutput{Product: product}, nil
		}
	}

	product, err := uc.store.Products().GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, product); err != nil {
			uc.log.WithContext(ctx).Warn("product cache write failed", zap.Error(err))
		}
	}

	return &GetProductOutput{Product: product}, nil
}

// RefreshPromotions recomputes every promotion's active flag for the given
// day, detaches products from promotions that ended, and recomputes current
// prices. Cart lines holding a repriced product are recomputed in the same
// transaction so cart totals keep agreeing with current prices. Prices change
// only here and on explicit promotion edits, never as a side effect of
// loading a row.
func (uc *CatalogUseCase) RefreshPromotions(ctx context.Context, day time.Time) error {
	var touched []uint

	err := uc.store.WithinTx(ctx, func(s ports.Store) error {
		promotions, err := s.Promotions().List(ctx)
		if err != nil {
			return err
		}

		for _, promotion := range promotions {
			changed := promotion.Refresh(day)
			if changed {
				if err := s.Promotions().Save(ctx, promotion); err != nil {
					return err
				}
			}

			products, err := s.Products().ListByPromotion(ctx, promotion.ID)
			if err != nil {
				return err
			}
			for _, product := range products {
				if promotion.IsActive {
					product.RecomputeCurrentPrice(promotion)
				} else {
					// An ended promotion releases its products entirely.
					product.PromotionID = nil
					product.RecomputeCurrentPrice(nil)
				}
				if err := s.Products().Save(ctx, product); err != nil {
					return err
				}
				if err := s.Carts().RepriceProduct(ctx, product.ID, product.CurrentPrice); err != nil {
					return err
				}
				touched = append(touched, product.ID)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if uc.cache != nil && len(touched) > 0 {
		if err := uc.cache.Invalidate(ctx, touched...); err != nil {
			uc.log.WithContext(ctx).Warn("failed to invalidate product cache", zap.Error(err))
		}
	}

	uc.log.WithContext(ctx).Info("promotions refreshed",
		zap.Int("products_touched", len(touched)),
	)

	return nil
}
