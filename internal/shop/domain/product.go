package domain

import (
	"math"
	"time"
)

// Product represents a catalog product with its inventory counter.
type Product struct {
	ID           uint
	SKU          string
	Title        string
	Price        float64
	CurrentPrice float64
	Quantity     int
	PromotionID  *uint
	IsLimited    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate validates the product entity
func (p *Product) Validate() error {
	if p.Title == "" {
		return ErrProductTitleRequired
	}
	if p.Price < 0 {
		return ErrNegativePrice
	}
	if p.Quantity < 0 {
		return ErrNegativeQuantity
	}
	return nil
}

// RecomputeCurrentPrice derives the current price from the list price and the
// attached promotion. Prices with an active discount are rounded to a whole
// currency unit. Callers persist the result after every promotion change;
// nothing recomputes implicitly on load.
func (p *Product) RecomputeCurrentPrice(promo *Promotion) {
	if promo != nil && promo.IsActive {
		p.CurrentPrice = math.Round(p.Price - p.Price*promo.DiscountSize/100)
		return
	}
	p.CurrentPrice = p.Price
}

// InStock reports whether the requested quantity can be taken from inventory.
func (p *Product) InStock(quantity int) bool {
	return p.Quantity >= quantity
}
