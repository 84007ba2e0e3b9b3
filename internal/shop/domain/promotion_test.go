package domain

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPromotion_ActiveOn(t *testing.T) {
	promotion := &Promotion{
		DiscountSize: 20,
		StartDate:    day(2026, time.March, 10),
		EndDate:      day(2026, time.March, 20),
	}

	tests := []struct {
		name string
		on   time.Time
		want bool
	}{
		{"before start", day(2026, time.March, 9), false},
		{"first day", day(2026, time.March, 10), true},
		{"mid window", day(2026, time.March, 15), true},
		{"last day", day(2026, time.March, 20), true},
		{"last day late evening", time.Date(2026, time.March, 20, 23, 59, 0, 0, time.UTC), true},
		{"after end", day(2026, time.March, 21), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := promotion.ActiveOn(tt.on); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestPromotion_Refresh(t *testing.T) {
	promotion := &Promotion{
		DiscountSize: 20,
		StartDate:    day(2026, time.March, 10),
		EndDate:      day(2026, time.March, 20),
	}

	if !promotion.Refresh(day(2026, time.March, 15)) {
		t.Error("expected a change when the window opens")
	}
	if !promotion.IsActive {
		t.Error("expected the promotion to be active")
	}
	if promotion.Refresh(day(2026, time.March, 16)) {
		t.Error("expected no change while the flag is current")
	}
	if !promotion.Refresh(day(2026, time.March, 21)) {
		t.Error("expected a change when the window closes")
	}
	if promotion.IsActive {
		t.Error("expected the promotion to be inactive")
	}
}

func TestProduct_RecomputeCurrentPrice(t *testing.T) {
	product := &Product{Price: 1000}

	// No promotion: current price equals the list price.
	product.RecomputeCurrentPrice(nil)
	if product.CurrentPrice != 1000 {
		t.Errorf("expected 1000, got %f", product.CurrentPrice)
	}

	// Active 20% promotion.
	product.RecomputeCurrentPrice(&Promotion{DiscountSize: 20, IsActive: true})
	if product.CurrentPrice != 800 {
		t.Errorf("expected 800, got %f", product.CurrentPrice)
	}

	// Inactive promotion does not discount.
	product.RecomputeCurrentPrice(&Promotion{DiscountSize: 20})
	if product.CurrentPrice != 1000 {
		t.Errorf("expected 1000, got %f", product.CurrentPrice)
	}

	// Discounted prices round to a whole currency unit.
	product.Price = 999.99
	product.RecomputeCurrentPrice(&Promotion{DiscountSize: 15, IsActive: true})
	if product.CurrentPrice != 850 {
		t.Errorf("expected 850, got %f", product.CurrentPrice)
	}
}

func TestPromotion_Validate(t *testing.T) {
	invalid := &Promotion{DiscountSize: 120, StartDate: day(2026, time.March, 10), EndDate: day(2026, time.March, 20)}
	if err := invalid.Validate(); err == nil {
		t.Error("expected error for a discount above 100")
	}

	inverted := &Promotion{DiscountSize: 10, StartDate: day(2026, time.March, 20), EndDate: day(2026, time.March, 10)}
	if err := inverted.Validate(); err == nil {
		t.Error("expected error for inverted dates")
	}
}
