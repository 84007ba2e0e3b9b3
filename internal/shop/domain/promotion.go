package domain

import "time"

// Promotion represents a time-boxed discount applied to products.
type Promotion struct {
	ID           uint
	Title        string
	Description  string
	DiscountSize float64
	StartDate    time.Time
	EndDate      time.Time
	IsActive     bool
}

// Validate validates the promotion entity
func (p *Promotion) Validate() error {
	if p.DiscountSize < 0 || p.DiscountSize > 100 {
		return ErrInvalidDiscount
	}
	if p.EndDate.Before(p.StartDate) {
		return ErrPromotionDatesInverted
	}
	return nil
}

// ActiveOn reports whether the promotion runs on the given day. Both bounds
// are inclusive and compared by calendar date, not by instant.
func (p *Promotion) ActiveOn(day time.Time) bool {
	d := truncateToDay(day)
	return !d.Before(truncateToDay(p.StartDate)) && !d.After(truncateToDay(p.EndDate))
}

// Refresh recomputes the active flag for the given day and reports whether it
// changed.
func (p *Promotion) Refresh(day time.Time) bool {
	active := p.ActiveOn(day)
	if active == p.IsActive {
		return false
	}
	p.IsActive = active
	return true
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
