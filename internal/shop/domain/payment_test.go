package domain

import (
	"errors"
	"testing"
)

func TestValidateCardNumber(t *testing.T) {
	tests := []struct {
		name       string
		cardNumber string
		approved   bool
	}{
		{"even not ending in zero", "12345678", true},
		{"even with spaces", "4242 4242 4242 4242", true},
		{"odd number", "12345677", false},
		{"even ending in zero", "12345670", false},
		{"not numeric", "4242-4242", false},
		{"empty", "", false},
		{"single even digit", "2", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCardNumber(tt.cardNumber)
			if tt.approved && err != nil {
				t.Errorf("expected approval, got %v", err)
			}
			if !tt.approved {
				if err == nil {
					t.Fatal("expected decline, got nil")
				}
				if !errors.Is(err, ErrPaymentDeclined) {
					t.Errorf("expected ErrPaymentDeclined, got %v", err)
				}
			}
		})
	}
}

func TestStockShortage_Error(t *testing.T) {
	err := &StockShortage{ProductID: 3, Title: "mouse", Requested: 5, Available: 3}
	want := "insufficient stock for product mouse: requested 5, available 3"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}
