package domain

import "testing"

func TestDeliveryType_Fee(t *testing.T) {
	free := &DeliveryType{
		Title:                         "regular",
		FreeDelivery:                  true,
		PurchaseAmountForFreeDelivery: 2000,
		DeliveryCost:                  200,
	}
	paid := &DeliveryType{
		Title:        "express",
		DeliveryCost: 500,
	}

	tests := []struct {
		name     string
		delivery *DeliveryType
		subtotal float64
		want     float64
	}{
		{"below threshold charges", free, 1500, 200},
		{"at threshold is free", free, 2000, 0},
		{"above threshold is free", free, 5000, 0},
		{"paid type charges below threshold", paid, 300, 500},
		{"paid type charges above threshold", paid, 5000, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.delivery.Fee(tt.subtotal); got != tt.want {
				t.Errorf("expected fee %f, got %f", tt.want, got)
			}
		})
	}
}

func TestNewOrder_Validation(t *testing.T) {
	if _, err := NewOrder(0, 1, 1, "Springfield", "742 Evergreen Terrace", 100); err == nil {
		t.Error("expected error for missing user")
	}
	if _, err := NewOrder(1, 1, 1, "", "742 Evergreen Terrace", 100); err == nil {
		t.Error("expected error for missing city")
	}
	if _, err := NewOrder(1, 1, 1, "Springfield", "", 100); err == nil {
		t.Error("expected error for missing address")
	}
	if _, err := NewOrder(1, 1, 1, "Springfield", "742 Evergreen Terrace", 0); err == nil {
		t.Error("expected error for zero amount")
	}

	order, err := NewOrder(1, 1, 1, "Springfield", "742 Evergreen Terrace", 100)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if order.Status != StatusUnpaid {
		t.Errorf("expected a new order to be unpaid, got %s", order.Status)
	}
}

func TestOrder_HoldsInventory(t *testing.T) {
	tests := []struct {
		status OrderStatus
		want   bool
	}{
		{StatusUnpaid, false},
		{StatusCanceled, false},
		{StatusPaid, true},
		{StatusSent, true},
		{StatusHandedToBuyer, true},
	}

	for _, tt := range tests {
		order := &Order{Status: tt.status}
		if got := order.HoldsInventory(); got != tt.want {
			t.Errorf("status %s: expected %v, got %v", tt.status, tt.want, got)
		}
	}
}

func TestOrderStatus_Valid(t *testing.T) {
	for s := StatusUnpaid; s <= StatusCanceled; s++ {
		if !s.Valid() {
			t.Errorf("expected status %d to be valid", s)
		}
	}
	if OrderStatus(0).Valid() || OrderStatus(11).Valid() {
		t.Error("expected out-of-range statuses to be invalid")
	}
}

func TestNewOrderItem_FreezesAmount(t *testing.T) {
	item := NewOrderItem(1, 2, 99.5, 4)
	if item.Amount != 398.0 {
		t.Errorf("expected amount 398, got %f", item.Amount)
	}
	if item.Price != 99.5 {
		t.Errorf("expected price 99.5, got %f", item.Price)
	}
}
