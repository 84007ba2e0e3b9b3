package domain

// Cart is a mutable collection of line items owned by exactly one identity:
// a registered user or an anonymous session key.
type Cart struct {
	ID         uint
	UserID     *uint
	SessionKey string
	Items      []CartItem
}

// Amount returns the total monetary amount of the cart, zero when empty.
func (c *Cart) Amount() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Amount
	}
	return total
}

// NumberOfItems returns the total quantity across all line items.
func (c *Cart) NumberOfItems() int {
	var n int
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

// IsEmpty reports whether the cart has no line items.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Item returns the line item for the given product, or nil.
func (c *Cart) Item(productID uint) *CartItem {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}

// CartItem is a (product, quantity) pairing inside a cart. Amount is derived
// from the quantity and the product's current price and recalculated after
// every mutation.
type CartItem struct {
	ID        uint
	CartID    uint
	ProductID uint
	Quantity  int
	Amount    float64
}

// Recalculate recomputes the line amount from the given unit price.
func (i *CartItem) Recalculate(unitPrice float64) {
	i.Amount = float64(i.Quantity) * unitPrice
}
