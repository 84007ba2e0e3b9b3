package domain

import (
	"errors"
	"strconv"
	"strings"
)

// ErrPaymentDeclined signals that the card authorization predicate rejected
// the payment. It is recorded on the order, not surfaced as a fatal error.
var ErrPaymentDeclined = errors.New("card authorization declined")

// User-visible payment failure fields recorded on the order.
const (
	PaymentErrorCode        = "payment error"
	PaymentDeclinedMessage  = "payment was declined"
	OutOfStockMessagePrefix = "product is out of stock: "
)

// ValidateCardNumber is the stand-in for a payment-gateway authorization
// check: the numeric card number must be even and its last digit must not be
// zero. Spaces are ignored. Any real integration replaces this predicate.
func ValidateCardNumber(cardNumber string) error {
	digits := strings.ReplaceAll(strings.TrimSpace(cardNumber), " ", "")
	number, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return ErrPaymentDeclined
	}
	if number%2 != 0 || number%10 == 0 {
		return ErrPaymentDeclined
	}
	return nil
}

// StockShortage reports that a payment attempt asked for more units than the
// inventory holds. It aborts the whole payment transaction.
type StockShortage struct {
	ProductID uint
	Title     string
	Requested int
	Available int
}

func (e *StockShortage) Error() string {
	return "insufficient stock for product " + e.Title +
		": requested " + strconv.Itoa(e.Requested) +
		", available " + strconv.Itoa(e.Available)
}
