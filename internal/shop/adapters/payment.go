package adapters

import (
	"context"

	"go-shop/internal/shop/domain"
)

// CardAuthorizer is the stand-in payment gateway: it approves a payment when
// the card number passes the deterministic card-number predicate. Swapping in
// a real gateway means replacing this implementation of
// ports.PaymentAuthorizer, nothing else.
type CardAuthorizer struct{}

// NewCardAuthorizer creates the stand-in authorizer
func NewCardAuthorizer() *CardAuthorizer {
	return &CardAuthorizer{}
}

// Authorize approves or declines the card number
func (a *CardAuthorizer) Authorize(_ context.Context, cardNumber string) error {
	return domain.ValidateCardNumber(cardNumber)
}
