package application

import (
	"context"

	"go-shop/internal/shop/domain"
	"go-shop/internal/shop/ports"
	"go-shop/pkg/errors"
	"go-shop/pkg/logger"

	"go.uber.org/zap"
)

// Identity names the owner of a cart: a registered user or an anonymous
// session key. Exactly one of the two is set.
type Identity struct {
	UserID     uint
	SessionKey string
}

// Anonymous reports whether the identity is an unauthenticated session.
func (i Identity) Anonymous() bool {
	return i.UserID == 0
}

// ForUser returns the identity of a registered user.
func ForUser(userID uint) Identity {
	return Identity{UserID: userID}
}

// ForSession returns the identity of an anonymous session.
func ForSession(key string) Identity {
	return Identity{SessionKey: key}
}

// CartUseCase handles cart business logic
type CartUseCase struct {
	store ports.Store
	log   *logger.Logger
}

// NewCartUseCase creates a new cart use case
func NewCartUseCase(store ports.Store, log *logger.Logger) *CartUseCase {
	return &CartUseCase{store: store, log: log}
}

// CartOutput represents the output of cart operations
type CartOutput struct {
	Cart *domain.Cart
}

// GetCart returns the identity's cart, creating an empty one on first visit.
func (uc *CartUseCase) GetCart(ctx context.Context, identity Identity) (*CartOutput, error) {
	cart, err := getOrCreateCart(ctx, uc.store, identity)
	if err != nil {
		return nil, err
	}
	return &CartOutput{Cart: cart}, nil
}

// AddItemInput represents the input for adding a product to a cart
type AddItemInput struct {
	Identity  Identity
	ProductID uint
	Quantity  int
}

// AddItem adds the requested quantity onto the cart line for the product,
// creating the line when absent. Stock is deliberately not enforced here;
// it fluctuates until payment time, where it is checked for real.
func (uc *CartUseCase) AddItem(ctx context.Context, input AddItemInput) (*CartOutput, error) {
	if input.Quantity <= 0 {
		return nil, domain.ErrInvalidItemQuantity
	}

	var cart *domain.Cart
	err := uc.store.WithinTx(ctx, func(s ports.Store) error {
		var err error
		cart, err = getOrCreateCart(ctx, s, input.Identity)
		if err != nil {
			return err
		}

		product, err := s.Products().GetByID(ctx, input.ProductID)
		if err != nil {
			return err
		}

		item, err := s.Carts().GetItem(ctx, cart.ID, product.ID)
		switch {
		case errors.Is(err, errors.CodeNotFound):
			item = &domain.CartItem{
				CartID:    cart.ID,
				ProductID: product.ID,
				Quantity:  input.Quantity,
			}
			item.Recalculate(product.CurrentPrice)
			return s.Carts().CreateItem(ctx, item)
		case err != nil:
			return err
		}

		item.Quantity += input.Quantity
		item.Recalculate(product.CurrentPrice)
		return s.Carts().UpdateItem(ctx, item)
	})
	if err != nil {
		return nil, err
	}

	uc.log.WithContext(ctx).Info("cart item added",
		zap.Uint("cart_id", cart.ID),
		zap.Uint("product_id", input.ProductID),
		zap.Int("quantity", input.Quantity),
	)

	return uc.reload(ctx, input.Identity)
}

// SetItemQuantityInput represents the input for setting a line quantity
type SetItemQuantityInput struct {
	Identity  Identity
	ProductID uint
	Quantity  int
}

// SetItemQuantity sets a cart line to an explicit quantity. Zero deletes the
// line; a quantity above the available stock is rejected with an explicit
// precondition error.
func (uc *CartUseCase) SetItemQuantity(ctx context.Context, input SetItemQuantityInput) (*CartOutput, error) {
	if input.Quantity < 0 {
		return nil, domain.ErrInvalidItemQuantity
	}

	err := uc.store.WithinTx(ctx, func(s ports.Store) error {
		cart, err := getCart(ctx, s, input.Identity)
		if err != nil {
			return err
		}

		item, err := s.Carts().GetItem(ctx, cart.ID, input.ProductID)
		if err != nil {
			return err
		}

		if input.Quantity == 0 {
			return s.Carts().DeleteItem(ctx, item.ID)
		}

		product, err := s.Products().GetByID(ctx, input.ProductID)
		if err != nil {
			return err
		}
		if !product.InStock(input.Quantity) {
			return domain.NewQuantityExceedsStock(product.ID, input.Quantity, product.Quantity)
		}

		item.Quantity = input.Quantity
		item.Recalculate(product.CurrentPrice)
		return s.Carts().UpdateItem(ctx, item)
	})
	if err != nil {
		return nil, err
	}

	return uc.reload(ctx, input.Identity)
}

// ItemInput identifies a cart line for the single-step mutations
type ItemInput struct {
	Identity  Identity
	ProductID uint
}

// IncrementItem raises a line quantity by one, capped at the available stock.
func (uc *CartUseCase) IncrementItem(ctx context.Context, input ItemInput) (*CartOutput, error) {
	err := uc.store.WithinTx(ctx, func(s ports.Store) error {
		cart, err := getCart(ctx, s, input.Identity)
		if err != nil {
			return err
		}

		item, err := s.Carts().GetItem(ctx, cart.ID, input.ProductID)
		if err != nil {
			return err
		}

		product, err := s.Products().GetByID(ctx, input.ProductID)
		if err != nil {
			return err
		}
		if !product.InStock(item.Quantity + 1) {
			return domain.NewQuantityExceedsStock(product.ID, item.Quantity+1, product.Quantity)
		}

		item.Quantity++
		item.Recalculate(product.CurrentPrice)
		return s.Carts().UpdateItem(ctx, item)
	})
	if err != nil {
		return nil, err
	}

	return uc.reload(ctx, input.Identity)
}

// DecrementItem lowers a line quantity by one; reaching zero deletes the line.
func (uc *CartUseCase) DecrementItem(ctx context.Context, input ItemInput) (*CartOutput, error) {
	err := uc.store.WithinTx(ctx, func(s ports.Store) error {
		cart, err := getCart(ctx, s, input.Identity)
		if err != nil {
			return err
		}

		item, err := s.Carts().GetItem(ctx, cart.ID, input.ProductID)
		if err != nil {
			return err
		}

		item.Quantity--
		if item.Quantity <= 0 {
			return s.Carts().DeleteItem(ctx, item.ID)
		}

		product, err := s.Products().GetByID(ctx, input.ProductID)
		if err != nil {
			return err
		}
		item.Recalculate(product.CurrentPrice)
		return s.Carts().UpdateItem(ctx, item)
	})
	if err != nil {
		return nil, err
	}

	return uc.reload(ctx, input.Identity)
}

// RemoveItem deletes a cart line unconditionally.
func (uc *CartUseCase) RemoveItem(ctx context.Context, input ItemInput) (*CartOutput, error) {
	err := uc.store.WithinTx(ctx, func(s ports.Store) error {
		cart, err := getCart(ctx, s, input.Identity)
		if err != nil {
			return err
		}

		item, err := s.Carts().GetItem(ctx, cart.ID, input.ProductID)
		if err != nil {
			return err
		}
		return s.Carts().DeleteItem(ctx, item.ID)
	})
	if err != nil {
		return nil, err
	}

	return uc.reload(ctx, input.Identity)
}

// MergeCartsInput represents the input for the login-time cart merge
type MergeCartsInput struct {
	SessionKey string
	UserID     uint
}

// MergeCarts reconciles an anonymous session's cart into the authenticating
// user's cart. Lines for the same product merge by summing quantities; other
// lines are re-pointed to the user's cart; the emptied session cart is
// deleted. When the user has no prior cart the session cart is simply
// re-owned. The whole merge is one transaction.
func (uc *CartUseCase) MergeCarts(ctx context.Context, input MergeCartsInput) (*CartOutput, error) {
	err := uc.store.WithinTx(ctx, func(s ports.Store) error {
		sessionCart, err := s.Carts().GetBySession(ctx, input.SessionKey)
		if errors.Is(err, errors.CodeNotFound) {
			// Nothing shopped anonymously; make sure the user cart exists.
			_, err = getOrCreateCart(ctx, s, ForUser(input.UserID))
			return err
		}
		if err != nil {
			return err
		}

		userCart, err := s.Carts().GetByUser(ctx, input.UserID)
		if errors.Is(err, errors.CodeNotFound) {
			// First login: re-own the session cart instead of merging.
			return s.Carts().Reassign(ctx, sessionCart.ID, input.UserID)
		}
		if err != nil {
			return err
		}

		for i := range sessionCart.Items {
			sessionItem := &sessionCart.Items[i]
			userItem := userCart.Item(sessionItem.ProductID)
			if userItem == nil {
				if err := s.Carts().MoveItem(ctx, sessionItem.ID, userCart.ID); err != nil {
					return err
				}
				continue
			}

			// Same product in both carts: sum the quantities, never overwrite.
			product, err := s.Products().GetByID(ctx, sessionItem.ProductID)
			if err != nil {
				return err
			}
			userItem.Quantity += sessionItem.Quantity
			userItem.Recalculate(product.CurrentPrice)
			if err := s.Carts().UpdateItem(ctx, userItem); err != nil {
				return err
			}
			if err := s.Carts().DeleteItem(ctx, sessionItem.ID); err != nil {
				return err
			}
		}

		return s.Carts().Delete(ctx, sessionCart.ID)
	})
	if err != nil {
		return nil, err
	}

	uc.log.WithContext(ctx).Info("carts merged",
		zap.Uint("user_id", input.UserID),
		zap.String("session_key", input.SessionKey),
	)

	return uc.reload(ctx, ForUser(input.UserID))
}

func (uc *CartUseCase) reload(ctx context.Context, identity Identity) (*CartOutput, error) {
	cart, err := getCart(ctx, uc.store, identity)
	if err != nil {
		return nil, err
	}
	return &CartOutput{Cart: cart}, nil
}

func getCart(ctx context.Context, s ports.Store, identity Identity) (*domain.Cart, error) {
	if identity.Anonymous() {
		return s.Carts().GetBySession(ctx, identity.SessionKey)
	}
	return s.Carts().GetByUser(ctx, identity.UserID)
}

func getOrCreateCart(ctx context.Context, s ports.Store, identity Identity) (*domain.Cart, error) {
	cart, err := getCart(ctx, s, identity)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, errors.CodeNotFound) {
		return nil, err
	}

	cart = &domain.Cart{SessionKey: identity.SessionKey}
	if !identity.Anonymous() {
		userID := identity.UserID
		cart.UserID = &userID
	}
	if err := s.Carts().Create(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}
