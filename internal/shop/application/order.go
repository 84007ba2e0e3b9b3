package application

import (
	"context"
	stderrors "errors"
	"sort"
	"strconv"

	"go-shop/internal/shop/domain"
	"go-shop/internal/shop/ports"
	"go-shop/pkg/errors"
	"go-shop/pkg/logger"

	"go.uber.org/zap"
)

// OrderUseCase handles the order lifecycle: creation from a cart, the payment
// transition and the cancellation transition.
type OrderUseCase struct {
	store      ports.Store
	publisher  ports.EventPublisher
	authorizer ports.PaymentAuthorizer
	cache      ports.ProductCache
	log        *logger.Logger
}

// NewOrderUseCase creates a new order use case. publisher and cache may be
// nil; the workflow degrades to no events and no cache invalidation.
func NewOrderUseCase(
	store ports.Store,
	publisher ports.EventPublisher,
	authorizer ports.PaymentAuthorizer,
	cache ports.ProductCache,
	log *logger.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		store:      store,
		publisher:  publisher,
		authorizer: authorizer,
		cache:      cache,
		log:        log,
	}
}

// CreateOrderInput represents the input for creating an order from a cart
type CreateOrderInput struct {
	UserID          uint
	DeliveryTypeID  uint
	City            string
	Address         string
	PaymentMethodID uint
}

// CreateOrderOutput represents the output of creating an order
type CreateOrderOutput struct {
	Order         *domain.Order
	PaymentMethod *domain.PaymentMethod
}

// CreateOrder snapshots the user's cart into an unpaid order in a single
// transaction: every cart line becomes an order line with the price frozen
// at the product's current price, the order amount is the sum of those
// frozen lines plus the delivery fee, and the cart is drained. Draining
// inside the same transaction is what keeps a duplicate submission from
// re-reading already-consumed lines.
func (uc *OrderUseCase) CreateOrder(ctx context.Context, input CreateOrderInput) (*CreateOrderOutput, error) {
	var (
		order  *domain.Order
		method *domain.PaymentMethod
	)

	err := uc.store.WithinTx(ctx, func(s ports.Store) error {
		cart, err := s.Carts().GetByUser(ctx, input.UserID)
		if errors.Is(err, errors.CodeNotFound) {
			return domain.ErrEmptyCart
		}
		if err != nil {
			return err
		}
		if cart.IsEmpty() {
			return domain.ErrEmptyCart
		}

		deliveryType, err := s.Orders().GetDeliveryType(ctx, input.DeliveryTypeID)
		if err != nil {
			return err
		}
		method, err = s.Orders().GetPaymentMethod(ctx, input.PaymentMethodID)
		if err != nil {
			return err
		}

		// Price the order from the products' current prices, not the stored
		// line amounts, so the total always agrees with the frozen lines.
		products := make([]*domain.Product, len(cart.Items))
		var subtotal float64
		for i := range cart.Items {
			product, err := s.Products().GetByID(ctx, cart.Items[i].ProductID)
			if err != nil {
				return err
			}
			products[i] = product
			subtotal += float64(cart.Items[i].Quantity) * product.CurrentPrice
		}

		order, err = domain.NewOrder(
			input.UserID,
			deliveryType.ID,
			method.ID,
			input.City,
			input.Address,
			subtotal+deliveryType.Fee(subtotal),
		)
		if err != nil {
			return err
		}
		if err := s.Orders().Create(ctx, order); err != nil {
			return err
		}

		for i := range cart.Items {
			cartItem := &cart.Items[i]
			orderItem := domain.NewOrderItem(order.ID, products[i].ID, products[i].CurrentPrice, cartItem.Quantity)
			if err := s.Orders().CreateItem(ctx, &orderItem); err != nil {
				return err
			}
			order.Items = append(order.Items, orderItem)

			if err := s.Carts().DeleteItem(ctx, cartItem.ID); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if uc.publisher != nil {
		if err := uc.publisher.PublishOrderCreated(ctx, order); err != nil {
			uc.log.WithContext(ctx).Error("failed to publish order created event",
				zap.Error(err),
				zap.Uint("order_id", order.ID),
			)
		}
	}

	uc.log.WithContext(ctx).Info("order created",
		zap.Uint("order_id", order.ID),
		zap.Uint("user_id", order.UserID),
		zap.Float64("order_amount", order.OrderAmount),
		zap.Int("items", len(order.Items)),
	)

	return &CreateOrderOutput{Order: order, PaymentMethod: method}, nil
}

// GetOrderInput represents the input for getting an order
type GetOrderInput struct {
	UserID  uint
	OrderID uint
}

// GetOrderOutput represents the output of getting an order
type GetOrderOutput struct {
	Order *domain.Order
}

// GetOrder retrieves one of the user's orders with its line items.
func (uc *OrderUseCase) GetOrder(ctx context.Context, input GetOrderInput) (*GetOrderOutput, error) {
	order, err := uc.store.Orders().GetByID(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != input.UserID {
		return nil, errors.NewForbidden("order belongs to another user")
	}
	return &GetOrderOutput{Order: order}, nil
}

// ListOrdersOutput represents the output of listing a user's orders
type ListOrdersOutput struct {
	Orders []*domain.Order
}

// ListOrders retrieves the user's order history, newest first.
func (uc *OrderUseCase) ListOrders(ctx context.Context, userID uint) (*ListOrdersOutput, error) {
	orders, err := uc.store.Orders().ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &ListOrdersOutput{Orders: orders}, nil
}

// ProgressPaymentInput represents the input for the Unpaid -> Paid transition
type ProgressPaymentInput struct {
	OrderID    uint
	CardNumber string
}

// ProgressPaymentOutput represents the output of a payment attempt. A decline
// or a stock shortage is reported through the order's payment-error fields,
// not as an error; the order stays Unpaid and retryable.
type ProgressPaymentOutput struct {
	Order *domain.Order
	Paid  bool
}

// ProgressPayment runs the Unpaid -> Paid transition. After the card
// authorization predicate approves, every line item's product row is locked
// and every decrement is validated before any is applied, all inside one
// transaction: either the whole order's inventory is reserved and the order
// becomes Paid, or nothing is decremented and the order records a stock
// error.
func (uc *OrderUseCase) ProgressPayment(ctx context.Context, input ProgressPaymentInput) (*ProgressPaymentOutput, error) {
	order, err := uc.store.Orders().GetByID(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	if order.Status != domain.StatusUnpaid {
		return nil, domain.NewOrderNotPayable(order.ID, order.Status)
	}

	if err := uc.authorizer.Authorize(ctx, input.CardNumber); err != nil {
		if !stderrors.Is(err, domain.ErrPaymentDeclined) {
			return nil, errors.NewInternal("payment authorization failed", err)
		}
		return uc.recordPaymentFailure(ctx, order.ID, domain.PaymentDeclinedMessage)
	}

	var touched []uint
	err = uc.store.WithinTx(ctx, func(s ports.Store) error {
		// Re-read under lock so two concurrent attempts on the same order
		// serialize and the loser sees a non-Unpaid status.
		locked, err := s.Orders().GetForUpdate(ctx, input.OrderID)
		if err != nil {
			return err
		}
		if locked.Status != domain.StatusUnpaid {
			return domain.NewOrderNotPayable(locked.ID, locked.Status)
		}

		requested := requestedQuantities(locked.Items)
		ids := sortedProductIDs(requested)

		// Lock in ascending product-ID order and validate every decrement
		// before applying any, so a shortfall leaves no partial writes.
		products := make(map[uint]*domain.Product, len(ids))
		for _, id := range ids {
			product, err := s.Products().GetForUpdate(ctx, id)
			if err != nil {
				return err
			}
			if !product.InStock(requested[id]) {
				return &domain.StockShortage{
					ProductID: product.ID,
					Title:     product.Title,
					Requested: requested[id],
					Available: product.Quantity,
				}
			}
			products[id] = product
		}
		for _, id := range ids {
			if err := s.Products().UpdateQuantity(ctx, id, products[id].Quantity-requested[id]); err != nil {
				return err
			}
		}

		touched = ids
		return s.Orders().UpdatePaymentState(ctx, locked.ID, domain.StatusPaid, "", "")
	})

	var shortage *domain.StockShortage
	if stderrors.As(err, &shortage) {
		// The transaction rolled back; persist the stock error on the order.
		return uc.recordPaymentFailure(ctx, order.ID, domain.OutOfStockMessagePrefix+shortage.Title)
	}
	if err != nil {
		return nil, err
	}

	uc.invalidateProducts(ctx, touched)

	order, err = uc.store.Orders().GetByID(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}

	if uc.publisher != nil {
		if err := uc.publisher.PublishOrderPaid(ctx, order); err != nil {
			uc.log.WithContext(ctx).Error("failed to publish order paid event",
				zap.Error(err),
				zap.Uint("order_id", order.ID),
			)
		}
	}

	uc.log.WithContext(ctx).Info("order paid",
		zap.Uint("order_id", order.ID),
		zap.Float64("order_amount", order.OrderAmount),
	)

	return &ProgressPaymentOutput{Order: order, Paid: true}, nil
}

func (uc *OrderUseCase) recordPaymentFailure(ctx context.Context, orderID uint, message string) (*ProgressPaymentOutput, error) {
	err := uc.store.Orders().UpdatePaymentState(ctx, orderID, domain.StatusUnpaid, domain.PaymentErrorCode, message)
	if err != nil {
		return nil, err
	}

	order, err := uc.store.Orders().GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	uc.log.WithContext(ctx).Info("payment failed",
		zap.Uint("order_id", orderID),
		zap.String("reason", message),
	)

	return &ProgressPaymentOutput{Order: order, Paid: false}, nil
}

// CancelOrdersInput represents the input for the operator cancel action
type CancelOrdersInput struct {
	OrderIDs []uint
}

// CancelOrdersOutput represents the output of the cancel action
type CancelOrdersOutput struct {
	Canceled []*domain.Order
}

// CancelOrders transitions a batch of orders to Canceled in one transaction.
// Orders past Unpaid get their line quantities restored to inventory;
// restoration fires only on the first transition into Canceled, so canceling
// twice never double-restores.
func (uc *OrderUseCase) CancelOrders(ctx context.Context, input CancelOrdersInput) (*CancelOrdersOutput, error) {
	var (
		canceled []*domain.Order
		touched  []uint
	)

	err := uc.store.WithinTx(ctx, func(s ports.Store) error {
		for _, orderID := range input.OrderIDs {
			order, err := s.Orders().GetForUpdate(ctx, orderID)
			if err != nil {
				return err
			}
			if order.Status == domain.StatusCanceled {
				continue
			}

			if order.HoldsInventory() {
				for i := range order.Items {
					item := &order.Items[i]
					product, err := s.Products().GetForUpdate(ctx, item.ProductID)
					if err != nil {
						return err
					}
					if err := s.Products().UpdateQuantity(ctx, product.ID, product.Quantity+item.Quantity); err != nil {
						return err
					}
					touched = append(touched, product.ID)
				}
			}

			if err := s.Orders().UpdateStatus(ctx, order.ID, domain.StatusCanceled); err != nil {
				return err
			}
			order.Status = domain.StatusCanceled
			canceled = append(canceled, order)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.invalidateProducts(ctx, touched)

	for _, order := range canceled {
		if uc.publisher != nil {
			if err := uc.publisher.PublishOrderCanceled(ctx, order); err != nil {
				uc.log.WithContext(ctx).Error("failed to publish order canceled event",
					zap.Error(err),
					zap.Uint("order_id", order.ID),
				)
			}
		}
		uc.log.WithContext(ctx).Info("order canceled", zap.Uint("order_id", order.ID))
	}

	return &CancelOrdersOutput{Canceled: canceled}, nil
}

// UpdateOrdersStatusInput represents the input for the operator status update
type UpdateOrdersStatusInput struct {
	OrderIDs []uint
	Status   domain.OrderStatus
}

// UpdateOrdersStatus applies an operator fulfillment-status update (agreed,
// assembled, sent, ...) to a batch of orders. Paid is only reachable through
// the payment transition and Canceled through CancelOrders; both are rejected
// here.
func (uc *OrderUseCase) UpdateOrdersStatus(ctx context.Context, input UpdateOrdersStatusInput) error {
	if !input.Status.Valid() {
		return errors.NewValidation("unknown order status "+strconv.Itoa(int(input.Status)), nil)
	}
	switch input.Status {
	case domain.StatusUnpaid, domain.StatusPaid, domain.StatusCanceled:
		return domain.NewStatusNotAssignable(input.Status)
	}

	return uc.store.WithinTx(ctx, func(s ports.Store) error {
		for _, orderID := range input.OrderIDs {
			if _, err := s.Orders().GetByID(ctx, orderID); err != nil {
				return err
			}
			if err := s.Orders().UpdateStatus(ctx, orderID, input.Status); err != nil {
				return err
			}
		}
		return nil
	})
}

func (uc *OrderUseCase) invalidateProducts(ctx context.Context, ids []uint) {
	if uc.cache == nil || len(ids) == 0 {
		return
	}
	if err := uc.cache.Invalidate(ctx, ids...); err != nil {
		uc.log.WithContext(ctx).Warn("failed to invalidate product cache", zap.Error(err))
	}
}

func requestedQuantities(items []domain.OrderItem) map[uint]int {
	requested := make(map[uint]int, len(items))
	for i := range items {
		requested[items[i].ProductID] += items[i].Quantity
	}
	return requested
}

func sortedProductIDs(requested map[uint]int) []uint {
	ids := make([]uint, 0, len(requested))
	for id := range requested {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
