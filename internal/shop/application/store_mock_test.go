package application

import (
	"context"
	"sort"

	"go-shop/internal/shop/domain"
	"go-shop/internal/shop/ports"
	"go-shop/pkg/errors"
)

// memStore is an in-memory implementation of ports.Store. WithinTx runs the
// function directly against the same maps; the use cases under test validate
// before writing, so no rollback simulation is needed.
type memStore struct {
	products       map[uint]*domain.Product
	carts          map[uint]*domain.Cart
	cartItems      map[uint]*domain.CartItem
	orders         map[uint]*domain.Order
	orderItems     map[uint]*domain.OrderItem
	promotions     map[uint]*domain.Promotion
	deliveryTypes  map[uint]*domain.DeliveryType
	paymentMethods map[uint]*domain.PaymentMethod
	settings       *domain.Settings
	nextID         uint
}

func newMemStore() *memStore {
	return &memStore{
		products:       make(map[uint]*domain.Product),
		carts:          make(map[uint]*domain.Cart),
		cartItems:      make(map[uint]*domain.CartItem),
		orders:         make(map[uint]*domain.Order),
		orderItems:     make(map[uint]*domain.OrderItem),
		promotions:     make(map[uint]*domain.Promotion),
		deliveryTypes:  make(map[uint]*domain.DeliveryType),
		paymentMethods: make(map[uint]*domain.PaymentMethod),
	}
}

func (m *memStore) id() uint {
	m.nextID++
	return m.nextID
}

func (m *memStore) WithinTx(ctx context.Context, fn func(ports.Store) error) error {
	return fn(m)
}

func (m *memStore) Products() ports.ProductRepository     { return memProducts{m} }
func (m *memStore) Carts() ports.CartRepository           { return memCarts{m} }
func (m *memStore) Orders() ports.OrderRepository         { return memOrders{m} }
func (m *memStore) Promotions() ports.PromotionRepository { return memPromotions{m} }
func (m *memStore) Settings() ports.SettingsRepository    { return memSettings{m} }

// Seed helpers

func (m *memStore) addProduct(title string, price float64, quantity int) *domain.Product {
	product := &domain.Product{
		ID:           m.id(),
		Title:        title,
		Price:        price,
		CurrentPrice: price,
		Quantity:     quantity,
	}
	m.products[product.ID] = product
	return product
}

func (m *memStore) addDeliveryType(dt domain.DeliveryType) *domain.DeliveryType {
	dt.ID = m.id()
	m.deliveryTypes[dt.ID] = &dt
	return &dt
}

func (m *memStore) addPaymentMethod(id uint, title string) *domain.PaymentMethod {
	method := &domain.PaymentMethod{ID: id, Title: title}
	m.paymentMethods[id] = method
	return method
}

func (m *memStore) addPromotion(p domain.Promotion) *domain.Promotion {
	p.ID = m.id()
	m.promotions[p.ID] = &p
	return &p
}

// memProducts

type memProducts struct{ s *memStore }

func (r memProducts) GetByID(ctx context.Context, id uint) (*domain.Product, error) {
	product, ok := r.s.products[id]
	if !ok {
		return nil, domain.NewProductNotFound(id)
	}
	copied := *product
	return &copied, nil
}

func (r memProducts) GetForUpdate(ctx context.Context, id uint) (*domain.Product, error) {
	return r.GetByID(ctx, id)
}

func (r memProducts) ListByPromotion(ctx context.Context, promotionID uint) ([]*domain.Product, error) {
	var result []*domain.Product
	for _, product := range r.s.products {
		if product.PromotionID != nil && *product.PromotionID == promotionID {
			copied := *product
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r memProducts) Save(ctx context.Context, product *domain.Product) error {
	stored, ok := r.s.products[product.ID]
	if !ok {
		return domain.NewProductNotFound(product.ID)
	}
	*stored = *product
	return nil
}

func (r memProducts) UpdateQuantity(ctx context.Context, id uint, quantity int) error {
	product, ok := r.s.products[id]
	if !ok {
		return domain.NewProductNotFound(id)
	}
	product.Quantity = quantity
	return nil
}

// memCarts

type memCarts struct{ s *memStore }

func (r memCarts) assemble(cart *domain.Cart) *domain.Cart {
	copied := *cart
	copied.Items = nil
	for _, item := range r.s.cartItems {
		if item.CartID == cart.ID {
			copied.Items = append(copied.Items, *item)
		}
	}
	sort.Slice(copied.Items, func(i, j int) bool { return copied.Items[i].ID < copied.Items[j].ID })
	return &copied
}

func (r memCarts) GetByUser(ctx context.Context, userID uint) (*domain.Cart, error) {
	for _, cart := range r.s.carts {
		if cart.UserID != nil && *cart.UserID == userID {
			return r.assemble(cart), nil
		}
	}
	return nil, domain.NewCartNotFound(userID)
}

func (r memCarts) GetBySession(ctx context.Context, sessionKey string) (*domain.Cart, error) {
	if sessionKey == "" {
		return nil, domain.NewCartNotFound(sessionKey)
	}
	for _, cart := range r.s.carts {
		if cart.UserID == nil && cart.SessionKey == sessionKey {
			return r.assemble(cart), nil
		}
	}
	return nil, domain.NewCartNotFound(sessionKey)
}

func (r memCarts) Create(ctx context.Context, cart *domain.Cart) error {
	cart.ID = r.s.id()
	stored := *cart
	stored.Items = nil
	r.s.carts[cart.ID] = &stored
	return nil
}

func (r memCarts) Delete(ctx context.Context, cartID uint) error {
	for id, item := range r.s.cartItems {
		if item.CartID == cartID {
			delete(r.s.cartItems, id)
		}
	}
	delete(r.s.carts, cartID)
	return nil
}

func (r memCarts) Reassign(ctx context.Context, cartID, userID uint) error {
	cart, ok := r.s.carts[cartID]
	if !ok {
		return domain.NewCartNotFound(cartID)
	}
	cart.UserID = &userID
	cart.SessionKey = ""
	return nil
}

func (r memCarts) GetItem(ctx context.Context, cartID, productID uint) (*domain.CartItem, error) {
	for _, item := range r.s.cartItems {
		if item.CartID == cartID && item.ProductID == productID {
			copied := *item
			return &copied, nil
		}
	}
	return nil, domain.NewCartItemNotFound(productID)
}

func (r memCarts) CreateItem(ctx context.Context, item *domain.CartItem) error {
	item.ID = r.s.id()
	stored := *item
	r.s.cartItems[item.ID] = &stored
	return nil
}

func (r memCarts) UpdateItem(ctx context.Context, item *domain.CartItem) error {
	stored, ok := r.s.cartItems[item.ID]
	if !ok {
		return domain.NewCartItemNotFound(item.ProductID)
	}
	*stored = *item
	return nil
}

func (r memCarts) DeleteItem(ctx context.Context, itemID uint) error {
	if _, ok := r.s.cartItems[itemID]; !ok {
		return errors.NewNotFound("cart item", itemID)
	}
	delete(r.s.cartItems, itemID)
	return nil
}

func (r memCarts) MoveItem(ctx context.Context, itemID, toCartID uint) error {
	item, ok := r.s.cartItems[itemID]
	if !ok {
		return domain.NewCartItemNotFound(itemID)
	}
	item.CartID = toCartID
	return nil
}

func (r memCarts) RepriceProduct(ctx context.Context, productID uint, unitPrice float64) error {
	for _, item := range r.s.cartItems {
		if item.ProductID == productID {
			item.Recalculate(unitPrice)
		}
	}
	return nil
}

// memOrders

type memOrders struct{ s *memStore }

func (r memOrders) assemble(order *domain.Order) *domain.Order {
	copied := *order
	copied.Items = nil
	for _, item := range r.s.orderItems {
		if item.OrderID == order.ID {
			copied.Items = append(copied.Items, *item)
		}
	}
	sort.Slice(copied.Items, func(i, j int) bool { return copied.Items[i].ID < copied.Items[j].ID })
	return &copied
}

func (r memOrders) Create(ctx context.Context, order *domain.Order) error {
	order.ID = r.s.id()
	stored := *order
	stored.Items = nil
	r.s.orders[order.ID] = &stored
	return nil
}

func (r memOrders) CreateItem(ctx context.Context, item *domain.OrderItem) error {
	item.ID = r.s.id()
	stored := *item
	r.s.orderItems[item.ID] = &stored
	return nil
}

func (r memOrders) GetByID(ctx context.Context, id uint) (*domain.Order, error) {
	order, ok := r.s.orders[id]
	if !ok {
		return nil, domain.NewOrderNotFound(id)
	}
	return r.assemble(order), nil
}

func (r memOrders) GetForUpdate(ctx context.Context, id uint) (*domain.Order, error) {
	return r.GetByID(ctx, id)
}

func (r memOrders) ListByUser(ctx context.Context, userID uint) ([]*domain.Order, error) {
	var result []*domain.Order
	for _, order := range r.s.orders {
		if order.UserID == userID {
			result = append(result, r.assemble(order))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

func (r memOrders) UpdateStatus(ctx context.Context, id uint, status domain.OrderStatus) error {
	order, ok := r.s.orders[id]
	if !ok {
		return domain.NewOrderNotFound(id)
	}
	order.Status = status
	return nil
}

func (r memOrders) UpdatePaymentState(ctx context.Context, id uint, status domain.OrderStatus, errCode, errMessage string) error {
	order, ok := r.s.orders[id]
	if !ok {
		return domain.NewOrderNotFound(id)
	}
	order.Status = status
	order.PaymentError = errCode
	order.PaymentErrorMessage = errMessage
	return nil
}

func (r memOrders) GetDeliveryType(ctx context.Context, id uint) (*domain.DeliveryType, error) {
	dt, ok := r.s.deliveryTypes[id]
	if !ok {
		return nil, domain.NewDeliveryTypeNotFound(id)
	}
	copied := *dt
	return &copied, nil
}

func (r memOrders) GetPaymentMethod(ctx context.Context, id uint) (*domain.PaymentMethod, error) {
	method, ok := r.s.paymentMethods[id]
	if !ok {
		return nil, domain.NewPaymentMethodNotFound(id)
	}
	copied := *method
	return &copied, nil
}

// memPromotions

type memPromotions struct{ s *memStore }

func (r memPromotions) List(ctx context.Context) ([]*domain.Promotion, error) {
	var result []*domain.Promotion
	for _, promotion := range r.s.promotions {
		copied := *promotion
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r memPromotions) Save(ctx context.Context, promotion *domain.Promotion) error {
	stored, ok := r.s.promotions[promotion.ID]
	if !ok {
		copied := *promotion
		r.s.promotions[promotion.ID] = &copied
		return nil
	}
	*stored = *promotion
	return nil
}

// memSettings

type memSettings struct{ s *memStore }

func (r memSettings) Get(ctx context.Context) (*domain.Settings, error) {
	if r.s.settings == nil {
		return nil, errors.NewNotFound("settings", "site")
	}
	copied := *r.s.settings
	return &copied, nil
}

// MockEventPublisher records published event names
type MockEventPublisher struct {
	events []string
}

func (m *MockEventPublisher) PublishOrderCreated(ctx context.Context, order *domain.Order) error {
	m.events = append(m.events, "order.created")
	return nil
}

func (m *MockEventPublisher) PublishOrderPaid(ctx context.Context, order *domain.Order) error {
	m.events = append(m.events, "order.paid")
	return nil
}

func (m *MockEventPublisher) PublishOrderCanceled(ctx context.Context, order *domain.Order) error {
	m.events = append(m.events, "order.canceled")
	return nil
}

// cardAuthorizer applies the card number predicate directly
type cardAuthorizer struct{}

func (cardAuthorizer) Authorize(ctx context.Context, cardNumber string) error {
	return domain.ValidateCardNumber(cardNumber)
}
