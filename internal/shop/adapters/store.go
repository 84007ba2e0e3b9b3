package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"

	"go-shop/internal/shop/domain"
	"go-shop/internal/shop/ports"
)

// ProductModel is the GORM model for products (persistence layer)
type ProductModel struct {
	ID           uint    `gorm:"primaryKey"`
	SKU          string  `gorm:"size:12;uniqueIndex;not null"`
	Title        string  `gorm:"size:100;not null"`
	Price        float64 `gorm:"not null"`
	CurrentPrice float64 `gorm:"not null"`
	Quantity     int     `gorm:"not null;check:quantity >= 0"`
	PromotionID  *uint   `gorm:"index"`
	IsLimited    bool
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// PromotionModel is the GORM model for promotions
type PromotionModel struct {
	ID           uint    `gorm:"primaryKey"`
	Title        string  `gorm:"size:100;not null"`
	Description  string  `gorm:"type:text"`
	DiscountSize float64 `gorm:"not null"`
	StartDate    time.Time
	EndDate      time.Time
	IsActive     bool
}

func (PromotionModel) TableName() string {
	return "promotions"
}

// CartModel is the GORM model for carts
type CartModel struct {
	ID         uint            `gorm:"primaryKey"`
	UserID     *uint           `gorm:"uniqueIndex"`
	SessionKey string          `gorm:"size:150;index"`
	Items      []CartItemModel `gorm:"foreignKey:CartID"`
}

func (CartModel) TableName() string {
	return "carts"
}

// CartItemModel is the GORM model for cart line items
type CartItemModel struct {
	ID        uint    `gorm:"primaryKey"`
	CartID    uint    `gorm:"not null;uniqueIndex:idx_cart_product"`
	ProductID uint    `gorm:"not null;uniqueIndex:idx_cart_product"`
	Quantity  int     `gorm:"not null"`
	Amount    float64 `gorm:"not null"`
}

func (CartItemModel) TableName() string {
	return "cart_items"
}

// OrderModel is the GORM model for orders
type OrderModel struct {
	ID                  uint      `gorm:"primaryKey"`
	UserID              uint      `gorm:"index;not null"`
	CreatedAt           time.Time `gorm:"autoCreateTime;index"`
	DeliveryTypeID      uint      `gorm:"not null"`
	City                string    `gorm:"size:100;not null"`
	Address             string    `gorm:"type:text;not null"`
	PaymentMethodID     uint      `gorm:"not null"`
	StatusID            uint      `gorm:"not null;default:1"`
	PaymentError        string    `gorm:"size:50"`
	PaymentErrorMessage string    `gorm:"size:200"`
	OrderAmount         float64   `gorm:"not null"`
	Items               []OrderItemModel `gorm:"foreignKey:OrderID"`
}

func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel is the GORM model for order line items. Price is written at
// order creation and never updated.
type OrderItemModel struct {
	ID        uint    `gorm:"primaryKey"`
	OrderID   uint    `gorm:"index;not null"`
	ProductID uint    `gorm:"index;not null"`
	Price     float64 `gorm:"not null"`
	Quantity  int     `gorm:"not null"`
	Amount    float64 `gorm:"not null"`
}

func (OrderItemModel) TableName() string {
	return "order_items"
}

// DeliveryTypeModel is the GORM model for delivery types
type DeliveryTypeModel struct {
	ID                            uint   `gorm:"primaryKey"`
	Title                         string `gorm:"size:30;not null"`
	FreeDelivery                  bool
	PurchaseAmountForFreeDelivery float64
	DeliveryCost                  float64 `gorm:"not null"`
}

func (DeliveryTypeModel) TableName() string {
	return "delivery_types"
}

// PaymentMethodModel is the GORM model for payment methods
type PaymentMethodModel struct {
	ID    uint   `gorm:"primaryKey"`
	Title string `gorm:"size:30;not null"`
}

func (PaymentMethodModel) TableName() string {
	return "payment_methods"
}

// SettingsModel is the GORM model for the site settings row
type SettingsModel struct {
	ID          uint   `gorm:"primaryKey"`
	StoreTitle  string `gorm:"size:50"`
	Currency    string `gorm:"size:3"`
	ServerEmail string `gorm:"size:200"`
	EmailHost   string `gorm:"size:200"`
	EmailPort   int
	EmailUseTLS bool
}

func (SettingsModel) TableName() string {
	return "settings"
}

// GormStore implements ports.Store on PostgreSQL via GORM. A store returned
// from WithinTx shares one transaction across all repositories.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Migrate runs auto-migration for all models
func (s *GormStore) Migrate() error {
	return s.db.AutoMigrate(
		&PromotionModel{},
		&ProductModel{},
		&CartModel{},
		&CartItemModel{},
		&DeliveryTypeModel{},
		&PaymentMethodModel{},
		&OrderModel{},
		&OrderItemModel{},
		&SettingsModel{},
	)
}

// Seed creates the reference rows the workflow depends on when the tables are
// empty: the two payment methods and a default pair of delivery types.
func (s *GormStore) Seed(ctx context.Context) error {
	db := s.db.WithContext(ctx)

	methods := []PaymentMethodModel{
		{ID: domain.PaymentMethodOwnAccount, Title: "own account"},
		{ID: domain.PaymentMethodSomeoneAccount, Title: "someone's account"},
	}
	for i := range methods {
		m := methods[i]
		if err := db.Where(PaymentMethodModel{ID: m.ID}).FirstOrCreate(&m).Error; err != nil {
			return err
		}
	}

	var count int64
	if err := db.Model(&DeliveryTypeModel{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		types := []DeliveryTypeModel{
			{Title: "regular", FreeDelivery: true, PurchaseAmountForFreeDelivery: 2000, DeliveryCost: 200},
			{Title: "express", FreeDelivery: false, DeliveryCost: 500},
		}
		if err := db.Create(&types).Error; err != nil {
			return err
		}
	}

	return nil
}

// WithinTx runs fn against a store bound to a single transaction
func (s *GormStore) WithinTx(ctx context.Context, fn func(ports.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

// Products returns the product repository
func (s *GormStore) Products() ports.ProductRepository {
	return &productRepository{db: s.db}
}

// Carts returns the cart repository
func (s *GormStore) Carts() ports.CartRepository {
	return &cartRepository{db: s.db}
}

// Orders returns the order repository
func (s *GormStore) Orders() ports.OrderRepository {
	return &orderRepository{db: s.db}
}

// Promotions returns the promotion repository
func (s *GormStore) Promotions() ports.PromotionRepository {
	return &promotionRepository{db: s.db}
}

// Settings returns the settings repository
func (s *GormStore) Settings() ports.SettingsRepository {
	return &settingsRepository{db: s.db}
}
