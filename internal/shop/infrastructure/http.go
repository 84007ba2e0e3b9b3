package infrastructure

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"go-shop/internal/shop/application"
	"go-shop/internal/shop/domain"
	"go-shop/pkg/errors"
	"go-shop/pkg/middleware"
)

// HTTPHandler handles HTTP requests for the storefront
type HTTPHandler struct {
	carts    *application.CartUseCase
	orders   *application.OrderUseCase
	catalog  *application.CatalogUseCase
	settings *application.SiteSettings
}

// NewHTTPHandler creates a new HTTP handler
func NewHTTPHandler(
	carts *application.CartUseCase,
	orders *application.OrderUseCase,
	catalog *application.CatalogUseCase,
	settings *application.SiteSettings,
) *HTTPHandler {
	return &HTTPHandler{
		carts:    carts,
		orders:   orders,
		catalog:  catalog,
		settings: settings,
	}
}

// RegisterRoutes registers the storefront routes
func (h *HTTPHandler) RegisterRoutes(r *gin.RouterGroup) {
	cart := r.Group("/cart")
	{
		cart.GET("", h.ViewCart)
		cart.POST("/items", h.AddItem)
		cart.PATCH("/items/:productID", h.SetItemQuantity)
		cart.POST("/items/:productID/increment", h.IncrementItem)
		cart.POST("/items/:productID/decrement", h.DecrementItem)
		cart.DELETE("/items/:productID", h.RemoveItem)
		cart.POST("/merge", h.MergeCarts)
	}

	orders := r.Group("/orders")
	{
		orders.POST("", h.CreateOrder)
		orders.GET("", h.ListOrders)
		orders.GET("/:id", h.GetOrder)
		orders.POST("/:id/payment", h.ProgressPayment)
	}

	admin := r.Group("/admin/orders")
	{
		admin.POST("/cancel", h.CancelOrders)
		admin.POST("/status", h.UpdateOrdersStatus)
	}

	r.GET("/products/:id", h.GetProduct)
	r.POST("/settings/reload", h.ReloadSettings)
}

// identity resolves the cart identity set by the identity middleware.
func identity(c *gin.Context) application.Identity {
	if userID, ok := c.Get(middleware.UserIDKey); ok {
		if id, ok := userID.(uint); ok && id > 0 {
			return application.ForUser(id)
		}
	}
	return application.ForSession(c.GetString(middleware.SessionKeyKey))
}

func requireUser(c *gin.Context) (uint, bool) {
	id := identity(c)
	if id.Anonymous() {
		c.Error(errors.NewUnauthorized("authentication required"))
		return 0, false
	}
	return id.UserID, true
}

func productIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("productID"), 10, 32)
	if err != nil {
		c.Error(errors.NewValidation("invalid product id", nil))
		return 0, false
	}
	return uint(id), true
}

// CartItemResponse is a cart line in cart responses
type CartItemResponse struct {
	ProductID uint    `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Amount    float64 `json:"amount"`
}

// CartResponse is the response body for cart operations
type CartResponse struct {
	ID            uint               `json:"id"`
	Amount        float64            `json:"amount"`
	NumberOfItems int                `json:"number_of_items"`
	Currency      string             `json:"currency"`
	Items         []CartItemResponse `json:"items"`
}

func (h *HTTPHandler) cartResponse(cart *domain.Cart) CartResponse {
	resp := CartResponse{
		ID:            cart.ID,
		Amount:        cart.Amount(),
		NumberOfItems: cart.NumberOfItems(),
		Currency:      h.settings.Current().Currency,
		Items:         make([]CartItemResponse, len(cart.Items)),
	}
	for i, item := range cart.Items {
		resp.Items[i] = CartItemResponse{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Amount:    item.Amount,
		}
	}
	return resp
}

func (h *HTTPHandler) respondCart(c *gin.Context, status int, output *application.CartOutput) {
	c.JSON(status, gin.H{
		"data":     h.cartResponse(output.Cart),
		"trace_id": c.GetString(middleware.TraceIDKey),
	})
}

// ViewCart handles GET /cart
func (h *HTTPHandler) ViewCart(c *gin.Context) {
	output, err := h.carts.GetCart(c.Request.Context(), identity(c))
	if err != nil {
		c.Error(err)
		return
	}
	h.respondCart(c, http.StatusOK, output)
}

// AddItemRequest is the request body for adding a product to the cart
type AddItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,gt=0"`
}

// AddItem handles POST /cart/items
func (h *HTTPHandler) AddItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewValidation("invalid request body", err.Error()))
		return
	}

	output, err := h.carts.AddItem(c.Request.Context(), application.AddItemInput{
		Identity:  identity(c),
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		c.Error(err)
		return
	}
	h.respondCart(c, http.StatusOK, output)
}

// SetItemQuantityRequest is the request body for setting a line quantity
type SetItemQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required,gte=0"`
}

// SetItemQuantity handles PATCH /cart/items/:productID
func (h *HTTPHandler) SetItemQuantity(c *gin.Context) {
	productID, ok := productIDParam(c)
	if !ok {
		return
	}

	var req SetItemQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewValidation("invalid request body", err.Error()))
		return
	}

	output, err := h.carts.SetItemQuantity(c.Request.Context(), application.SetItemQuantityInput{
		Identity:  identity(c),
		ProductID: productID,
		Quantity:  *req.Quantity,
	})
	if err != nil {
		c.Error(err)
		return
	}
	h.respondCart(c, http.StatusOK, output)
}

// IncrementItem handles POST /cart/items/:productID/increment
func (h *HTTPHandler) IncrementItem(c *gin.Context) {
	productID, ok := productIDParam(c)
	if !ok {
		return
	}

	output, err := h.carts.IncrementItem(c.Request.Context(), application.ItemInput{
		Identity:  identity(c),
		ProductID: productID,
	})
	if err != nil {
		c.Error(err)
		return
	}
	h.respondCart(c, http.StatusOK, output)
}

// DecrementItem handles POST /cart/items/:productID/decrement
func (h *HTTPHandler) DecrementItem(c *gin.Context) {
	productID, ok := productIDParam(c)
	if !ok {
		return
	}

	output, err := h.carts.DecrementItem(c.Request.Context(), application.ItemInput{
		Identity:  identity(c),
		ProductID: productID,
	})
	if err != nil {
		c.Error(err)
		return
	}
	h.respondCart(c, http.StatusOK, output)
}

// RemoveItem handles DELETE /cart/items/:productID
func (h *HTTPHandler) RemoveItem(c *gin.Context) {
	productID, ok := productIDParam(c)
	if !ok {
		return
	}

	output, err := h.carts.RemoveItem(c.Request.Context(), application.ItemInput{
		Identity:  identity(c),
		ProductID: productID,
	})
	if err != nil {
		c.Error(err)
		return
	}
	h.respondCart(c, http.StatusOK, output)
}

// MergeCartsRequest is the request body for the login-time cart merge
type MergeCartsRequest struct {
	SessionKey string `json:"session_key" binding:"required"`
}

// MergeCarts handles POST /cart/merge, called by the identity provider right
// after a successful login.
func (h *HTTPHandler) MergeCarts(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req MergeCartsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewValidation("invalid request body", err.Error()))
		return
	}

	output, err := h.carts.MergeCarts(c.Request.Context(), application.MergeCartsInput{
		SessionKey: req.SessionKey,
		UserID:     userID,
	})
	if err != nil {
		c.Error(err)
		return
	}
	h.respondCart(c, http.StatusOK, output)
}

// ProductResponse is the response body for product reads
type ProductResponse struct {
	ID           uint    `json:"id"`
	SKU          string  `json:"sku"`
	Title        string  `json:"title"`
	Price        float64 `json:"price"`
	CurrentPrice float64 `json:"current_price"`
	Quantity     int     `json:"quantity"`
	IsLimited    bool    `json:"is_limited"`
}

// GetProduct handles GET /products/:id
func (h *HTTPHandler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.Error(errors.NewValidation("invalid product id", nil))
		return
	}

	output, err := h.catalog.GetProduct(c.Request.Context(), uint(id))
	if err != nil {
		c.Error(err)
		return
	}

	product := output.Product
	c.JSON(http.StatusOK, gin.H{
		"data": ProductResponse{
			ID:           product.ID,
			SKU:          product.SKU,
			Title:        product.Title,
			Price:        product.Price,
			CurrentPrice: product.CurrentPrice,
			Quantity:     product.Quantity,
			IsLimited:    product.IsLimited,
		},
		"trace_id": c.GetString(middleware.TraceIDKey),
	})
}

// ReloadSettings handles POST /settings/reload after an operator change
func (h *HTTPHandler) ReloadSettings(c *gin.Context) {
	if err := h.settings.Reload(c.Request.Context()); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "reloaded"})
}
