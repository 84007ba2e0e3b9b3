package infrastructure

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"go-shop/internal/shop/application"
	"go-shop/internal/shop/domain"
	"go-shop/pkg/errors"
	"go-shop/pkg/middleware"
)

// OrderItemResponse is an order line in order responses
type OrderItemResponse struct {
	ProductID uint    `json:"product_id"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Amount    float64 `json:"amount"`
}

// OrderResponse is the response body for order reads
type OrderResponse struct {
	ID                  uint                `json:"id"`
	CreatedAt           time.Time           `json:"created_at"`
	StatusID            int                 `json:"status_id"`
	Status              string              `json:"status"`
	City                string              `json:"city"`
	Address             string              `json:"address"`
	DeliveryTypeID      uint                `json:"delivery_type_id"`
	PaymentMethodID     uint                `json:"payment_method_id"`
	OrderAmount         float64             `json:"order_amount"`
	PaymentError        string              `json:"payment_error,omitempty"`
	PaymentErrorMessage string              `json:"payment_error_message,omitempty"`
	Items               []OrderItemResponse `json:"items"`
}

func orderResponse(order *domain.Order) OrderResponse {
	resp := OrderResponse{
		ID:                  order.ID,
		CreatedAt:           order.CreatedAt,
		StatusID:            int(order.Status),
		Status:              order.Status.String(),
		City:                order.City,
		Address:             order.Address,
		DeliveryTypeID:      order.DeliveryTypeID,
		PaymentMethodID:     order.PaymentMethodID,
		OrderAmount:         order.OrderAmount,
		PaymentError:        order.PaymentError,
		PaymentErrorMessage: order.PaymentErrorMessage,
		Items:               make([]OrderItemResponse, len(order.Items)),
	}
	for i, item := range order.Items {
		resp.Items[i] = OrderItemResponse{
			ProductID: item.ProductID,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Amount:    item.Amount,
		}
	}
	return resp
}

// CreateOrderRequest is the request body for creating an order
type CreateOrderRequest struct {
	DeliveryTypeID  uint   `json:"delivery_type_id" binding:"required"`
	PaymentMethodID uint   `json:"payment_method_id" binding:"required"`
	City            string `json:"city" binding:"required"`
	Address         string `json:"address" binding:"required"`
}

// CreateOrder handles POST /orders
func (h *HTTPHandler) CreateOrder(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewValidation("invalid request body", err.Error()))
		return
	}

	output, err := h.orders.CreateOrder(c.Request.Context(), application.CreateOrderInput{
		UserID:          userID,
		DeliveryTypeID:  req.DeliveryTypeID,
		City:            req.City,
		Address:         req.Address,
		PaymentMethodID: req.PaymentMethodID,
	})
	if err != nil {
		c.Error(err)
		return
	}

	// Paying from someone else's account lands on a page where the payer
	// enters an arbitrary account number instead of their own card.
	paymentPage := fmt.Sprintf("/payment/%d", output.Order.ID)
	if output.PaymentMethod.ID != domain.PaymentMethodOwnAccount {
		paymentPage = fmt.Sprintf("/payment-someone/%d", output.Order.ID)
	}

	c.JSON(http.StatusCreated, gin.H{
		"data":         orderResponse(output.Order),
		"payment_page": paymentPage,
		"trace_id":     c.GetString(middleware.TraceIDKey),
	})
}

// ListOrders handles GET /orders
func (h *HTTPHandler) ListOrders(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	output, err := h.orders.ListOrders(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	responses := make([]OrderResponse, len(output.Orders))
	for i, order := range output.Orders {
		responses[i] = orderResponse(order)
	}
	c.JSON(http.StatusOK, gin.H{
		"data":     responses,
		"trace_id": c.GetString(middleware.TraceIDKey),
	})
}

func orderIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.Error(errors.NewValidation("invalid order id", nil))
		return 0, false
	}
	return uint(id), true
}

// GetOrder handles GET /orders/:id
func (h *HTTPHandler) GetOrder(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	output, err := h.orders.GetOrder(c.Request.Context(), application.GetOrderInput{
		UserID:  userID,
		OrderID: orderID,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":     orderResponse(output.Order),
		"trace_id": c.GetString(middleware.TraceIDKey),
	})
}

// ProgressPaymentRequest is the request body for paying an order
type ProgressPaymentRequest struct {
	CardNumber string `json:"card_number" binding:"required"`
}

// ProgressPayment handles POST /orders/:id/payment
func (h *HTTPHandler) ProgressPayment(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	var req ProgressPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewValidation("invalid request body", err.Error()))
		return
	}

	// Ownership check before touching the payment path.
	if _, err := h.orders.GetOrder(c.Request.Context(), application.GetOrderInput{
		UserID:  userID,
		OrderID: orderID,
	}); err != nil {
		c.Error(err)
		return
	}

	output, err := h.orders.ProgressPayment(c.Request.Context(), application.ProgressPaymentInput{
		OrderID:    orderID,
		CardNumber: req.CardNumber,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":     orderResponse(output.Order),
		"paid":     output.Paid,
		"trace_id": c.GetString(middleware.TraceIDKey),
	})
}

// CancelOrdersRequest is the request body for the operator cancel action
type CancelOrdersRequest struct {
	OrderIDs []uint `json:"order_ids" binding:"required,min=1"`
}

// CancelOrders handles POST /admin/orders/cancel
func (h *HTTPHandler) CancelOrders(c *gin.Context) {
	var req CancelOrdersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewValidation("invalid request body", err.Error()))
		return
	}

	output, err := h.orders.CancelOrders(c.Request.Context(), application.CancelOrdersInput{
		OrderIDs: req.OrderIDs,
	})
	if err != nil {
		c.Error(err)
		return
	}

	responses := make([]OrderResponse, len(output.Canceled))
	for i, order := range output.Canceled {
		responses[i] = orderResponse(order)
	}
	c.JSON(http.StatusOK, gin.H{
		"data":     responses,
		"trace_id": c.GetString(middleware.TraceIDKey),
	})
}

// UpdateOrdersStatusRequest is the request body for the operator status update
type UpdateOrdersStatusRequest struct {
	OrderIDs []uint `json:"order_ids" binding:"required,min=1"`
	StatusID int    `json:"status_id" binding:"required"`
}

// UpdateOrdersStatus handles POST /admin/orders/status
func (h *HTTPHandler) UpdateOrdersStatus(c *gin.Context) {
	var req UpdateOrdersStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewValidation("invalid request body", err.Error()))
		return
	}

	err := h.orders.UpdateOrdersStatus(c.Request.Context(), application.UpdateOrdersStatusInput{
		OrderIDs: req.OrderIDs,
		Status:   domain.OrderStatus(req.StatusID),
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}
