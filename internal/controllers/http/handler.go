package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"shophub-order-service/internal/domain"
	"shophub-order-service/internal/infra/midtrans"
	"shophub-order-service/internal/services"
)

type Handler struct {
	checkout *services.CheckoutService
	payments *services.PaymentService
	orders   *services.OrderService
	rdb      *redis.Client
}

func NewHandler(checkout *services.CheckoutService, payments *services.PaymentService, orders *services.OrderService, rdb *redis.Client) *Handler {
	return &Handler{checkout: checkout, payments: payments, orders: orders, rdb: rdb}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/orders", h.CreateOrder)
	r.GET("/orders", h.ListOrders)
	r.GET("/orders/:orderId", h.GetOrder)
	r.PUT("/orders/:orderId/status", h.UpdateOrderStatus)

	r.GET("/supplier/orders", h.ListSupplierOrders)

	r.POST("/payments/:orderId/token", h.CreatePaymentSession)
	r.GET("/payments/:orderId/status", h.CheckPaymentStatus)
	r.POST("/payments/:orderId/cancel", h.CancelOrder)

	// Gateway-facing callback, no identity headers.
	r.POST("/payments/notification", h.PaymentNotification)
}

// userID reads the identity supplied by the upstream auth layer. The core
// trusts it as given and performs no authentication of its own.
func userID(c *gin.Context) (string, bool) {
	id := c.GetHeader("X-User-Id")
	if id == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user identity"})
		return "", false
	}
	return id, true
}

func (h *Handler) CreateOrder(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	selections := make([]services.CheckoutItem, 0, len(req.Items))
	for _, it := range req.Items {
		selections = append(selections, services.CheckoutItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Size:      it.Size,
		})
	}

	order, err := h.checkout.CreateOrder(c.Request.Context(), uid, selections, req.TotalPrice)
	if err != nil {
		writeError(c, err)
		return
	}

	h.invalidateOrderCache(uid)

	c.JSON(http.StatusCreated, order)
}

func (h *Handler) ListOrders(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	cacheKey := "orders:user:" + uid
	if h.rdb != nil {
		if b, err := h.rdb.Get(c.Request.Context(), cacheKey).Result(); err == nil {
			var orders []domain.Order
			if json.Unmarshal([]byte(b), &orders) == nil {
				c.JSON(http.StatusOK, orders)
				return
			}
		}
	}

	orders, err := h.orders.ListUserOrders(c.Request.Context(), uid)
	if err != nil {
		writeError(c, err)
		return
	}

	if h.rdb != nil {
		if data, err := json.Marshal(orders); err == nil {
			h.rdb.Set(c.Request.Context(), cacheKey, data, 10*time.Second)
		}
	}

	c.JSON(http.StatusOK, orders)
}

func (h *Handler) GetOrder(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	order, err := h.orders.GetOrder(c.Request.Context(), uid, c.Param("orderId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.orders.UpdateStatus(c.Request.Context(), uid, c.Param("orderId"), req.Status)
	if err != nil {
		writeError(c, err)
		return
	}

	h.invalidateOrderCache(uid)

	c.JSON(http.StatusOK, order)
}

func (h *Handler) ListSupplierOrders(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	orders, err := h.orders.ListSupplierOrders(c.Request.Context(), uid, c.Query("status"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) CreatePaymentSession(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	customer := customerFromHeaders(c)
	session, err := h.payments.CreateSession(c.Request.Context(), uid, c.Param("orderId"), customer)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *Handler) CheckPaymentStatus(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	result, err := h.payments.CheckStatus(c.Request.Context(), uid, c.Param("orderId"))
	if err != nil {
		writeError(c, err)
		return
	}

	if result.StatusChanged {
		h.invalidateOrderCache(uid)
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) CancelOrder(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	order, err := h.payments.CancelOrder(c.Request.Context(), uid, c.Param("orderId"))
	if err != nil {
		writeError(c, err)
		return
	}

	h.invalidateOrderCache(uid)

	c.JSON(http.StatusOK, gin.H{
		"message":  "order cancelled",
		"order_id": order.ID,
		"status":   order.Status,
	})
}

// PaymentNotification is the webhook the gateway retries until it sees 2xx.
// Replays and stale statuses must therefore answer 200, not error.
func (h *Handler) PaymentNotification(c *gin.Context) {
	var n domain.PaymentNotification
	if err := c.ShouldBindJSON(&n); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if n.OrderID == "" || n.TransactionStatus == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing order_id or transaction_status"})
		return
	}

	err := h.payments.HandleNotification(c.Request.Context(), &n)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"status": "OK", "order_id": n.OrderID})
	case errors.Is(err, domain.ErrTerminalOrderImmutable), isInvalidTransition(err):
		// The order has already converged elsewhere; acknowledge so the
		// gateway stops retrying.
		logrus.WithField("order_id", n.OrderID).WithError(err).Warn("notification ignored")
		c.JSON(http.StatusOK, gin.H{"status": "ignored", "order_id": n.OrderID})
	case errors.Is(err, domain.ErrUnmappedExternalStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
	default:
		logrus.WithField("order_id", n.OrderID).WithError(err).Error("notification processing failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func (h *Handler) invalidateOrderCache(uid string) {
	if h.rdb != nil {
		h.rdb.Del(context.Background(), "orders:user:"+uid)
	}
}

func customerFromHeaders(c *gin.Context) midtrans.Customer {
	name := c.GetHeader("X-User-Name")
	first, last := name, ""
	if i := strings.IndexByte(name, ' '); i > 0 {
		first, last = name[:i], name[i+1:]
	}
	if first == "" {
		first = "Customer"
	}
	return midtrans.Customer{
		FirstName: first,
		LastName:  last,
		Email:     c.GetHeader("X-User-Email"),
	}
}

func isInvalidTransition(err error) bool {
	var it *domain.InvalidTransitionError
	return errors.As(err, &it)
}

func writeError(c *gin.Context, err error) {
	var stockErr *domain.InsufficientStockError
	if errors.As(err, &stockErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      stockErr.Error(),
			"product_id": stockErr.ProductID,
			"available":  stockErr.Available,
			"requested":  stockErr.Requested,
		})
		return
	}

	switch {
	case errors.Is(err, domain.ErrOrderNotFound), errors.Is(err, domain.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrTerminalOrderImmutable),
		errors.Is(err, domain.ErrStatusConflict),
		isInvalidTransition(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrEmptySelection),
		errors.Is(err, domain.ErrMixedSupplierSelection),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrSizeRequired),
		errors.Is(err, domain.ErrInvalidSize),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrUnmappedExternalStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logrus.WithError(err).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
