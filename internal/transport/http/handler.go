package rest

import (
	"net/http"
	"strconv"

	"github.com/Gunvolt24/shop_api/internal/domain"
	"github.com/Gunvolt24/shop_api/internal/ports"
	"github.com/Gunvolt24/shop_api/internal/usecase"
	"github.com/Gunvolt24/shop_api/pkg/ctxmeta"
	"github.com/Gunvolt24/shop_api/pkg/httpx"
	"github.com/gin-gonic/gin"
)

// Handler — HTTP-обработчики витрины.
type Handler struct {
	checkout *usecase.CheckoutService
	orders   ports.OrderReadService
	catalog  *usecase.CatalogService
	log      ports.Logger
}

// NewHandler — DI-конструктор.
func NewHandler(checkout *usecase.CheckoutService, orders ports.OrderReadService, catalog *usecase.CatalogService, log ports.Logger) *Handler {
	return &Handler{checkout: checkout, orders: orders, catalog: catalog, log: log}
}

// checkoutRequest — тело POST /orders/checkout.
// Присланная клиентом цена (если есть) игнорируется на уровне модели.
type checkoutRequest struct {
	Items           []domain.CartLine `json:"items"`
	PaymentMethodID string            `json:"payment_method_id"`
}

// checkoutResponse — контракт ответа checkout (совместим с фронтендом).
type checkoutResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	OrderID string `json:"order_id,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

// postCheckout — оформить заказ.
func (h *Handler) postCheckout(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := ctxmeta.UserIDFromContext(ctx)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	// Быстрые проверки формы запроса — до запуска оркестратора.
	if len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, checkoutResponse{Success: false, Message: "Cart cannot be empty.", Reason: string(domain.ReasonEmptyCart)})
		return
	}
	if req.PaymentMethodID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Payment method ID is required."})
		return
	}

	h.log.Infof(ctx, "checkout initiated by user=%s items=%d", userID, len(req.Items))

	result, err := h.checkout.Checkout(ctx, userID, req.Items, req.PaymentMethodID)
	if err != nil {
		h.log.Errorf(ctx, "checkout failed user=%s err=%v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	resp := checkoutResponse{
		Success: result.Success,
		Message: result.Message,
		OrderID: result.OrderID,
		Reason:  string(result.Reason),
	}
	if !result.Success {
		c.JSON(http.StatusBadRequest, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// listOrders — история заказов владельца (новые первыми).
func (h *Handler) listOrders(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := ctxmeta.UserIDFromContext(ctx)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	limit, offset := httpx.ParseLimitOffset(c, 20, 100)

	orders, err := h.orders.OrdersByOwner(ctx, userID, limit, offset)
	if err != nil {
		h.log.Errorf(ctx, "OrdersByOwner failed user=%s err=%v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, orders)
}

// getOrderByID — заказ по id; чужие заказы не раскрываем (404).
func (h *Handler) getOrderByID(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := ctxmeta.UserIDFromContext(ctx)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty id"})
		return
	}

	order, err := h.orders.GetOrder(ctx, id)
	if err != nil {
		h.log.Errorf(ctx, "GetOrder failed id=%s err=%v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if order == nil || order.OwnerID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}
	c.JSON(http.StatusOK, order)
}

// listProducts — список товаров; ?search= фильтрует по имени/описанию.
func (h *Handler) listProducts(c *gin.Context) {
	ctx := c.Request.Context()

	products, err := h.catalog.ListProducts(ctx, c.Query("search"))
	if err != nil {
		h.log.Errorf(ctx, "ListProducts failed err=%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if products == nil {
		products = []domain.Product{}
	}
	c.JSON(http.StatusOK, products)
}

// getProductByID — товар по id.
func (h *Handler) getProductByID(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	product, err := h.catalog.GetProduct(ctx, id)
	if err != nil {
		h.log.Errorf(ctx, "GetProduct failed id=%d err=%v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if product == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	c.JSON(http.StatusOK, product)
}
