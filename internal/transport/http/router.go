package rest

import (
	"github.com/Gunvolt24/shop_api/pkg/httpx"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// NewRouter — собирает маршруты витрины.
// otelServiceName непустое — включает otelgin-трейсинг входящих запросов.
func NewRouter(h *Handler, apiKey, otelServiceName string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if otelServiceName != "" {
		r.Use(otelgin.Middleware(otelServiceName))
	}
	r.Use(httpx.RequestIDMiddleware())
	r.Use(httpx.RequestLogger(h.log))

	r.GET("/ping", func(c *gin.Context) { c.String(200, "pong") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Каталог — публичное чтение за API-ключом (пустой ключ = без проверки).
	products := r.Group("/products", httpx.APIKeyMiddleware(apiKey))
	{
		products.GET("", h.listProducts)
		products.GET("/:id", h.getProductByID)
	}

	// Заказы — только для аутентифицированного владельца.
	orders := r.Group("/orders", httpx.UserIDMiddleware())
	{
		orders.POST("/checkout", h.postCheckout)
		orders.GET("", h.listOrders)
		orders.GET("/:id", h.getOrderByID)
	}

	return r
}
