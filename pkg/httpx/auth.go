package httpx

import (
	"net/http"

	"github.com/Gunvolt24/shop_api/pkg/ctxmeta"
	"github.com/gin-gonic/gin"
)

// UserIDMiddleware — извлекает идентификатор пользователя из X-User-ID
// (его проставляет вышестоящий слой аутентификации) и кладёт в контекст.
// Без заголовка запрос отклоняется с 401: все маршруты заказов требуют владельца.
func UserIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		ctx := ctxmeta.WithUserID(c.Request.Context(), userID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// APIKeyMiddleware — сверяет X-Api-Key с настроенным ключом.
// Пустой настроенный ключ означает «проверка выключена».
func APIKeyMiddleware(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKey == "" {
			c.Next()
			return
		}
		if c.GetHeader("X-Api-Key") != apiKey {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid api key"})
			return
		}
		c.Next()
	}
}
