package ports

import (
	"context"

	"github.com/Gunvolt24/shop_api/internal/domain"
)

// OrderReadService — сервис чтения заказов.
type OrderReadService interface {
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)
	OrdersByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Order, error)
}
