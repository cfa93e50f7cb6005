package ports

import (
	"context"

	"github.com/Gunvolt24/shop_api/internal/domain"
)

// EventPublisher — публикация событий о созданных заказах.
// Публикация best-effort: её ошибка не должна ронять checkout.
type EventPublisher interface {
	OrderPlaced(ctx context.Context, order *domain.Order) error
	Close() error
}
