package ports

import (
	"context"

	"github.com/Gunvolt24/shop_api/internal/domain"
)

// OrderRepository — хранилище заказов. Заказы append-only:
// Save создаёт ровно одну запись, путей обновления/удаления нет.
type OrderRepository interface {
	// Save — сохранить заказ с позициями в одной транзакции.
	// Заполняет order.ID и order.CreatedAt.
	Save(ctx context.Context, order *domain.Order) error

	// GetByID — вернуть заказ по id; (nil, nil), если записи нет.
	GetByID(ctx context.Context, orderID string) (*domain.Order, error)

	// ListByOwner — постраничная история заказов владельца (новые первыми).
	ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Order, error)

	// LastN — последние n заказов (прогрев кэша).
	LastN(ctx context.Context, n int) ([]*domain.Order, error)
}
