package ports

import (
	"context"

	"github.com/Gunvolt24/shop_api/internal/domain"
)

// CartValidator — валидация корзины против каталога с пересчётом цен.
// Бизнес-проблемы корзины возвращаются как *pricing.ValidationError,
// инфраструктурные ошибки чтения каталога — как обычная ошибка.
type CartValidator interface {
	Validate(ctx context.Context, ownerID string, lines []domain.CartLine) ([]domain.OrderLine, error)
}
