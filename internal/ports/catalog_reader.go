package ports

import (
	"context"

	"github.com/Gunvolt24/shop_api/internal/domain"
)

// CatalogReader — точечное чтение каталога для валидации корзины.
// Возвращает только существующие товары; отсутствующие id просто
// не попадают в ответ (это не ошибка — «неизвестность» определяет вызывающий).
type CatalogReader interface {
	GetProducts(ctx context.Context, ids []int64) ([]domain.Product, error)
}
