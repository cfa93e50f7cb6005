package ports

import (
	"context"

	"github.com/Gunvolt24/shop_api/internal/domain"
)

// ProductRepository — хранилище каталога товаров.
type ProductRepository interface {
	CatalogReader

	// GetByID — вернуть товар по id; (nil, nil), если записи нет.
	GetByID(ctx context.Context, id int64) (*domain.Product, error)

	// List — список товаров, отсортированный по имени;
	// search фильтрует по подстроке в имени/описании (пустая строка — без фильтра).
	List(ctx context.Context, search string) ([]domain.Product, error)

	// Upsert — идемпотентная вставка/обновление товара (фид каталога).
	Upsert(ctx context.Context, product *domain.Product) error
}
