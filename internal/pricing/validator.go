// Пакет pricing — валидация корзины против каталога с пересчётом
// стоимости по текущим ценам. Клиентские цены не читаются вообще:
// единственный источник цены — снимок каталога на момент вызова.
package pricing

import (
	"context"
	"fmt"

	"github.com/Gunvolt24/shop_api/internal/domain"
	"github.com/Gunvolt24/shop_api/internal/ports"
	"github.com/shopspring/decimal"
)

// Проверка, что Validator удовлетворяет интерфейсу CartValidator.
var _ ports.CartValidator = (*Validator)(nil)

// ValidationError — бизнес-ошибка валидации корзины.
// Kind — одна из domain.Reason*-констант; Message — текст для клиента.
type ValidationError struct {
	Kind        domain.FailureReason
	Message     string
	ProductIDs  []int64 // заполнено для ReasonUnknownProduct (все отсутствующие id)
	ProductID   int64   // заполнено для ReasonInvalidQuantity (первая проблемная позиция)
	ProductName string  // заполнено для ReasonInvalidQuantity
}

func (e *ValidationError) Error() string { return e.Message }

// Validator — реализация CartValidator поверх чтения каталога.
type Validator struct {
	catalog ports.CatalogReader
	log     ports.Logger
}

// NewValidator — DI-конструктор.
func NewValidator(catalog ports.CatalogReader, log ports.Logger) *Validator {
	return &Validator{catalog: catalog, log: log}
}

// Validate — проверяет корзину и возвращает позиции заказа с ценами каталога.
// Порядок проверок фиксирован и совместим с эталонным поведением:
//  1. пустая корзина;
//  2. неизвестные товары — батчем, в одной ошибке перечислены ВСЕ отсутствующие id;
//  3. количество — с остановкой на первой проблемной позиции.
//
// Ошибка чтения каталога возвращается как есть (инфраструктурная, не бизнес).
func (v *Validator) Validate(ctx context.Context, ownerID string, lines []domain.CartLine) ([]domain.OrderLine, error) {
	if len(lines) == 0 {
		v.log.Warnf(ctx, "checkout validation failed owner=%s: empty cart", ownerID)
		return nil, &ValidationError{
			Kind:    domain.ReasonEmptyCart,
			Message: "Cart cannot be empty.",
		}
	}

	ids := make([]int64, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ProductID)
	}

	// Снимок каталога на момент валидации. Блокировок дальше по потоку нет:
	// изменение цены между валидацией и сохранением — допустимая гонка,
	// клиент платит по цене, увиденной здесь.
	products, err := v.catalog.GetProducts(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	byID := make(map[int64]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	// Неизвестные товары собираем все сразу (дубликаты id не перечисляем дважды).
	var missing []int64
	seenMissing := make(map[int64]struct{})
	for _, line := range lines {
		if _, ok := byID[line.ProductID]; ok {
			continue
		}
		if _, dup := seenMissing[line.ProductID]; dup {
			continue
		}
		seenMissing[line.ProductID] = struct{}{}
		missing = append(missing, line.ProductID)
	}
	if len(missing) > 0 {
		v.log.Warnf(ctx, "checkout validation failed owner=%s: unknown products %v", ownerID, missing)
		return nil, &ValidationError{
			Kind:       domain.ReasonUnknownProduct,
			Message:    "One or more products in your cart are invalid.",
			ProductIDs: missing,
		}
	}

	validated := make([]domain.OrderLine, 0, len(lines))
	for _, line := range lines {
		product := byID[line.ProductID]
		if line.Quantity <= 0 {
			v.log.Warnf(ctx, "checkout validation failed owner=%s: invalid quantity product=%d", ownerID, product.ID)
			return nil, &ValidationError{
				Kind:        domain.ReasonInvalidQuantity,
				Message:     fmt.Sprintf("Invalid quantity for product '%s'.", product.Name),
				ProductID:   product.ID,
				ProductName: product.Name,
			}
		}

		validated = append(validated, domain.OrderLine{
			ProductID:   product.ID,
			ProductName: product.Name,
			UnitPrice:   product.Price,
			Quantity:    line.Quantity,
			LineTotal:   product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))),
		})
	}

	return validated, nil
}
