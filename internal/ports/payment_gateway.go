package ports

import (
	"context"

	"github.com/Gunvolt24/shop_api/internal/domain"
	"github.com/shopspring/decimal"
)

// PaymentGateway — клиент внешнего платёжного API.
// Один вызов Authorize — ровно один запрос к шлюзу, без внутренних повторов
// (идемпотентность повторов — забота самого шлюза).
type PaymentGateway interface {
	// Authorize — авторизовать списание amount в валюте currency.
	// Отказ шлюза (decline) — не ошибка: возвращается авторизация со
	// статусом Declined и причиной. Ошибкой считаются только локальный
	// отказ по неположительной сумме и транспортные сбои.
	Authorize(ctx context.Context, amount decimal.Decimal, currency, paymentMethodRef string) (*domain.PaymentAuthorization, error)
}
