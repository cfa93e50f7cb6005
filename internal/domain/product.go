package domain

import "github.com/shopspring/decimal"

// Product — товар каталога. Цена здесь — единственный доверенный источник
// для расчёта стоимости заказа (цены из корзины клиента игнорируются).
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"`
}
