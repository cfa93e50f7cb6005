package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderLine — позиция заказа после валидации корзины.
// UnitPrice — цена каталога, зафиксированная в момент валидации.
type OrderLine struct {
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// Order — сохранённый заказ. После записи в БД не изменяется:
// единственный жизненный путь — создание при успешном checkout.
type Order struct {
	ID            string          `json:"id"`
	OwnerID       string          `json:"owner_id"`
	CreatedAt     time.Time       `json:"created_at"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaymentAuthID string          `json:"payment_auth_id"`
	Lines         []OrderLine     `json:"lines"`
}

// SumLines — сумма заказа по позициям.
// Инвариант: TotalAmount персистентного заказа всегда равен SumLines.
func SumLines(lines []OrderLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.LineTotal)
	}
	return total
}
