//go:build integration

package testutil

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Gunvolt24/shop_api/internal/domain"
)

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func UniqSuffix() string { return randHex(6) }

// MakeProduct — валидный товар каталога с уникальным именем.
func MakeProduct(id int64, price string) domain.Product {
	return domain.Product{
		ID:          id,
		Name:        "Widget-" + UniqSuffix(),
		Description: "test widget",
		Price:       decimal.RequireFromString(price),
		ImageURL:    "https://img.example.com/" + UniqSuffix() + ".png",
	}
}

// MakeOrder — мини-генератор валидного заказа: итог всегда равен сумме позиций.
func MakeOrder(opts ...func(*domain.Order)) domain.Order {
	now := time.Now().UTC().Truncate(time.Second)

	lines := []domain.OrderLine{
		{
			ProductID:   1001,
			ProductName: "Widget",
			UnitPrice:   decimal.RequireFromString("19.99"),
			Quantity:    2,
			LineTotal:   decimal.RequireFromString("39.98"),
		},
	}

	o := domain.Order{
		OwnerID:       "cust-" + UniqSuffix(),
		CreatedAt:     now,
		PaymentAuthID: "pi_" + UniqSuffix(),
		Lines:         lines,
		TotalAmount:   domain.SumLines(lines),
	}

	for _, fn := range opts {
		fn(&o)
	}
	return o
}

func WithOwner(owner string) func(*domain.Order) {
	return func(o *domain.Order) { o.OwnerID = owner }
}

func WithCreatedAt(ts time.Time) func(*domain.Order) {
	return func(o *domain.Order) { o.CreatedAt = ts }
}

func WithLines(n int) func(*domain.Order) {
	return func(o *domain.Order) {
		o.Lines = make([]domain.OrderLine, 0, n)
		for i := 0; i < n; i++ {
			price := decimal.New(int64(100*(i+1)), -2) // 1.00, 2.00, ...
			o.Lines = append(o.Lines, domain.OrderLine{
				ProductID:   int64(1000 + i),
				ProductName: fmt.Sprintf("Item-%d", i),
				UnitPrice:   price,
				Quantity:    1,
				LineTotal:   price,
			})
		}
		o.TotalAmount = domain.SumLines(o.Lines)
	}
}
