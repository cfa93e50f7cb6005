//go:build !integration

package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/Gunvolt24/shop_api/internal/domain"
	"github.com/Gunvolt24/shop_api/internal/ports"
	"github.com/Gunvolt24/shop_api/pkg/httpx"
)

// --- Бенчмарки ---

// Базовый бенч: GetOrder (заказ владельца) — сравниваем LEAN vs FULL пайплайн
func BenchmarkHTTP_GetOrder(b *testing.B) {
	ord := benchOrder("bench-user", 2)
	h := benchHandler(ordersOne{o: ord})

	lean := makeLeanRouter(h)
	full := makeFullRouter(h)

	b.Run("lean/no-mw", func(b *testing.B) {
		benchServeGET(b, lean, "/orders/"+ord.ID)
	})
	b.Run("full/prod-mw", func(b *testing.B) {
		benchServeGET(b, full, "/orders/"+ord.ID)
	})
}

// Потолок без маршалинга: тот же заказ, но заранее закодированный JSON.
// Показывает, сколько «ест» encoding/json в хендлере.
func BenchmarkHTTP_GetOrder_PreMarshaledBytes(b *testing.B) {
	ord := benchOrder("bench-user", 2)
	raw, _ := json.Marshal(ord)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.GET("/orders/:id", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", raw)
	})

	benchServeGET(b, r, "/orders/"+ord.ID)
}

// История заказов: 10/50/100 — измеряем рост аллокаций и времени
func BenchmarkHTTP_ListOrders(b *testing.B) {
	for _, n := range []int{10, 50, 100} {
		b.Run("N="+strconv.Itoa(n), func(b *testing.B) {
			list := make([]*domain.Order, 0, n)
			for i := 0; i < n; i++ {
				o := benchOrder("bench-user", 1)
				o.ID = fmt.Sprintf("order-%d", i)
				list = append(list, o)
			}
			h := benchHandler(ordersList{list: list})

			lean := makeLeanRouter(h)
			benchServeGET(b, lean, "/orders?limit="+strconv.Itoa(n))
		})
	}
}

// Ошибочный путь (404): «цена» роутера и 404-хендлера
func BenchmarkHTTP_404(b *testing.B) {
	ord := benchOrder("bench-user", 1)
	h := benchHandler(ordersOne{o: ord})
	r := makeLeanRouter(h)

	b.ReportAllocs()
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			req, _ := http.NewRequest(http.MethodGet, "/nope", nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			_, _ = io.Copy(io.Discard, w.Body)
			if w.Code != http.StatusNotFound {
				b.Fatalf("status=%d", w.Code)
			}
		}
	})
}

// --- nopLogger — логгер, который не делает ничего. ---

type nopLogger struct{}

func (nopLogger) Infof(context.Context, string, ...any)  {}
func (nopLogger) Warnf(context.Context, string, ...any)  {}
func (nopLogger) Errorf(context.Context, string, ...any) {}

// --- Стабы ---

type ordersOne struct{ o *domain.Order }

func (s ordersOne) GetOrder(context.Context, string) (*domain.Order, error) { return s.o, nil }
func (s ordersOne) OrdersByOwner(context.Context, string, int, int) ([]*domain.Order, error) {
	return []*domain.Order{s.o}, nil
}

// для списка: заранее подготовленная выборка N элементов (без аллокаций на каждом вызове)
type ordersList struct{ list []*domain.Order }

func (s ordersList) GetOrder(context.Context, string) (*domain.Order, error) {
	return s.list[0], nil
}
func (s ordersList) OrdersByOwner(context.Context, string, int, int) ([]*domain.Order, error) {
	return s.list, nil
}

// --- функции-помощники ---

func benchHandler(orders ports.OrderReadService) *Handler {
	return NewHandler(nil, orders, nil, nopLogger{})
}

func benchOrder(owner string, lines int) *domain.Order {
	o := &domain.Order{
		ID:            "order-bench",
		OwnerID:       owner,
		CreatedAt:     time.Now().UTC(),
		PaymentAuthID: "pi_bench",
	}
	for i := 0; i < lines; i++ {
		price := decimal.New(int64(100*(i+1)), -2)
		o.Lines = append(o.Lines, domain.OrderLine{
			ProductID:   int64(i + 1),
			ProductName: "Bench Item",
			UnitPrice:   price,
			Quantity:    1,
			LineTotal:   price,
		})
	}
	o.TotalAmount = domain.SumLines(o.Lines)
	return o
}

func makeLeanRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New() // без Recovery/otel/logger — меньшая аллокация
	r.Use(httpx.UserIDMiddleware())
	r.GET("/orders/:id", h.getOrderByID)
	r.GET("/orders", h.listOrders)
	return r
}

func makeFullRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	// prod пайплайн из NewRouter
	return NewRouter(h, "", "")
}

func benchServeGET(b *testing.B, r *gin.Engine, path string) {
	b.Helper()
	b.ReportAllocs()
	b.ResetTimer()

	// Параллельный режим ближе к реальности без TCP
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			req, _ := http.NewRequest(http.MethodGet, path, nil)
			req.Header.Set("X-User-ID", "bench-user")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			_, _ = io.Copy(io.Discard, w.Body)
			if w.Code != http.StatusOK {
				b.Fatalf("status=%d", w.Code)
			}
		}
	})
}
