package usecase

import (
	"context"
	"time"

	"github.com/Gunvolt24/shop_api/internal/domain"
	"github.com/Gunvolt24/shop_api/internal/ports"
)

// Проверка, что OrderService удовлетворяет интерфейсу OrderReadService.
var _ ports.OrderReadService = (*OrderService)(nil)

// OrderService — чтение заказов (без знаний о транспорте).
type OrderService struct {
	repo  ports.OrderRepository // прямой доступ к хранилищу
	cache ports.OrderCache      // прямой доступ к кэшу
	log   ports.Logger
}

// NewOrderService — DI-конструктор.
func NewOrderService(repo ports.OrderRepository, cache ports.OrderCache, log ports.Logger) *OrderService {
	return &OrderService{repo: repo, cache: cache, log: log}
}

// GetOrder — получить заказ по id: сначала из кэша, при промахе — из БД
// с записью в кэш. Возвращает (*Order, nil) или (nil, nil), если записи нет.
func (s *OrderService) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	if order, found := s.cache.Get(ctx, orderID); found {
		s.log.Infof(ctx, "cache hit for order=%s", orderID)
		return order, nil
	}
	s.log.Infof(ctx, "cache miss for order=%s", orderID)

	start := time.Now()
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		s.log.Errorf(ctx, "repo.GetByID failed order=%s err=%v", orderID, err)
		return nil, err
	}

	if order != nil {
		// Кэшируем результат
		if setErr := s.cache.Set(ctx, order); setErr != nil {
			s.log.Warnf(ctx, "cache.Set failed order=%s err=%v", orderID, setErr)
		}
	}

	s.log.Infof(ctx, "db fetch order=%s took=%s", orderID, time.Since(start))
	return order, nil
}

// OrdersByOwner — проксирование в репозиторий (пагинация уже валидирована на верхнем уровне).
func (s *OrderService) OrdersByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Order, error) {
	return s.repo.ListByOwner(ctx, ownerID, limit, offset)
}

// WarmUpCache — прогрев кэша последними N заказами из БД.
// Если n <= 0, прогрев не выполняется (но это не ошибка).
func (s *OrderService) WarmUpCache(ctx context.Context, n int) error {
	if n <= 0 {
		s.log.Warnf(ctx, "cache warm-up skipped: n <= 0 (n=%d)", n)
		return nil
	}

	start := time.Now()
	list, err := s.repo.LastN(ctx, n)
	if err != nil {
		s.log.Errorf(ctx, "repo.LastN failed n=%d err=%v", n, err)
		return err
	}
	if warmUpErr := s.cache.WarmUp(ctx, list); warmUpErr != nil {
		s.log.Warnf(ctx, "cache.WarmUp failed err=%v", warmUpErr)
	}
	s.log.Infof(ctx, "cache warmed with %d orders in %s", len(list), time.Since(start))
	return nil
}
