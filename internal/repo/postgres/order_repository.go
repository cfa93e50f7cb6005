package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Gunvolt24/shop_api/internal/domain"
	"github.com/Gunvolt24/shop_api/internal/ports"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Проверка, что OrderRepository удовлетворяет интерфейсу OrderRepository.
var _ ports.OrderRepository = (*OrderRepository)(nil)

// OrderRepository — реализация репозитория заказов на Postgres (pgxpool).
// Заказы append-only: только INSERT, путей обновления нет.
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository — конструктор OrderRepository.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository { return &OrderRepository{pool: pool} }

// Save — транзакционно сохраняет заказ с позициями.
// Присваивает order.ID (UUID) и order.CreatedAt; одна успешная транзакция —
// ровно одна запись заказа.
func (r *OrderRepository) Save(ctx context.Context, order *domain.Order) error {
	if order == nil {
		return errors.New("order is nil")
	}
	if order.OwnerID == "" {
		return errors.New("owner_id is required")
	}
	if len(order.Lines) == 0 {
		return errors.New("order has no lines")
	}

	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now().UTC()
	}

	transaction, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	// При уже завершённой транзакции Rollback вернёт ErrTxClosed — это не ошибка.
	defer func() { _ = transaction.Rollback(ctx) }()

	if _, err = transaction.Exec(ctx, `
		INSERT INTO orders (id, owner_id, created_at, total_amount, payment_auth_id)
		VALUES ($1, $2, $3, $4, $5)
	`, order.ID, order.OwnerID, order.CreatedAt, order.TotalAmount, order.PaymentAuthID); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	if err = copyLines(ctx, transaction, order.ID, order.Lines); err != nil {
		return err
	}

	// Завершаем транзакцию
	if err := transaction.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// copyLines — массовая вставка позиций заказа через COPY.
func copyLines(ctx context.Context, tx pgx.Tx, orderID string, lines []domain.OrderLine) error {
	rows := make([][]any, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, []any{orderID, l.ProductID, l.ProductName, l.UnitPrice, l.Quantity, l.LineTotal})
	}

	if _, err := tx.CopyFrom(ctx,
		pgx.Identifier{"order_lines"},
		[]string{"order_id", "product_id", "product_name", "unit_price", "quantity", "line_total"},
		pgx.CopyFromRows(rows),
	); err != nil {
		return fmt.Errorf("copy order lines: %w", err)
	}
	return nil
}

// GetByID — получить заказ по id. Если не нашли, возвращает (nil, nil).
func (r *OrderRepository) GetByID(ctx context.Context, orderID string) (*domain.Order, error) {
	var order domain.Order

	err := r.pool.QueryRow(ctx, `
		SELECT id, owner_id, created_at, total_amount, payment_auth_id
		FROM orders WHERE id = $1
	`, orderID).Scan(&order.ID, &order.OwnerID, &order.CreatedAt, &order.TotalAmount, &order.PaymentAuthID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select order: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT product_id, product_name, unit_price, quantity, line_total
		FROM order_lines WHERE order_id = $1
		ORDER BY id
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("select order lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var line domain.OrderLine
		if err := rows.Scan(&line.ProductID, &line.ProductName, &line.UnitPrice, &line.Quantity, &line.LineTotal); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		order.Lines = append(order.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("order lines rows: %w", err)
	}

	return &order, nil
}

// ListByOwner — постраничная история заказов владельца (новые первыми).
// Два запроса на страницу: базовые заказы + все их позиции одним запросом,
// затем склейка в памяти с сохранением порядка.
func (r *OrderRepository) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Order, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, owner_id, created_at, total_amount, payment_auth_id
		FROM orders
		WHERE owner_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`, ownerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("select owner orders: %w", err)
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0, limit)
	byID := make(map[string]*domain.Order, limit)
	ids := make([]string, 0, limit)

	for rows.Next() {
		order := &domain.Order{}
		if err := rows.Scan(&order.ID, &order.OwnerID, &order.CreatedAt, &order.TotalAmount, &order.PaymentAuthID); err != nil {
			return nil, fmt.Errorf("scan order base: %w", err)
		}
		orders = append(orders, order)
		byID[order.ID] = order
		ids = append(ids, order.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("orders rows: %w", err)
	}
	if len(orders) == 0 {
		return orders, nil
	}

	if err := r.attachLines(ctx, byID, ids); err != nil {
		return nil, err
	}
	return orders, nil
}

// LastN — последние n заказов по дате создания (прогрев кэша).
func (r *OrderRepository) LastN(ctx context.Context, n int) ([]*domain.Order, error) {
	if n <= 0 {
		return nil, nil
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, owner_id, created_at, total_amount, payment_auth_id
		FROM orders
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`, n)
	if err != nil {
		return nil, fmt.Errorf("select last orders: %w", err)
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0, n)
	byID := make(map[string]*domain.Order, n)
	ids := make([]string, 0, n)

	for rows.Next() {
		order := &domain.Order{}
		if err := rows.Scan(&order.ID, &order.OwnerID, &order.CreatedAt, &order.TotalAmount, &order.PaymentAuthID); err != nil {
			return nil, fmt.Errorf("scan order base: %w", err)
		}
		orders = append(orders, order)
		byID[order.ID] = order
		ids = append(ids, order.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("orders rows: %w", err)
	}
	if len(orders) == 0 {
		return orders, nil
	}

	if err := r.attachLines(ctx, byID, ids); err != nil {
		return nil, err
	}
	return orders, nil
}

// attachLines — дочитывает позиции для набора заказов одним запросом.
func (r *OrderRepository) attachLines(ctx context.Context, byID map[string]*domain.Order, ids []string) error {
	rows, err := r.pool.Query(ctx, `
		SELECT order_id, product_id, product_name, unit_price, quantity, line_total
		FROM order_lines
		WHERE order_id = ANY($1)
		ORDER BY id
	`, ids)
	if err != nil {
		return fmt.Errorf("select order lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orderID string
			line    domain.OrderLine
		)
		if err := rows.Scan(&orderID, &line.ProductID, &line.ProductName, &line.UnitPrice, &line.Quantity, &line.LineTotal); err != nil {
			return fmt.Errorf("scan order line: %w", err)
		}
		if order, ok := byID[orderID]; ok {
			order.Lines = append(order.Lines, line)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("order lines rows: %w", err)
	}
	return nil
}
