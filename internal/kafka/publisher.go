package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Gunvolt24/shop_api/internal/domain"
	"github.com/Gunvolt24/shop_api/internal/ports"
	"github.com/segmentio/kafka-go"
)

// Проверка, что Publisher удовлетворяет интерфейсу EventPublisher.
var _ ports.EventPublisher = (*Publisher)(nil)

// PublisherConfig — конфигурация публикации событий о заказах.
type PublisherConfig struct {
	Brokers []string
	Topic   string
}

// orderPlacedEvent — полезная нагрузка события «заказ создан».
// Позиции не включаем: консьюмерам достаточно ссылки на заказ и итога.
type orderPlacedEvent struct {
	OrderID       string    `json:"order_id"`
	OwnerID       string    `json:"owner_id"`
	TotalAmount   string    `json:"total_amount"`
	PaymentAuthID string    `json:"payment_auth_id"`
	LineCount     int       `json:"line_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// writer — минимальный контракт над kafka.Writer для подмены в тестах.
type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher — публикация событий о созданных заказах в Kafka.
// Вызывающий слой трактует ошибки как best-effort: заказ уже сохранён.
type Publisher struct {
	writer writer
	log    ports.Logger
}

// NewPublisher — конструктор поверх kafka.Writer (RequireOne: подтверждение лидера).
func NewPublisher(cfg PublisherConfig, log ports.Logger) *Publisher {
	w := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 10 * time.Millisecond,
	}
	return &Publisher{writer: w, log: log}
}

// OrderPlaced — публикует событие о созданном заказе.
// Ключ — id заказа: события одного заказа попадают в одну партицию.
func (p *Publisher) OrderPlaced(ctx context.Context, order *domain.Order) error {
	if order == nil || order.ID == "" {
		return fmt.Errorf("order is empty")
	}

	payload, err := json.Marshal(orderPlacedEvent{
		OrderID:       order.ID,
		OwnerID:       order.OwnerID,
		TotalAmount:   order.TotalAmount.StringFixed(2),
		PaymentAuthID: order.PaymentAuthID,
		LineCount:     len(order.Lines),
		CreatedAt:     order.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("marshal order placed event: %w", err)
	}

	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(order.ID),
		Value: payload,
	}); err != nil {
		return fmt.Errorf("write order placed event: %w", err)
	}

	p.log.Infof(ctx, "order placed event published order=%s", order.ID)
	return nil
}

// Close — закрывает writer.
func (p *Publisher) Close() error { return p.writer.Close() }
