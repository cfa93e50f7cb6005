package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/Gunvolt24/shop_api/internal/domain"
	"github.com/Gunvolt24/shop_api/internal/ports"
)

// CatalogService — каталог товаров: чтение для HTTP и приём фида из Kafka.
type CatalogService struct {
	repo      ports.ProductRepository
	validator ports.ProductValidator
	log       ports.Logger
}

// NewCatalogService — DI-конструктор.
func NewCatalogService(repo ports.ProductRepository, validator ports.ProductValidator, log ports.Logger) *CatalogService {
	return &CatalogService{repo: repo, validator: validator, log: log}
}

// ListProducts — список товаров, опционально отфильтрованный по подстроке.
func (s *CatalogService) ListProducts(ctx context.Context, search string) ([]domain.Product, error) {
	return s.repo.List(ctx, search)
}

// GetProduct — товар по id; (nil, nil), если записи нет.
func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// SaveFromMessage — принять товар из фида каталога (raw JSON).
// Шаги:
//  1. строгий парсинг JSON (DisallowUnknownFields) — отлавливаем незадокументированные поля;
//  2. доменная валидация (вернёт validate.ErrInvalidProduct при проблемах);
//  3. идемпотентный upsert в БД.
func (s *CatalogService) SaveFromMessage(ctx context.Context, raw []byte) error {
	// Строгое декодирование: запрещаем неизвестные поля.
	var product domain.Product
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&product); err != nil {
		s.log.Warnf(ctx, "invalid json err=%v", err)
		return fmt.Errorf("invalid json: %w", err)
	}

	// Убеждаемся, что после объекта нет лишних данных.
	if err := dec.Decode(new(struct{})); err != io.EOF {
		s.log.Warnf(ctx, "invalid json: trailing data")
		return fmt.Errorf("invalid json: trailing data")
	}

	// Доменная валидация (id, имя, неотрицательная цена).
	if err := s.validator.Validate(ctx, &product); err != nil {
		s.log.Warnf(ctx, "validation failed product=%d err=%v", product.ID, err)
		return fmt.Errorf("validation failed: %w", err)
	}

	if err := s.repo.Upsert(ctx, &product); err != nil {
		s.log.Errorf(ctx, "repo.Upsert failed product=%d err=%v", product.ID, err)
		return fmt.Errorf("failed to save product: %w", err)
	}

	s.log.Infof(ctx, "product saved id=%d name=%q price=%s", product.ID, product.Name, product.Price)
	return nil
}
