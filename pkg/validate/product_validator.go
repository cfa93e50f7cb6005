package validate

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/Gunvolt24/shop_api/internal/domain"
	"github.com/Gunvolt24/shop_api/internal/ports"
)

// Проверка, что ProductValidator удовлетворяет интерфейсу ProductValidator.
var _ ports.ProductValidator = (*ProductValidator)(nil)

// ErrInvalidProduct — базовая (sentinel error) ошибка валидации товара.
var ErrInvalidProduct = errors.New("product validation failed")

// ProductValidator — валидация записей фида каталога.
// Возвращает ErrInvalidProduct (с обёрнутой причиной) при любой проблеме.
type ProductValidator struct{}

// NewProductValidator — конструктор ProductValidator.
func NewProductValidator() *ProductValidator { return &ProductValidator{} }

// Validate — проверяет корректность полей товара.
func (v *ProductValidator) Validate(_ context.Context, product *domain.Product) error {
	if product == nil {
		return fmt.Errorf("%w: товар не может быть nil", ErrInvalidProduct)
	}
	if product.ID <= 0 {
		return fmt.Errorf("%w: id должен быть положительным", ErrInvalidProduct)
	}
	if strings.TrimSpace(product.Name) == "" {
		return fmt.Errorf("%w: name обязателен", ErrInvalidProduct)
	}
	if product.Price.IsNegative() {
		return fmt.Errorf("%w: price не может быть отрицательной", ErrInvalidProduct)
	}
	if product.ImageURL != "" {
		if _, err := url.ParseRequestURI(product.ImageURL); err != nil {
			return fmt.Errorf("%w: image_url некорректен", ErrInvalidProduct)
		}
	}
	return nil
}
