package usecase

import (
	"context"
	"errors"

	"github.com/Gunvolt24/shop_api/internal/clients/payment"
	"github.com/Gunvolt24/shop_api/internal/domain"
	"github.com/Gunvolt24/shop_api/internal/ports"
	"github.com/Gunvolt24/shop_api/internal/pricing"
	"github.com/Gunvolt24/shop_api/pkg/metrics"
)

// CheckoutService — оркестратор оформления заказа.
// Последовательность строго линейная: валидация -> авторизация платежа ->
// сохранение. Ни один шаг не повторяется и не запускается параллельно
// с другим; блокировки поперёк шагов не держатся.
type CheckoutService struct {
	validator ports.CartValidator   // пересчёт корзины по каталогу
	gateway   ports.PaymentGateway  // платёжный шлюз
	repo      ports.OrderRepository // хранилище заказов
	cache     ports.OrderCache      // кэш заказов
	events    ports.EventPublisher  // события о созданных заказах (best-effort)
	log       ports.Logger
	currency  string
}

// NewCheckoutService — DI-конструктор.
func NewCheckoutService(
	validator ports.CartValidator,
	gateway ports.PaymentGateway,
	repo ports.OrderRepository,
	cache ports.OrderCache,
	events ports.EventPublisher,
	log ports.Logger,
	currency string,
) *CheckoutService {
	if currency == "" {
		currency = "usd"
	}
	return &CheckoutService{
		validator: validator,
		gateway:   gateway,
		repo:      repo,
		cache:     cache,
		events:    events,
		log:       log,
		currency:  currency,
	}
}

// Checkout — одна попытка оформления заказа.
// Все бизнес-исходы (невалидная корзина, отказ платежа, ошибка сохранения)
// возвращаются значением CheckoutResult; ошибка возвращается только при
// инфраструктурном сбое до обращения к шлюзу (чтение каталога, отмена
// контекста) — в этот момент деньги ещё не двигались.
func (s *CheckoutService) Checkout(ctx context.Context, ownerID string, cartLines []domain.CartLine, paymentMethodRef string) (domain.CheckoutResult, error) {
	// 1. Валидация. Платёж никогда не авторизуется для невалидной корзины:
	// порядок шагов защищает клиента от списания за невыполнимый заказ.
	validated, err := s.validator.Validate(ctx, ownerID, cartLines)
	if err != nil {
		var verr *pricing.ValidationError
		if errors.As(err, &verr) {
			metrics.CheckoutAttempts.WithLabelValues(string(verr.Kind)).Inc()
			return domain.CheckoutResult{
				Success: false,
				Reason:  verr.Kind,
				Message: verr.Message,
			}, nil
		}
		return domain.CheckoutResult{}, err
	}

	// 2. Итог по ценам каталога, зафиксированным валидатором.
	total := domain.SumLines(validated)
	s.log.Infof(ctx, "checkout owner=%s lines=%d total=%s", ownerID, len(validated), total)

	// 3. Отмена уважается только до обращения к шлюзу. Дальше поток идёт
	// до конца на context.WithoutCancel: прерванный на полпути платёж
	// оставил бы неучтённую авторизацию.
	if err := ctx.Err(); err != nil {
		return domain.CheckoutResult{}, err
	}
	flowCtx := context.WithoutCancel(ctx)

	auth, err := s.gateway.Authorize(flowCtx, total, s.currency, paymentMethodRef)
	if err != nil {
		return s.paymentFailed(ctx, ownerID, err), nil
	}
	if auth.Status != domain.AuthAuthorized {
		metrics.CheckoutAttempts.WithLabelValues(string(domain.ReasonPaymentDeclined)).Inc()
		s.log.Warnf(ctx, "checkout payment declined owner=%s: %s", ownerID, auth.FailureReason)
		return domain.CheckoutResult{
			Success: false,
			Reason:  domain.ReasonPaymentDeclined,
			Message: "Payment failed: " + auth.FailureReason,
		}, nil
	}

	// 4. Сохранение заказа. Деньги уже авторизованы: ошибка здесь —
	// окно несогласованности, автоматической компенсации (void/refund)
	// в этом контуре нет намеренно. Возвращаем отдельное, отличимое от
	// обычного отказа платежа сообщение, чтобы поддержка могла свериться
	// со шлюзом вручную; id авторизации остаётся в логе.
	order := &domain.Order{
		OwnerID:       ownerID,
		TotalAmount:   total,
		PaymentAuthID: auth.ID,
		Lines:         validated,
	}
	if err := s.repo.Save(flowCtx, order); err != nil {
		metrics.CheckoutAttempts.WithLabelValues(string(domain.ReasonPersistenceError)).Inc()
		s.log.Errorf(ctx, "order save failed after successful payment owner=%s auth=%s err=%v (manual reconciliation required)",
			ownerID, auth.ID, err)
		return domain.CheckoutResult{
			Success: false,
			Reason:  domain.ReasonPersistenceError,
			Message: "Order could not be saved after payment processing. Please contact support.",
		}, nil
	}

	// Кэш и событие — best-effort, заказ уже сохранён.
	if cacheErr := s.cache.Set(flowCtx, order); cacheErr != nil {
		s.log.Warnf(ctx, "cache.Set failed order=%s err=%v", order.ID, cacheErr)
	}
	if pubErr := s.events.OrderPlaced(flowCtx, order); pubErr != nil {
		s.log.Warnf(ctx, "order placed event publish failed order=%s err=%v", order.ID, pubErr)
	}

	metrics.CheckoutAttempts.WithLabelValues("success").Inc()
	s.log.Infof(ctx, "checkout completed owner=%s order=%s auth=%s total=%s", ownerID, order.ID, auth.ID, total)
	return domain.CheckoutResult{
		Success: true,
		OrderID: order.ID,
		Message: "Order placed successfully.",
	}, nil
}

// paymentFailed — маппинг ошибок шлюза в терминальный результат.
// Транспортный сбой отличаем от бизнес-отказа; локальный отказ по
// неположительной сумме получает эталонный текст.
func (s *CheckoutService) paymentFailed(ctx context.Context, ownerID string, err error) domain.CheckoutResult {
	reason := domain.ReasonPaymentDeclined
	detail := err.Error()

	switch {
	case errors.Is(err, payment.ErrTransport):
		reason = domain.ReasonPaymentTransportError
		detail = "payment service is temporarily unavailable"
	case errors.Is(err, payment.ErrNonPositiveAmount):
		detail = "Total amount must be positive."
	}

	metrics.CheckoutAttempts.WithLabelValues(string(reason)).Inc()
	s.log.Warnf(ctx, "checkout payment failed owner=%s reason=%s err=%v", ownerID, reason, err)
	return domain.CheckoutResult{
		Success: false,
		Reason:  reason,
		Message: "Payment failed: " + detail,
	}
}
