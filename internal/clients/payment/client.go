// Пакет payment — HTTP-клиент платёжного API (совместим со Stripe
// payment_intents). Клиент не хранит состояния между вызовами и не делает
// повторов: один Authorize — один запрос.
package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Gunvolt24/shop_api/internal/domain"
	"github.com/Gunvolt24/shop_api/internal/ports"
	"github.com/Gunvolt24/shop_api/pkg/metrics"
	"github.com/shopspring/decimal"
)

// Проверка, что Client удовлетворяет интерфейсу PaymentGateway.
var _ ports.PaymentGateway = (*Client)(nil)

var (
	// ErrNonPositiveAmount — локальный отказ: сумма в минимальных единицах
	// валюты (центах) получилась <= 0. До сети такой запрос не доходит.
	ErrNonPositiveAmount = errors.New("non-positive amount")

	// ErrTransport — транспортный сбой (сеть, таймаут, 5xx, битый ответ).
	// Отличается от бизнес-отказа шлюза (decline).
	ErrTransport = errors.New("payment gateway transport failure")
)

// Config — неизменяемая конфигурация клиента; передаётся при создании,
// глобального состояния нет.
type Config struct {
	APIBase   string
	SecretKey string
	Timeout   time.Duration
}

// Client — клиент платёжного шлюза поверх net/http.
type Client struct {
	apiBase    string
	secretKey  string
	httpClient *http.Client
	log        ports.Logger
}

// NewClient — конструктор клиента.
func NewClient(cfg Config, log ports.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		apiBase:    strings.TrimRight(cfg.APIBase, "/"),
		secretKey:  cfg.SecretKey,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// intentResponse — интересующая нас часть ответа шлюза.
type intentResponse struct {
	ID               string `json:"id"`
	Status           string `json:"status"`
	LastPaymentError *struct {
		Message string `json:"message"`
	} `json:"last_payment_error"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Authorize — создать и подтвердить платёж на сумму amount.
// Сумма передаётся в минимальных единицах валюты (integer), чтобы
// исключить неоднозначность округления на проводе.
func (c *Client) Authorize(ctx context.Context, amount decimal.Decimal, currency, paymentMethodRef string) (*domain.PaymentAuthorization, error) {
	// Локальный guard до любого сетевого вызова: сумма могла быть ненулевой,
	// но округлиться в ноль в минимальных единицах.
	minorUnits := amount.Shift(2).IntPart()
	if minorUnits <= 0 {
		c.log.Warnf(ctx, "authorize rejected locally: non-positive amount=%s", amount)
		return nil, fmt.Errorf("%w: %s", ErrNonPositiveAmount, amount)
	}

	form := url.Values{}
	form.Set("amount", strconv.FormatInt(minorUnits, 10))
	form.Set("currency", currency)
	form.Set("payment_method", paymentMethodRef)
	form.Set("confirm", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.apiBase+"/v1/payment_intents", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrTransport, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.PaymentRequestDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.PaymentRequests.WithLabelValues("transport_error").Inc()
		c.log.Errorf(ctx, "payment request failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		metrics.PaymentRequests.WithLabelValues("transport_error").Inc()
		c.log.Errorf(ctx, "payment gateway returned status %d", resp.StatusCode)
		return nil, fmt.Errorf("%w: gateway status %d", ErrTransport, resp.StatusCode)
	}

	var intent intentResponse
	if err := json.NewDecoder(resp.Body).Decode(&intent); err != nil {
		metrics.PaymentRequests.WithLabelValues("transport_error").Inc()
		return nil, fmt.Errorf("%w: decode response: %v", ErrTransport, err)
	}

	// 402 и прочие 4xx с телом об ошибке — бизнес-отказ, не транспорт.
	if resp.StatusCode >= http.StatusBadRequest {
		reason := "payment was declined"
		if intent.Error != nil && intent.Error.Message != "" {
			reason = intent.Error.Message
		}
		metrics.PaymentRequests.WithLabelValues("declined").Inc()
		c.log.Warnf(ctx, "payment declined intent=%s status_code=%d: %s", intent.ID, resp.StatusCode, reason)
		return &domain.PaymentAuthorization{
			ID:            intent.ID,
			Status:        domain.AuthDeclined,
			FailureReason: reason,
		}, nil
	}

	if intent.Status == "succeeded" || intent.Status == "requires_capture" {
		metrics.PaymentRequests.WithLabelValues("authorized").Inc()
		c.log.Infof(ctx, "payment authorized intent=%s status=%s", intent.ID, intent.Status)
		return &domain.PaymentAuthorization{
			ID:     intent.ID,
			Status: domain.AuthAuthorized,
		}, nil
	}

	// Терминальный не-authorized статус (requires_action и т.п.) — считаем
	// отказом: многошаговые подтверждения этот клиент не ведёт.
	reason := fmt.Sprintf("payment resulted in status: %s", intent.Status)
	if intent.LastPaymentError != nil && intent.LastPaymentError.Message != "" {
		reason = intent.LastPaymentError.Message
	}
	metrics.PaymentRequests.WithLabelValues("declined").Inc()
	c.log.Warnf(ctx, "payment not authorized intent=%s status=%s: %s", intent.ID, intent.Status, reason)
	return &domain.PaymentAuthorization{
		ID:            intent.ID,
		Status:        domain.AuthDeclined,
		FailureReason: reason,
	}, nil
}
