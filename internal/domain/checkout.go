package domain

// FailureReason — машинно-различимая причина неуспешного checkout.
// Клиент не должен разбирать текст сообщения: текст — для человека,
// причина — для кода.
type FailureReason string

const (
	ReasonEmptyCart             FailureReason = "empty_cart"
	ReasonUnknownProduct        FailureReason = "unknown_product"
	ReasonInvalidQuantity       FailureReason = "invalid_quantity"
	ReasonPaymentDeclined       FailureReason = "payment_declined"
	ReasonPaymentTransportError FailureReason = "payment_transport_error"
	ReasonPersistenceError      FailureReason = "persistence_error"
)

// CheckoutResult — терминальный результат одной попытки checkout.
// Все бизнес-ошибки разрешаются внутри оркестратора и возвращаются
// значением, а не ошибкой.
type CheckoutResult struct {
	Success bool          `json:"success"`
	OrderID string        `json:"order_id,omitempty"`
	Reason  FailureReason `json:"reason,omitempty"`
	Message string        `json:"message"`
}
