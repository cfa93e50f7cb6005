package domain

// AuthStatus — терминальный статус авторизации платежа.
type AuthStatus string

const (
	AuthAuthorized AuthStatus = "authorized"
	AuthDeclined   AuthStatus = "declined"
)

// PaymentAuthorization — результат обращения к платёжному шлюзу.
// Любой терминальный не-authorized статус схлопывается в Declined:
// многошаговые подтверждения (requires_action и т.п.) мы не ведём.
type PaymentAuthorization struct {
	ID            string     `json:"id"`
	Status        AuthStatus `json:"status"`
	FailureReason string     `json:"failure_reason,omitempty"`
}
