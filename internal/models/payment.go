package models

import "time"

// Статусы платежа в леджере.
const (
	PaymentStatusSuccess = "success"
	PaymentStatusFailed  = "failed"
)

// Payment запись леджера платежей. Таблица append-only, reference уникален:
// дубликат от шлюза не создаёт вторую строку.
type Payment struct {
	ID        string    `json:"id"`
	MemberID  string    `json:"member_id"`
	Amount    float64   `json:"amount"` // Сумма в основной единице валюты
	Reference string    `json:"payment_reference"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// DummyPaymentLink используется для приёма запроса на генерацию
// платёжной ссылки.
type DummyPaymentLink struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
	Email  string  `json:"email" validate:"required,email"`
}
