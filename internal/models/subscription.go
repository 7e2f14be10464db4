package models

import "time"

// Статусы подписки.
const (
	SubscriptionStatusActive  = "active"
	SubscriptionStatusExpired = "expired"
	SubscriptionStatusPending = "pending"
)

// Subscription связывает участника с тарифным планом. У участника может
// существовать несколько строк подписок, текущей считается самая свежая
// (ORDER BY created_at DESC).
type Subscription struct {
	ID         string    `json:"id"`
	MemberID   string    `json:"member_id"`
	PlanID     string    `json:"plan_id"`
	ExpiryDate time.Time `json:"expiry_date"` // Всегда вычисляется из plan.duration_days
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// MemberBilling агрегат для сверки платежа: участник, его текущая подписка
// и срок действия плана этой подписки.
type MemberBilling struct {
	MemberID         string
	SubscriptionID   string
	PlanDurationDays int
}
