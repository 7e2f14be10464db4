package models

import "time"

// Статусы участника.
const (
	MemberStatusActive   = "active"
	MemberStatusInactive = "inactive"
)

// Member участник зала. ManagerID указывает на профиль менеджера,
// зарегистрировавшего участника.
type Member struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	ManagerID string    `json:"manager_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// DummyMember используется для приёма запроса на регистрацию участника.
type DummyMember struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required"`
	PlanID   string `json:"plan_id" validate:"required,uuid"`
}

// MemberSummary строка списка участников: участник вместе с названием
// текущего плана и датой окончания абонемента. У участника без подписки
// план отображается как "No Plan", а дата отсутствует.
type MemberSummary struct {
	ID         string     `json:"id"`
	FullName   string     `json:"full_name"`
	Status     string     `json:"status"`
	PlanName   string     `json:"plan_name"`
	ExpiryDate *time.Time `json:"expiry_date,omitempty"`
}
