package models

import "time"

// ManagerInfo строка каталога менеджеров: данные identity-провайдера,
// дополненные числом приведённых участников.
type ManagerInfo struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	Role        string     `json:"role"`
	Conversions int        `json:"conversions"` // Число участников, зарегистрированных менеджером
	LastActive  *time.Time `json:"last_active"`
	CreatedAt   time.Time  `json:"created_at"`
}

// DummyManager используется для приёма данных создания менеджера.
type DummyManager struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required"`
}

// DummyManagerUpdate используется для приёма данных обновления менеджера.
// Профильная таблица при этом не затрагивается, обновляются только
// метаданные identity-провайдера.
type DummyManagerUpdate struct {
	FullName string `json:"full_name" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
}

// DummyBroadcast используется для приёма рассылки объявления участникам.
type DummyBroadcast struct {
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}
