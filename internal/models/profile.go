package models

// Роли принадлежат либо владельцу платформы, либо менеджеру зала.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
)

// Profile зеркальная запись пользователя identity-провайдера.
// Для серверных проверок роли и gym_name каноничен именно профиль,
// provider metadata каноничны только для учётных данных.
type Profile struct {
	ID      string `json:"id"` // Совпадает с id пользователя у identity-провайдера
	Email   string `json:"email"`
	Role    string `json:"role"`
	GymName string `json:"gym_name"` // Пустая строка до завершения онбординга
}

// DummySetup используется для приёма данных завершения онбординга владельца.
type DummySetup struct {
	FullName string `json:"full_name" validate:"required"`
	GymName  string `json:"gym_name" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
}
