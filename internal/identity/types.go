package identity

import "time"

// User учётная запись identity-провайдера. UserMetadata хранит
// произвольные атрибуты: full_name, phone, role, gym_name,
// has_finished_setup, last_sign_in кладёт сам провайдер.
type User struct {
	ID           string            `json:"id"`
	Email        string            `json:"email"`
	UserMetadata map[string]string `json:"user_metadata"`
	LastSignIn   *time.Time        `json:"last_sign_in_at"`
	CreatedAt    time.Time         `json:"created_at"`
}

// CreateUserRequest запрос на создание пользователя через admin API.
// EmailConfirm true: учётка менеджера активна сразу, без письма
// с подтверждением.
type CreateUserRequest struct {
	Email        string            `json:"email"`
	Password     string            `json:"password"`
	EmailConfirm bool              `json:"email_confirm"`
	UserMetadata map[string]string `json:"user_metadata,omitempty"`
}

// UpdateUserRequest запрос на обновление метаданных пользователя.
type UpdateUserRequest struct {
	UserMetadata map[string]string `json:"user_metadata"`
}

type listUsersResponse struct {
	Users []*User `json:"users"`
}
