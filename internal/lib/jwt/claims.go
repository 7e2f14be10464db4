// Package jwt реализует генерацию и парсинг access-токенов identity-провайдера
// с пользовательскими claim полями.
//
// Провайдер подписывает токены общим секретом (HS256); сервер проверяет
// подпись локально и извлекает из claims идентификатор пользователя, email,
// роль и состояние онбординга.
package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CustomClaims описывает пользовательские данные, хранящиеся в access-токене.
type CustomClaims struct {
	Email                string `json:"email"`              // Электронная почта пользователя
	Role                 string `json:"role"`               // admin или manager
	GymName              string `json:"gym_name,omitempty"` // Название зала из метаданных
	HasFinishedSetup     bool   `json:"has_finished_setup"` // Завершён ли онбординг
	jwt.RegisteredClaims        // Стандартные claims (Subject = id пользователя, ExpiresAt и пр.)
}

// Maker описывает интерфейс для генерации и парсинга токенов.
type Maker interface {
	// GenerateToken создаёт токен для пользователя с заданными claims
	GenerateToken(userID, email, role string) (string, error)
	// ParseToken возвращает *CustomClaims, если токен корректен
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа
// и времени жизни токена (TTL).
type MakerImpl struct {
	secretKey string
	tokenTTL  time.Duration
}

// NewJWTMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}
