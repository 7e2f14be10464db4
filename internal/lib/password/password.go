// Package password реализует генерацию временных учётных данных
// для новых менеджеров.
//
// Пароль передаётся identity-провайдеру при создании учётной записи и
// отправляется менеджеру в приглашении; предполагается смена при первом входе.
package password

import (
	"crypto/rand"
	"fmt"
)

const tempAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateTemp возвращает временный пароль вида "GF" + 6 символов
// из алфавита без неоднозначных знаков.
func GenerateTemp() (string, error) {
	const op = "password.GenerateTemp"
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	for i, b := range buf {
		buf[i] = tempAlphabet[int(b)%len(tempAlphabet)]
	}
	return "GF" + string(buf), nil
}
