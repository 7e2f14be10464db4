package middlewarectx

import (
	"context"

	"github.com/gymflowhq/gymflow/internal/services"
)

// PrincipalFromContext собирает аутентифицированного пользователя из
// значений контекста, добавленных JWTMiddleware. Второе значение false,
// если запрос не прошёл через middleware.
func PrincipalFromContext(ctx context.Context) (services.Principal, bool) {
	uid, ok := ctx.Value(UserUID).(string)
	if !ok || uid == "" {
		return services.Principal{}, false
	}
	email, _ := ctx.Value(Email).(string)
	role, _ := ctx.Value(Role).(string)
	gymName, _ := ctx.Value(GymName).(string)
	finishedSetup, _ := ctx.Value(FinishedSetup).(bool)
	return services.Principal{
		UserID:           uid,
		Email:            email,
		Role:             role,
		GymName:          gymName,
		HasFinishedSetup: finishedSetup,
	}, true
}
