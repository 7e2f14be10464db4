package repository

import "errors"

// Сентинельные ошибки хранилища. Обработчики сопоставляют их с HTTP-кодами,
// сервисы — с ветками бизнес-логики, поэтому важно различать, какой именно
// шаг не удался.
var (
	// ErrPlanNotFound тарифный план не существует.
	ErrPlanNotFound = errors.New("plan not found")
	// ErrMemberNotFound участник по email/id не найден.
	ErrMemberNotFound = errors.New("member not found")
	// ErrNoSubscription у участника нет ни одной подписки.
	ErrNoSubscription = errors.New("no subscription for member")
	// ErrProfileNotFound профиль пользователя отсутствует. Для резолвера
	// это означает незавершённый онбординг, а не фатальную ошибку.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrMemberExists участник с таким email уже зарегистрирован.
	ErrMemberExists = errors.New("member already exists")
	// ErrMemberCreateFailed не удалось создать строку участника.
	ErrMemberCreateFailed = errors.New("member create failed")
	// ErrSubscriptionCreateFailed участник создан, но подписка не записана;
	// транзакция регистрации откатывается целиком.
	ErrSubscriptionCreateFailed = errors.New("subscription create failed")
)
