// Package sl содержит вспомогательные функции для работы с логгером slog.
// Все сервисы логируют ошибки под единым ключом "error", чтобы по нему
// можно было фильтровать записи во всех компонентах сразу.
package sl

import "log/slog"

// Err возвращает slog.Attr с ключом "error" и значением текста ошибки.
//
// Пример:
//
//	log.Error("failed to reconcile payment", sl.Err(err))
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}
