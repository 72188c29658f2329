package domain

import "errors"

// Виды ошибок. Sentinel-ошибки пакетов оборачивают один из них,
// транспорт сопоставляет вид с HTTP статусом
var (
	// ErrValidation некорректный или выходящий за пределы ввод
	ErrValidation = errors.New("validation error")

	// ErrNotFound сущность отсутствует или принадлежит другому бизнесу
	ErrNotFound = errors.New("not found")

	// ErrConflict пересечение слотов, проигранная гонка или недопустимый переход состояния
	ErrConflict = errors.New("conflict")
)
