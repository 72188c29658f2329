package slot

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден или принадлежит другому бизнесу
	ErrSlotNotFound = errors.New("slot.repository: slot not found")

	// ErrServiceNotFound возвращается, когда услуга пакета не найдена у бизнеса
	ErrServiceNotFound = errors.New("slot.repository: service not found")

	// ErrStatusMismatch возвращается, когда текущее состояние слота не совпало с ожидаемым (CAS проигран)
	ErrStatusMismatch = errors.New("slot.repository: slot status mismatch")

	// ErrTransaction возвращается при ошибках работы с транзакцией
	ErrTransaction = errors.New("slot.repository: transaction error")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("slot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("slot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("slot.repository: failed to scan row")
)
