package catalog

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SlotService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: catalog: invalid input data", domain.ErrValidation)

	// ErrServiceNotFound возвращается, когда услуга не найдена у бизнеса
	ErrServiceNotFound = fmt.Errorf("%w: catalog: service not found", domain.ErrNotFound)

	// ErrServiceInUse возвращается при удалении услуги с будущими активными слотами
	ErrServiceInUse = fmt.Errorf("%w: catalog: service has upcoming available or booked slots", domain.ErrConflict)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("catalog: internal error")
)
