package generate_slots

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SlotService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: generate_slots: invalid input data", domain.ErrValidation)

	// ErrInvalidDate возвращается при некорректном формате или порядке дат
	ErrInvalidDate = fmt.Errorf("%w: generate_slots: invalid date range", domain.ErrValidation)

	// ErrInvalidTime возвращается при некорректном формате или порядке времени
	ErrInvalidTime = fmt.Errorf("%w: generate_slots: invalid daily window", domain.ErrValidation)

	// ErrInvalidInterval возвращается при интервале вне допустимых пределов
	ErrInvalidInterval = fmt.Errorf("%w: generate_slots: invalid interval", domain.ErrValidation)

	// ErrRangeTooLarge возвращается, когда диапазон дат превышает ограничение
	ErrRangeTooLarge = fmt.Errorf("%w: generate_slots: date range is too large", domain.ErrValidation)

	// ErrTooManyCandidates возвращается, когда запрос порождает слишком много слотов
	ErrTooManyCandidates = fmt.Errorf("%w: generate_slots: too many slots requested", domain.ErrValidation)

	// ErrServiceNotFound возвращается, когда услуга не найдена у бизнеса.
	// Для генерации это ошибка входных данных
	ErrServiceNotFound = fmt.Errorf("%w: generate_slots: unknown service", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("generate_slots: internal error")
)
