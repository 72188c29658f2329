package get_public_slots

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SlotService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: get_public_slots: invalid input data", domain.ErrValidation)

	// ErrServiceNotFound возвращается, когда услуга не принадлежит бизнесу
	ErrServiceNotFound = fmt.Errorf("%w: get_public_slots: service not found", domain.ErrNotFound)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_public_slots: internal error")
)
