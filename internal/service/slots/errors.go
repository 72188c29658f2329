package slots

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SlotService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректном фильтре
	ErrInvalidInput = fmt.Errorf("%w: slots: invalid filter", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("slots: internal error")
)
