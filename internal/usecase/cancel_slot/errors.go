package cancel_slot

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SlotService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: cancel_slot: invalid input data", domain.ErrValidation)

	// ErrSlotNotFound возвращается, когда слот не найден у бизнеса
	ErrSlotNotFound = fmt.Errorf("%w: cancel_slot: slot not found", domain.ErrNotFound)

	// ErrAlreadyCancelled возвращается при повторной отмене
	ErrAlreadyCancelled = fmt.Errorf("%w: cancel_slot: slot is already cancelled", domain.ErrConflict)

	// ErrStateChanged возвращается, когда состояние слота изменилось во время отмены
	ErrStateChanged = fmt.Errorf("%w: cancel_slot: slot state changed concurrently", domain.ErrConflict)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_slot: internal error")
)
