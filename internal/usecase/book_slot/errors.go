package book_slot

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SlotService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных данных клиента
	ErrInvalidInput = fmt.Errorf("%w: book_slot: invalid input data", domain.ErrValidation)

	// ErrSlotStarted возвращается, когда слот уже начался
	ErrSlotStarted = fmt.Errorf("%w: book_slot: slot has already started", domain.ErrValidation)

	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = fmt.Errorf("%w: book_slot: slot not found", domain.ErrNotFound)

	// ErrSlotNotAvailable возвращается, когда слот уже забронирован или отменен
	ErrSlotNotAvailable = fmt.Errorf("%w: book_slot: slot is not available", domain.ErrConflict)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("book_slot: internal error")
)
