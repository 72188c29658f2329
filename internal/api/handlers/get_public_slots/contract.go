package get_public_slots

import (
	"context"

	getPublicSlots "github.com/m04kA/SMC-SlotService/internal/usecase/get_public_slots"
)

type GetPublicSlotsUseCase interface {
	Execute(ctx context.Context, req *getPublicSlots.Request) (*getPublicSlots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
