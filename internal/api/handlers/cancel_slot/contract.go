package cancel_slot

import (
	"context"

	cancelSlot "github.com/m04kA/SMC-SlotService/internal/usecase/cancel_slot"
)

type CancelSlotUseCase interface {
	Execute(ctx context.Context, req *cancelSlot.Request) (*cancelSlot.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
