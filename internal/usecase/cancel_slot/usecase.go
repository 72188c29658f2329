package cancel_slot

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	slotRepo "github.com/m04kA/SMC-SlotService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-SlotService/pkg/tracing"
)

// UseCase use case отмены слота владельцем
type UseCase struct {
	slotStore    SlotStore
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(slotStore SlotStore, metrics Metrics, logger Logger) *UseCase {
	return &UseCase{
		slotStore:    slotStore,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute переводит слот из текущего состояния в cancelled.
// Если состояние успело измениться, отмена не повторяется
func (uc *UseCase) Execute(ctx context.Context, req *Request) (resp *Response, err error) {
	ctx, span := tracing.AddSpan(ctx, "usecase.cancel_slot",
		attribute.Int64("business.id", req.BusinessID),
		attribute.Int64("slot.id", req.SlotID),
	)
	defer func() {
		tracing.RecordError(span, err)
		span.End()
	}()

	uc.logger.Info("CancelSlot: business=%d, slot=%d", req.BusinessID, req.SlotID)

	// 1. Валидация входных данных
	if req.BusinessID <= 0 || req.SlotID <= 0 {
		return nil, fmt.Errorf("%w: business and slot ids must be positive", ErrInvalidInput)
	}

	// 2. Получаем слот бизнеса
	slot, err := uc.slotStore.GetForBusiness(ctx, req.BusinessID, req.SlotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			uc.logger.Warn("CancelSlot: slot id=%d not found for business id=%d", req.SlotID, req.BusinessID)
			return nil, ErrSlotNotFound
		}
		uc.logger.Error("CancelSlot: failed to get slot id=%d: %v", req.SlotID, err)
		return nil, fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
	}

	// 3. Отмена терминальна
	if slot.Status == domain.SlotCancelled {
		uc.logger.Warn("CancelSlot: slot id=%d is already cancelled", slot.ID)
		return nil, ErrAlreadyCancelled
	}

	// 4. CAS текущее состояние → cancelled
	cancelled, err := uc.slotStore.Transition(ctx, domain.Transition{
		SlotID: slot.ID,
		From:   slot.Status,
		To:     domain.SlotCancelled,
		At:     uc.timeProvider.Now(),
	})
	if err != nil {
		switch {
		case errors.Is(err, slotRepo.ErrStatusMismatch):
			uc.logger.Warn("CancelSlot: slot id=%d changed state: %v", slot.ID, err)
			return nil, ErrStateChanged
		case errors.Is(err, slotRepo.ErrSlotNotFound):
			return nil, ErrSlotNotFound
		default:
			uc.logger.Error("CancelSlot: failed to cancel slot id=%d: %v", slot.ID, err)
			return nil, fmt.Errorf("%w: failed to cancel slot: %v", ErrInternal, err)
		}
	}

	uc.metrics.RecordCancellation()
	uc.logger.Info("CancelSlot: slot id=%d cancelled (was %s)", cancelled.ID, slot.Status)

	return &Response{Slot: cancelled}, nil
}
