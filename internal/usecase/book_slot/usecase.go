package book_slot

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	slotRepo "github.com/m04kA/SMC-SlotService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-SlotService/pkg/metrics"
	"github.com/m04kA/SMC-SlotService/pkg/tracing"
)

// UseCase use case бронирования слота клиентом
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

// Execute бронирует слот одной операцией compare-and-swap available → booked.
// Из нескольких одновременных попыток успешна ровно одна, повторов нет
func (uc *UseCase) Execute(ctx context.Context, req *Request) (resp *Response, err error) {
	ctx, span := tracing.AddSpan(ctx, "usecase.book_slot", attribute.Int64("slot.id", req.SlotID))
	defer func() {
		tracing.RecordError(span, err)
		span.End()
	}()

	uc.logger.Info("BookSlot: slot=%d", req.SlotID)

	// 1. Валидация данных клиента
	customer, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("BookSlot: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем слот, начавшиеся слоты не бронируются
	slot, err := uc.slotStore.GetByID(ctx, req.SlotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			uc.logger.Warn("BookSlot: slot id=%d not found", req.SlotID)
			uc.metrics.RecordBooking(metrics.ResultNotFound)
			return nil, ErrSlotNotFound
		}
		uc.logger.Error("BookSlot: failed to get slot id=%d: %v", req.SlotID, err)
		uc.metrics.RecordBooking(metrics.ResultError)
		return nil, fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
	}

	// Занятый или отмененный слот это конфликт, даже если он уже начался
	if slot.Status != domain.SlotAvailable {
		uc.logger.Warn("BookSlot: slot id=%d is %s", slot.ID, slot.Status)
		uc.metrics.RecordBooking(metrics.ResultConflict)
		return nil, ErrSlotNotAvailable
	}

	if !slot.Start.After(now) {
		uc.logger.Warn("BookSlot: slot id=%d started at %s", slot.ID, slot.Start.Format(domain.TimeFormat))
		uc.metrics.RecordBooking(metrics.ResultRejected)
		return nil, ErrSlotStarted
	}

	// 4. Атомарная смена состояния
	booked, err := uc.slotStore.Transition(ctx, domain.Transition{
		SlotID:   slot.ID,
		From:     domain.SlotAvailable,
		To:       domain.SlotBooked,
		Customer: customer,
		At:       now,
	})
	if err != nil {
		switch {
		case errors.Is(err, slotRepo.ErrStatusMismatch):
			uc.logger.Warn("BookSlot: slot id=%d is not available: %v", slot.ID, err)
			uc.metrics.RecordBooking(metrics.ResultConflict)
			return nil, ErrSlotNotAvailable
		case errors.Is(err, slotRepo.ErrSlotNotFound):
			uc.metrics.RecordBooking(metrics.ResultNotFound)
			return nil, ErrSlotNotFound
		default:
			uc.logger.Error("BookSlot: failed to book slot id=%d: %v", slot.ID, err)
			uc.metrics.RecordBooking(metrics.ResultError)
			return nil, fmt.Errorf("%w: failed to book slot: %v", ErrInternal, err)
		}
	}

	uc.metrics.RecordBooking(metrics.ResultSuccess)
	uc.logger.Info("BookSlot: slot id=%d booked", booked.ID)

	resp = &Response{
		SlotID:     booked.ID,
		ServiceID:  booked.ServiceID,
		BusinessID: booked.BusinessID,
		Start:      booked.Start,
		End:        booked.End,
		Customer:   *booked.Customer,
		BookedAt:   now.UTC(),
	}
	if booked.BookedAt != nil {
		resp.BookedAt = *booked.BookedAt
	}

	return resp, nil
}
