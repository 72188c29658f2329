package get_public_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	serviceRepo "github.com/m04kA/SMC-SlotService/internal/infra/storage/service"
	"github.com/m04kA/SMC-SlotService/pkg/tracing"
)

// UseCase use case публичного списка свободных слотов
type UseCase struct {
	serviceRepo  ServiceRepository
	slotStore    SlotStore
	txManager    TransactionManager
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case.
// location задает часы бизнеса, в которых трактуется дата запроса
func NewUseCase(
	serviceRepo ServiceRepository,
	slotStore SlotStore,
	txManager TransactionManager,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		serviceRepo:  serviceRepo,
		slotStore:    slotStore,
		txManager:    txManager,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute возвращает свободные слоты пары (бизнес, услуга).
// Без даты возвращаются только слоты, начинающиеся позже текущего момента
func (uc *UseCase) Execute(ctx context.Context, req *Request) (resp *Response, err error) {
	ctx, span := tracing.AddSpan(ctx, "usecase.get_public_slots",
		attribute.Int64("business.id", req.BusinessID),
		attribute.Int64("service.id", req.ServiceID),
	)
	defer func() {
		tracing.RecordError(span, err)
		span.End()
	}()

	uc.logger.Info("GetPublicSlots: business=%d, service=%d, date=%q", req.BusinessID, req.ServiceID, req.Date)

	// 1. Валидация входных данных
	if req.BusinessID <= 0 {
		return nil, fmt.Errorf("%w: business_id must be positive", ErrInvalidInput)
	}
	if req.ServiceID <= 0 {
		return nil, fmt.Errorf("%w: service_id must be positive", ErrInvalidInput)
	}

	// 2. Определяем окно выборки
	window, err := uc.window(req.Date)
	if err != nil {
		uc.logger.Warn("GetPublicSlots: validation failed: %v", err)
		return nil, err
	}

	// Проверка услуги и выборка читают один снимок:
	// удаление услуги между ними не отдаст ее слоты
	var slots []*domain.Slot
	err = uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		// 3. Услуга должна принадлежать бизнесу
		if _, err := uc.serviceRepo.GetByID(txCtx, req.BusinessID, req.ServiceID); err != nil {
			if errors.Is(err, serviceRepo.ErrServiceNotFound) {
				uc.logger.Warn("GetPublicSlots: service id=%d not found for business id=%d", req.ServiceID, req.BusinessID)
				return ErrServiceNotFound
			}
			uc.logger.Error("GetPublicSlots: failed to get service id=%d: %v", req.ServiceID, err)
			return fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}

		// 4. Только свободные слоты этой пары
		var err error
		slots, err = uc.slotStore.ListAvailable(txCtx, req.BusinessID, req.ServiceID, window)
		if err != nil {
			uc.logger.Error("GetPublicSlots: failed to list slots: %v", err)
			return fmt.Errorf("%w: failed to list slots: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrServiceNotFound) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		uc.logger.Error("GetPublicSlots: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	uc.logger.Info("GetPublicSlots: found %d slots", len(slots))

	return &Response{Slots: slots}, nil
}

// window сутки даты в часах бизнеса либо [now, ∞)
func (uc *UseCase) window(date string) (domain.TimeRange, error) {
	now := uc.timeProvider.Now().UTC()

	if date == "" {
		return domain.TimeRange{From: now}, nil
	}

	day, err := time.ParseInLocation(domain.DateFormat, date, uc.location)
	if err != nil {
		return domain.TimeRange{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrInvalidInput, date)
	}

	return domain.TimeRange{
		From: day.UTC(),
		To:   day.AddDate(0, 0, 1).UTC(),
	}, nil
}
