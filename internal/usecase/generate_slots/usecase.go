package generate_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	serviceRepo "github.com/m04kA/SMC-SlotService/internal/infra/storage/service"
	slotRepo "github.com/m04kA/SMC-SlotService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-SlotService/pkg/tracing"
)

// Options ограничения генерации из конфигурации
type Options struct {
	Location      *time.Location
	MaxDays       int
	MaxCandidates int
}

// UseCase use case генерации слотов по ежедневному окну
type UseCase struct {
	serviceRepo ServiceRepository
	slotStore   SlotStore
	metrics     Metrics
	logger      Logger
	opts        Options
	newBatchID  func() string
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	serviceRepo ServiceRepository,
	slotStore SlotStore,
	metrics Metrics,
	logger Logger,
	opts Options,
) *UseCase {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &UseCase{
		serviceRepo: serviceRepo,
		slotStore:   slotStore,
		metrics:     metrics,
		logger:      logger,
		opts:        opts,
		newBatchID:  uuid.NewString,
	}
}

// Execute проверяет запрос, разворачивает окно и сохраняет кандидатов.
// Пересекающиеся кандидаты пропускаются по одному, остальные сохраняются
func (uc *UseCase) Execute(ctx context.Context, req *Request) (resp *Response, err error) {
	ctx, span := tracing.AddSpan(ctx, "usecase.generate_slots",
		attribute.Int64("business.id", req.BusinessID),
		attribute.Int64("service.id", req.ServiceID),
	)
	defer func() {
		tracing.RecordError(span, err)
		span.End()
	}()

	uc.logger.Info("GenerateSlots: business=%d, service=%d, dates=%s..%s, window=%s-%s, interval=%d",
		req.BusinessID, req.ServiceID, req.StartDate, req.EndDate, req.StartTime, req.EndTime, req.IntervalMinutes)

	// 1. Валидация входных данных
	window, err := validateRequest(req, uc.opts.MaxDays)
	if err != nil {
		uc.logger.Warn("GenerateSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем услугу бизнеса
	service, err := uc.serviceRepo.GetByID(ctx, req.BusinessID, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("GenerateSlots: service id=%d not found for business id=%d", req.ServiceID, req.BusinessID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GenerateSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 3. Разворачиваем окно с длительностью услуги
	window.DurationMinutes = service.DurationMinutes
	window.Location = uc.opts.Location

	candidates, err := Expand(*window, uc.opts.MaxCandidates)
	if err != nil {
		uc.logger.Warn("GenerateSlots: expansion rejected: %v", err)
		return nil, err
	}

	resp = &Response{
		BatchID:   uc.newBatchID(),
		ServiceID: service.ID,
	}
	span.SetAttributes(
		attribute.String("batch.id", resp.BatchID),
		attribute.Int("candidates", len(candidates)),
	)

	// 4. Сохраняем пакет, пересечения отсеиваются хранилищем
	result, err := uc.slotStore.Persist(ctx, domainBatch(req.BusinessID, service.ID, resp.BatchID, candidates))
	if err != nil {
		if errors.Is(err, slotRepo.ErrServiceNotFound) {
			// Услуга удалена между шагами 2 и 4
			uc.logger.Warn("GenerateSlots: service id=%d disappeared before persist", service.ID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GenerateSlots: failed to persist batch %s: %v", resp.BatchID, err)
		return nil, fmt.Errorf("%w: failed to persist slots: %v", ErrInternal, err)
	}

	resp.Accepted = result.Accepted
	resp.Skipped = result.Skipped

	uc.metrics.RecordGeneration(len(resp.Accepted), len(resp.Skipped))
	uc.logger.Info("GenerateSlots: batch %s for service id=%d: accepted=%d, skipped=%d",
		resp.BatchID, service.ID, len(resp.Accepted), len(resp.Skipped))

	return resp, nil
}
