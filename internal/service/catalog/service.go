package catalog

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	serviceRepo "github.com/m04kA/SMC-SlotService/internal/infra/storage/service"
	"github.com/m04kA/SMC-SlotService/internal/service/catalog/models"
)

// Service каталог услуг бизнеса
type Service struct {
	serviceRepo  ServiceRepository
	slotRepo     SlotRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(
	serviceRepo ServiceRepository,
	slotRepo SlotRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		serviceRepo:  serviceRepo,
		slotRepo:     slotRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Create создает услугу бизнеса
func (s *Service) Create(ctx context.Context, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Create: creating service for business=%d", req.BusinessID)

	service := req.ToDomain()
	if err := validateService(service); err != nil {
		s.logger.Warn("Create: validation failed for business=%d: %v", req.BusinessID, err)
		return nil, err
	}

	created, err := s.serviceRepo.Create(ctx, service)
	if err != nil {
		s.logger.Error("Create: repository error for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: created service id=%d for business=%d", created.ID, created.BusinessID)
	return models.FromDomainService(created), nil
}

// List возвращает услуги бизнеса в порядке создания
func (s *Service) List(ctx context.Context, businessID int64) ([]models.ServiceResponse, error) {
	services, err := s.serviceRepo.ListByBusiness(ctx, businessID)
	if err != nil {
		s.logger.Error("List: repository error for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainServiceList(services), nil
}

// ListPublic возвращает услуги бизнеса без аутентификации
func (s *Service) ListPublic(ctx context.Context, businessID int64) ([]models.PublicServiceResponse, error) {
	if businessID <= 0 {
		return nil, fmt.Errorf("%w: business_id must be positive", ErrInvalidInput)
	}

	services, err := s.serviceRepo.ListByBusiness(ctx, businessID)
	if err != nil {
		s.logger.Error("ListPublic: repository error for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: ListPublic - repository error: %v", ErrInternal, err)
	}

	return models.ToPublicServiceList(services), nil
}

// Delete мягко удаляет услугу.
// Услугу с будущими слотами в состоянии available или booked удалить нельзя
func (s *Service) Delete(ctx context.Context, businessID, id int64) error {
	s.logger.Info("Delete: deleting service id=%d for business=%d", id, businessID)

	now := s.timeProvider.Now()

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// Блокируем строку услуги, генерация для нее ждет завершения
		if _, err := s.serviceRepo.GetByID(txCtx, businessID, id); err != nil {
			if errors.Is(err, serviceRepo.ErrServiceNotFound) {
				return ErrServiceNotFound
			}
			return fmt.Errorf("%w: Delete - get service: %v", ErrInternal, err)
		}

		busy, err := s.slotRepo.HasActiveFutureSlots(txCtx, businessID, id, now)
		if err != nil {
			return fmt.Errorf("%w: Delete - check slots: %v", ErrInternal, err)
		}
		if busy {
			return ErrServiceInUse
		}

		if err := s.serviceRepo.SoftDelete(txCtx, businessID, id, now); err != nil {
			if errors.Is(err, serviceRepo.ErrServiceNotFound) {
				return ErrServiceNotFound
			}
			return fmt.Errorf("%w: Delete - soft delete: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrServiceNotFound), errors.Is(err, ErrServiceInUse):
			s.logger.Warn("Delete: service id=%d for business=%d: %v", id, businessID, err)
			return err
		case errors.Is(err, ErrInternal):
			s.logger.Error("Delete: %v", err)
			return err
		default:
			s.logger.Error("Delete: transaction error for service id=%d: %v", id, err)
			return fmt.Errorf("%w: Delete - transaction error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("Delete: service id=%d deleted", id)
	return nil
}

// validateService проверяет ограничения каталога
func validateService(service *domain.Service) error {
	if service.BusinessID <= 0 {
		return fmt.Errorf("%w: business id must be positive", ErrInvalidInput)
	}
	if service.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(service.Name) > domain.MaxServiceNameLength {
		return fmt.Errorf("%w: name is longer than %d characters", ErrInvalidInput, domain.MaxServiceNameLength)
	}
	if service.Description != nil && utf8.RuneCountInString(*service.Description) > domain.MaxServiceDescriptionLength {
		return fmt.Errorf("%w: description is longer than %d characters", ErrInvalidInput, domain.MaxServiceDescriptionLength)
	}
	if service.DurationMinutes < domain.MinServiceDurationMinutes || service.DurationMinutes > domain.MaxServiceDurationMinutes {
		return fmt.Errorf("%w: duration must be between %d and %d minutes",
			ErrInvalidInput, domain.MinServiceDurationMinutes, domain.MaxServiceDurationMinutes)
	}
	return nil
}
