package memory

import (
	"context"
	"sort"
	"time"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	serviceRepo "github.com/m04kA/SMC-SlotService/internal/infra/storage/service"
)

// ServiceRepository услуги в памяти
type ServiceRepository struct {
	store *Store
}

func (r *ServiceRepository) Create(ctx context.Context, service *domain.Service) (*domain.Service, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	service.ID = r.store.id()
	service.CreatedAt = utcNow()
	r.store.services[service.ID] = *service

	return service, nil
}

func (r *ServiceRepository) GetByID(ctx context.Context, businessID, id int64) (*domain.Service, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	service, ok := r.store.services[id]
	if !ok || service.BusinessID != businessID || service.IsDeleted() {
		return nil, serviceRepo.ErrServiceNotFound
	}

	return &service, nil
}

func (r *ServiceRepository) ListByBusiness(ctx context.Context, businessID int64) ([]*domain.Service, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	services := make([]*domain.Service, 0)
	for _, s := range r.store.services {
		if s.BusinessID == businessID && !s.IsDeleted() {
			s := s
			services = append(services, &s)
		}
	}

	sort.Slice(services, func(i, j int) bool {
		if !services[i].CreatedAt.Equal(services[j].CreatedAt) {
			return services[i].CreatedAt.Before(services[j].CreatedAt)
		}
		return services[i].ID < services[j].ID
	})

	return services, nil
}

func (r *ServiceRepository) SoftDelete(ctx context.Context, businessID, id int64, at time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	service, ok := r.store.services[id]
	if !ok || service.BusinessID != businessID || service.IsDeleted() {
		return serviceRepo.ErrServiceNotFound
	}

	deletedAt := at.UTC()
	service.DeletedAt = &deletedAt
	r.store.services[id] = service

	return nil
}
