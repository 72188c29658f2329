package catalog

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SlotService/internal/domain"
)

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	Create(ctx context.Context, service *domain.Service) (*domain.Service, error)
	GetByID(ctx context.Context, businessID, id int64) (*domain.Service, error)
	ListByBusiness(ctx context.Context, businessID int64) ([]*domain.Service, error)
	SoftDelete(ctx context.Context, businessID, id int64, at time.Time) error
}

// SlotRepository интерфейс репозитория слотов (для политики удаления)
type SlotRepository interface {
	HasActiveFutureSlots(ctx context.Context, businessID, serviceID int64, now time.Time) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
