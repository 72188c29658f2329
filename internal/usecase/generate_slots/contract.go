package generate_slots

import (
	"context"

	"github.com/m04kA/SMC-SlotService/internal/domain"
)

// ServiceRepository интерфейс каталога услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, businessID, id int64) (*domain.Service, error)
}

// SlotStore интерфейс хранилища слотов
type SlotStore interface {
	Persist(ctx context.Context, batch domain.PersistBatch) (*domain.PersistResult, error)
}

// Metrics интерфейс для учета результатов генерации
type Metrics interface {
	RecordGeneration(accepted, skipped int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
