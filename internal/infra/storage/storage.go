package storage

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	accountRepo "github.com/m04kA/SMC-SlotService/internal/infra/storage/account"
	"github.com/m04kA/SMC-SlotService/internal/infra/storage/memory"
	serviceRepo "github.com/m04kA/SMC-SlotService/internal/infra/storage/service"
	slotRepo "github.com/m04kA/SMC-SlotService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-SlotService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlotService/pkg/txmanager"
)

// ServiceRepository каталог услуг
type ServiceRepository interface {
	Create(ctx context.Context, service *domain.Service) (*domain.Service, error)
	GetByID(ctx context.Context, businessID, id int64) (*domain.Service, error)
	ListByBusiness(ctx context.Context, businessID int64) ([]*domain.Service, error)
	SoftDelete(ctx context.Context, businessID, id int64, at time.Time) error
}

// SlotRepository авторитетный источник состояния слотов
type SlotRepository interface {
	Persist(ctx context.Context, batch domain.PersistBatch) (*domain.PersistResult, error)
	GetByID(ctx context.Context, id int64) (*domain.Slot, error)
	GetForBusiness(ctx context.Context, businessID, id int64) (*domain.Slot, error)
	ListByBusiness(ctx context.Context, businessID int64, filter domain.SlotFilter) ([]*domain.Slot, error)
	ListAvailable(ctx context.Context, businessID, serviceID int64, window domain.TimeRange) ([]*domain.Slot, error)
	Transition(ctx context.Context, t domain.Transition) (*domain.Slot, error)
	HasActiveFutureSlots(ctx context.Context, businessID, serviceID int64, now time.Time) (bool, error)
}

// AccountRepository бизнесы и их владельцы
type AccountRepository interface {
	CreateBusiness(ctx context.Context, business *domain.Business) (*domain.Business, error)
	GetBusinessByID(ctx context.Context, id int64) (*domain.Business, error)
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

// TransactionManager выполняет функцию в транзакции хранилища
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Pinger проверка доступности хранилища
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Storage набор репозиториев одной реализации хранилища
type Storage struct {
	Driver    string
	Services  ServiceRepository
	Slots     SlotRepository
	Accounts  AccountRepository
	TxManager TransactionManager
	Pinger    Pinger
}

// NewPostgres собирает репозитории поверх обернутого метриками соединения
func NewPostgres(db *dbmetrics.DB) *Storage {
	txManager := txmanager.NewTransactionManager(db)

	return &Storage{
		Driver:    "postgres",
		Services:  serviceRepo.NewRepository(db),
		Slots:     slotRepo.NewRepository(db, txManager),
		Accounts:  accountRepo.NewRepository(db),
		TxManager: txManager,
		Pinger:    db,
	}
}

// NewMemory хранилище в памяти процесса, данные теряются при остановке
func NewMemory() *Storage {
	store := memory.NewStore()

	return &Storage{
		Driver:    "memory",
		Services:  store.Services(),
		Slots:     store.Slots(),
		Accounts:  store.Accounts(),
		TxManager: store.TxManager(),
		Pinger:    store,
	}
}
