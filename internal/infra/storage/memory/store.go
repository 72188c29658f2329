package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-SlotService/internal/domain"
)

// Store хранилище в памяти процесса (драйвер "memory").
// Представления Services, Slots и Accounts разделяют одно состояние
type Store struct {
	mu sync.RWMutex

	// txMu: транзакция берет его на запись, Persist на чтение,
	// поэтому удаление услуги не пересекается с генерацией
	txMu         sync.RWMutex
	persistLocks *keyedMutex

	nextID int64

	businesses   map[int64]domain.Business
	users        map[int64]domain.User
	usersByEmail map[string]int64
	services     map[int64]domain.Service
	slots        map[int64]domain.Slot
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		persistLocks: newKeyedMutex(),
		businesses:   make(map[int64]domain.Business),
		users:        make(map[int64]domain.User),
		usersByEmail: make(map[string]int64),
		services:     make(map[int64]domain.Service),
		slots:        make(map[int64]domain.Slot),
	}
}

// Services репозиторий услуг
func (s *Store) Services() *ServiceRepository {
	return &ServiceRepository{store: s}
}

// Slots репозиторий слотов
func (s *Store) Slots() *SlotRepository {
	return &SlotRepository{store: s}
}

// Accounts репозиторий учетных записей
func (s *Store) Accounts() *AccountRepository {
	return &AccountRepository{store: s}
}

// TxManager менеджер "транзакций" поверх хранилища
func (s *Store) TxManager() *TxManager {
	return &TxManager{store: s}
}

// PingContext всегда успешен, пока контекст жив
func (s *Store) PingContext(ctx context.Context) error {
	return ctx.Err()
}

// id выдает следующий идентификатор. Вызывается под s.mu
func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

type txKey struct{}

// TxManager сериализует функции, требующие согласованности с Persist.
// Изменения не откатываются при ошибке: все операции хранилища атомарны по отдельности
type TxManager struct {
	store *Store
}

func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if inTx(ctx) {
		return fn(ctx)
	}

	m.store.txMu.Lock()
	defer m.store.txMu.Unlock()

	return fn(context.WithValue(ctx, txKey{}, true))
}

// DoReadOnly допускает параллельные чтения, но не пересекается с Do.
// Внутри fn запись не выполняется
func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	if inTx(ctx) {
		return fn(ctx)
	}

	m.store.txMu.RLock()
	defer m.store.txMu.RUnlock()

	return fn(context.WithValue(ctx, txKey{}, true))
}

func inTx(ctx context.Context) bool {
	v, _ := ctx.Value(txKey{}).(bool)
	return v
}

func utcNow() time.Time {
	return time.Now().UTC()
}
