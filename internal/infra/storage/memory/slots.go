package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	slotRepo "github.com/m04kA/SMC-SlotService/internal/infra/storage/slot"
)

// SlotRepository слоты в памяти. CAS выполняется под блокировкой хранилища
type SlotRepository struct {
	store *Store
}

// Persist проверяет и сохраняет пакет. Вызовы для одной (business, service)
// сериализуются мьютексом ключа
func (r *SlotRepository) Persist(ctx context.Context, batch domain.PersistBatch) (*domain.PersistResult, error) {
	if !inTx(ctx) {
		r.store.txMu.RLock()
		defer r.store.txMu.RUnlock()
	}

	unlock := r.store.persistLocks.Lock(serviceKey{businessID: batch.BusinessID, serviceID: batch.ServiceID})
	defer unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	service, ok := r.store.services[batch.ServiceID]
	if !ok || service.BusinessID != batch.BusinessID || service.IsDeleted() {
		r.store.mu.RUnlock()
		return nil, slotRepo.ErrServiceNotFound
	}

	existing := make([]*domain.Slot, 0)
	for _, s := range r.store.slots {
		if s.ServiceID == batch.ServiceID && s.IsActive() {
			s := s
			existing = append(existing, &s)
		}
	}
	r.store.mu.RUnlock()

	accepted, skipped := domain.PlanBatch(existing, batch.Candidates)

	result := &domain.PersistResult{
		Accepted: make([]*domain.Slot, 0, len(accepted)),
		Skipped:  make([]domain.SkippedCandidate, 0, len(skipped)),
	}
	result.Skipped = append(result.Skipped, skipped...)

	// Между чтением и записью другие сохранения этой услуги исключены мьютексом ключа
	r.store.mu.Lock()
	now := utcNow()
	for _, c := range accepted {
		slot := domain.Slot{
			ID:         r.store.id(),
			BusinessID: batch.BusinessID,
			ServiceID:  batch.ServiceID,
			Start:      c.Start.UTC(),
			End:        c.End.UTC(),
			Status:     domain.SlotAvailable,
			BatchID:    batch.BatchID,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		r.store.slots[slot.ID] = slot
		result.Accepted = append(result.Accepted, &slot)
	}
	r.store.mu.Unlock()

	return result, nil
}

func (r *SlotRepository) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	slot, ok := r.store.slots[id]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}

	return r.withServiceName(slot), nil
}

func (r *SlotRepository) GetForBusiness(ctx context.Context, businessID, id int64) (*domain.Slot, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	slot, ok := r.store.slots[id]
	if !ok || slot.BusinessID != businessID {
		return nil, slotRepo.ErrSlotNotFound
	}

	return r.withServiceName(slot), nil
}

func (r *SlotRepository) ListByBusiness(ctx context.Context, businessID int64, filter domain.SlotFilter) ([]*domain.Slot, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	slots := make([]*domain.Slot, 0)
	for _, s := range r.store.slots {
		if s.BusinessID == businessID && filter.Matches(&s) {
			slots = append(slots, r.withServiceName(s))
		}
	}
	sortByStart(slots)

	return slots, nil
}

func (r *SlotRepository) ListAvailable(ctx context.Context, businessID, serviceID int64, window domain.TimeRange) ([]*domain.Slot, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	slots := make([]*domain.Slot, 0)

	service, ok := r.store.services[serviceID]
	if !ok || service.BusinessID != businessID || service.IsDeleted() {
		return slots, nil
	}

	for _, s := range r.store.slots {
		if s.BusinessID == businessID &&
			s.ServiceID == serviceID &&
			s.Status == domain.SlotAvailable &&
			window.Contains(s.Start) {
			slots = append(slots, r.withServiceName(s))
		}
	}
	sortByStart(slots)

	return slots, nil
}

// Transition compare-and-swap состояния под блокировкой хранилища
func (r *SlotRepository) Transition(ctx context.Context, t domain.Transition) (*domain.Slot, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	slot, ok := r.store.slots[t.SlotID]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	if slot.Status != t.From {
		return nil, fmt.Errorf("%w: slot id=%d is %s", slotRepo.ErrStatusMismatch, slot.ID, slot.Status)
	}

	t.At = t.At.UTC()
	updated := t.Apply(slot)
	r.store.slots[slot.ID] = updated

	return r.withServiceName(updated), nil
}

func (r *SlotRepository) HasActiveFutureSlots(ctx context.Context, businessID, serviceID int64, now time.Time) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, s := range r.store.slots {
		if s.BusinessID == businessID &&
			s.ServiceID == serviceID &&
			s.IsActive() &&
			s.End.After(now) {
			return true, nil
		}
	}

	return false, nil
}

// withServiceName копия слота с названием услуги. Вызывается под s.mu
func (r *SlotRepository) withServiceName(slot domain.Slot) *domain.Slot {
	if service, ok := r.store.services[slot.ServiceID]; ok {
		slot.ServiceName = service.Name
	}
	return &slot
}

func sortByStart(slots []*domain.Slot) {
	sort.Slice(slots, func(i, j int) bool {
		if !slots[i].Start.Equal(slots[j].Start) {
			return slots[i].Start.Before(slots[j].Start)
		}
		return slots[i].ID < slots[j].ID
	})
}
