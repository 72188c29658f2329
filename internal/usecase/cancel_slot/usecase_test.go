package cancel_slot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	"github.com/m04kA/SMC-SlotService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SlotService/pkg/logger"
)

type counter struct{ n int }

func (c *counter) RecordCancellation() { c.n++ }

func setup(t *testing.T) (*UseCase, *memory.Store, *counter, int64, int64) {
	t.Helper()
	store := memory.NewStore()
	ctx := context.Background()

	business, err := store.Accounts().CreateBusiness(ctx, &domain.Business{Name: "Barber"})
	require.NoError(t, err)
	service, err := store.Services().Create(ctx, &domain.Service{BusinessID: business.ID, Name: "Haircut", DurationMinutes: 30})
	require.NoError(t, err)

	start := time.Date(2030, 1, 7, 9, 0, 0, 0, time.UTC)
	res, err := store.Slots().Persist(ctx, domain.PersistBatch{
		BusinessID: business.ID,
		ServiceID:  service.ID,
		Candidates: []domain.SlotCandidate{{Start: start, End: start.Add(30 * time.Minute)}},
	})
	require.NoError(t, err)

	c := &counter{}
	return NewUseCase(store.Slots(), c, logger.Nop()), store, c, business.ID, res.Accepted[0].ID
}

func TestExecute_CancelAvailable(t *testing.T) {
	uc, _, c, businessID, slotID := setup(t)

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: businessID, SlotID: slotID})
	require.NoError(t, err)
	assert.Equal(t, domain.SlotCancelled, resp.Slot.Status)
	assert.NotNil(t, resp.Slot.CancelledAt)
	assert.Equal(t, "Haircut", resp.Slot.ServiceName)
	assert.Equal(t, 1, c.n)

	_, err = uc.Execute(context.Background(), &Request{BusinessID: businessID, SlotID: slotID})
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestExecute_CancelBooked(t *testing.T) {
	uc, store, _, businessID, slotID := setup(t)
	ctx := context.Background()

	_, err := store.Slots().Transition(ctx, domain.Transition{
		SlotID:   slotID,
		From:     domain.SlotAvailable,
		To:       domain.SlotBooked,
		Customer: &domain.Customer{Name: "Ann", Email: "ann@example.com"},
		At:       time.Now(),
	})
	require.NoError(t, err)

	resp, err := uc.Execute(ctx, &Request{BusinessID: businessID, SlotID: slotID})
	require.NoError(t, err)
	assert.Equal(t, domain.SlotCancelled, resp.Slot.Status)
	require.NotNil(t, resp.Slot.Customer, "customer is kept for audit")
}

func TestExecute_ForeignBusiness(t *testing.T) {
	uc, store, _, _, slotID := setup(t)

	other, err := store.Accounts().CreateBusiness(context.Background(), &domain.Business{Name: "Other"})
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), &Request{BusinessID: other.ID, SlotID: slotID})
	assert.ErrorIs(t, err, ErrSlotNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

type racingStore struct {
	SlotStore
}

// GetForBusiness отдает устаревшее состояние, будто слот забронировали после чтения
func (r racingStore) GetForBusiness(ctx context.Context, businessID, id int64) (*domain.Slot, error) {
	slot, err := r.SlotStore.GetForBusiness(ctx, businessID, id)
	if err != nil {
		return nil, err
	}
	stale := *slot
	stale.Status = domain.SlotAvailable
	return &stale, nil
}

func TestExecute_LostRace(t *testing.T) {
	_, store, c, businessID, slotID := setup(t)
	ctx := context.Background()

	_, err := store.Slots().Transition(ctx, domain.Transition{
		SlotID:   slotID,
		From:     domain.SlotAvailable,
		To:       domain.SlotBooked,
		Customer: &domain.Customer{Name: "Ann", Email: "ann@example.com"},
		At:       time.Now(),
	})
	require.NoError(t, err)

	uc := NewUseCase(racingStore{store.Slots()}, c, logger.Nop())
	_, err = uc.Execute(ctx, &Request{BusinessID: businessID, SlotID: slotID})
	assert.ErrorIs(t, err, ErrStateChanged)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Zero(t, c.n)
}
