package generate_slots

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	"github.com/m04kA/SMC-SlotService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SlotService/pkg/logger"
)

type metricsStub struct {
	accepted, skipped int
}

func (m *metricsStub) RecordGeneration(accepted, skipped int) {
	m.accepted += accepted
	m.skipped += skipped
}

type fixture struct {
	store      *memory.Store
	uc         *UseCase
	metrics    *metricsStub
	businessID int64
	serviceID  int64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	ctx := context.Background()

	business, err := store.Accounts().CreateBusiness(ctx, &domain.Business{Name: "Barber"})
	require.NoError(t, err)
	service, err := store.Services().Create(ctx, &domain.Service{
		BusinessID:      business.ID,
		Name:            "Haircut",
		DurationMinutes: 30,
	})
	require.NoError(t, err)

	m := &metricsStub{}
	uc := NewUseCase(store.Services(), store.Slots(), m, logger.Nop(), Options{
		MaxDays:       domain.DefaultMaxGenerationDays,
		MaxCandidates: domain.DefaultMaxCandidates,
	})

	return &fixture{store: store, uc: uc, metrics: m, businessID: business.ID, serviceID: service.ID}
}

func (f *fixture) request(interval int) *Request {
	return &Request{
		BusinessID:      f.businessID,
		ServiceID:       f.serviceID,
		StartDate:       "2030-01-07",
		EndDate:         "2030-01-07",
		StartTime:       "09:00",
		EndTime:         "10:00",
		IntervalMinutes: interval,
	}
}

func TestExecute_IntervalEqualsDuration(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), f.request(30))
	require.NoError(t, err)

	assert.NotEmpty(t, resp.BatchID)
	require.Len(t, resp.Accepted, 2)
	assert.Empty(t, resp.Skipped)
	assert.Equal(t, "09:00", resp.Accepted[0].Start.Format("15:04"))
	assert.Equal(t, "09:30", resp.Accepted[1].Start.Format("15:04"))
	for _, s := range resp.Accepted {
		assert.Equal(t, resp.BatchID, s.BatchID)
		assert.Equal(t, domain.SlotAvailable, s.Status)
	}
	assert.Equal(t, 2, f.metrics.accepted)
}

func TestExecute_IntervalShorterThanDuration(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), f.request(20))
	require.NoError(t, err)

	require.Len(t, resp.Accepted, 1)
	assert.Equal(t, "09:00", resp.Accepted[0].Start.Format("15:04"))
	require.Len(t, resp.Skipped, 1)
	assert.Equal(t, "09:20", resp.Skipped[0].Candidate.Start.Format("15:04"))
	assert.ErrorIs(t, resp.Skipped[0].Err, domain.ErrConflict)
}

func TestExecute_IdenticalRegenerationSkipsAll(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.uc.Execute(ctx, f.request(30))
	require.NoError(t, err)

	second, err := f.uc.Execute(ctx, f.request(30))
	require.NoError(t, err)

	assert.NotEqual(t, first.BatchID, second.BatchID)
	assert.Empty(t, second.Accepted)
	require.Len(t, second.Skipped, 2)
	assert.Equal(t, first.Accepted[0].ID, second.Skipped[0].ConflictSlotID)
	assert.Equal(t, 2, f.metrics.skipped)
}

func TestExecute_UnknownOrForeignService(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := f.request(30)
	req.ServiceID = 9999
	_, err := f.uc.Execute(ctx, req)
	assert.ErrorIs(t, err, ErrServiceNotFound)
	assert.ErrorIs(t, err, domain.ErrValidation)

	other, err := f.store.Accounts().CreateBusiness(ctx, &domain.Business{Name: "Other"})
	require.NoError(t, err)
	req = f.request(30)
	req.BusinessID = other.ID
	_, err = f.uc.Execute(ctx, req)
	assert.ErrorIs(t, err, ErrServiceNotFound)

	slots, err := f.store.Slots().ListByBusiness(ctx, f.businessID, domain.SlotFilter{})
	require.NoError(t, err)
	assert.Empty(t, slots, "nothing persisted on validation failure")
}

func TestExecute_ValidationPersistsNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := f.request(30)
	req.EndTime = "08:00"
	_, err := f.uc.Execute(ctx, req)
	assert.ErrorIs(t, err, domain.ErrValidation)

	slots, err := f.store.Slots().ListByBusiness(ctx, f.businessID, domain.SlotFilter{})
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestExecute_TooManyCandidates(t *testing.T) {
	f := newFixture(t)
	f.uc.opts.MaxCandidates = 3

	req := f.request(10)
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrTooManyCandidates)
}
