package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotService/internal/domain"
)

func TestNewMemory_SharesOneStore(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	assert.Equal(t, "memory", s.Driver)
	require.NoError(t, s.Pinger.PingContext(ctx))

	var serviceID int64
	err := s.TxManager.Do(ctx, func(txCtx context.Context) error {
		business, err := s.Accounts.CreateBusiness(txCtx, &domain.Business{Name: "Barber"})
		if err != nil {
			return err
		}
		service, err := s.Services.Create(txCtx, &domain.Service{BusinessID: business.ID, Name: "Haircut", DurationMinutes: 30})
		if err != nil {
			return err
		}
		serviceID = service.ID
		return nil
	})
	require.NoError(t, err)

	has, err := s.Slots.HasActiveFutureSlots(ctx, 1, serviceID, time.Now())
	require.NoError(t, err)
	assert.False(t, has)
}
