//go:build integration

package account

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	"github.com/m04kA/SMC-SlotService/internal/infra/storage/pgtest"
)

func TestRepository_BusinessAndUsers(t *testing.T) {
	db := pgtest.StartPostgres(t)
	repo := NewRepository(db)
	ctx := context.Background()

	business, err := repo.CreateBusiness(ctx, &domain.Business{Name: "Barber"})
	require.NoError(t, err)
	assert.NotZero(t, business.ID)

	got, err := repo.GetBusinessByID(ctx, business.ID)
	require.NoError(t, err)
	assert.Equal(t, "Barber", got.Name)

	_, err = repo.GetBusinessByID(ctx, business.ID+1000)
	assert.ErrorIs(t, err, ErrBusinessNotFound)

	user, err := repo.CreateUser(ctx, &domain.User{
		Email:        "Owner@Example.com",
		PasswordHash: "hash",
		FullName:     "Owner",
		Role:         domain.RoleBusinessAdmin,
		BusinessID:   business.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "owner@example.com", user.Email)

	_, err = repo.CreateUser(ctx, &domain.User{
		Email:        "OWNER@example.com",
		PasswordHash: "hash",
		Role:         domain.RoleBusinessAdmin,
		BusinessID:   business.ID,
	})
	assert.ErrorIs(t, err, ErrEmailTaken)

	found, err := repo.GetUserByEmail(ctx, "owner@EXAMPLE.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
	assert.Equal(t, business.ID, found.BusinessID)

	_, err = repo.GetUserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
