package memory

import (
	"context"
	"strings"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	accountRepo "github.com/m04kA/SMC-SlotService/internal/infra/storage/account"
)

// AccountRepository бизнесы и пользователи в памяти
type AccountRepository struct {
	store *Store
}

func (r *AccountRepository) CreateBusiness(ctx context.Context, business *domain.Business) (*domain.Business, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	business.ID = r.store.id()
	business.CreatedAt = utcNow()
	r.store.businesses[business.ID] = *business

	return business, nil
}

func (r *AccountRepository) GetBusinessByID(ctx context.Context, id int64) (*domain.Business, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	business, ok := r.store.businesses[id]
	if !ok {
		return nil, accountRepo.ErrBusinessNotFound
	}

	return &business, nil
}

func (r *AccountRepository) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	email := strings.ToLower(user.Email)
	if _, taken := r.store.usersByEmail[email]; taken {
		return nil, accountRepo.ErrEmailTaken
	}

	user.ID = r.store.id()
	user.Email = email
	user.CreatedAt = utcNow()
	r.store.users[user.ID] = *user
	r.store.usersByEmail[email] = user.ID

	return user, nil
}

func (r *AccountRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	id, ok := r.store.usersByEmail[strings.ToLower(email)]
	if !ok {
		return nil, accountRepo.ErrUserNotFound
	}

	user := r.store.users[id]
	return &user, nil
}
