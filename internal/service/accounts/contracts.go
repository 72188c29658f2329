package accounts

import (
	"context"

	"github.com/m04kA/SMC-SlotService/internal/domain"
)

// AccountRepository интерфейс репозитория учетных записей
type AccountRepository interface {
	CreateBusiness(ctx context.Context, business *domain.Business) (*domain.Business, error)
	GetBusinessByID(ctx context.Context, id int64) (*domain.Business, error)
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

// TokenIssuer выпускает токены доступа
type TokenIssuer interface {
	Issue(userID int64, email, role string, businessID int64) (string, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
