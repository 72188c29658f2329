package account

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/m04kA/SMC-SlotService/internal/domain"
	"github.com/m04kA/SMC-SlotService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlotService/pkg/psqlbuilder"
)

// uniqueViolation код ошибки PostgreSQL unique_violation
const uniqueViolation = "23505"

// Repository репозиторий бизнесов и их владельцев
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория учетных записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateBusiness создает бизнес
func (r *Repository) CreateBusiness(ctx context.Context, business *domain.Business) (*domain.Business, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("businesses").
		Columns("name").
		Values(business.Name).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateBusiness - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&business.ID, &business.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: CreateBusiness - execute insert: %v", ErrExecQuery, err)
	}
	business.CreatedAt = business.CreatedAt.UTC()

	return business, nil
}

// GetBusinessByID получает бизнес по ID
func (r *Repository) GetBusinessByID(ctx context.Context, id int64) (*domain.Business, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "created_at").
		From("businesses").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBusinessByID - build select query: %v", ErrBuildQuery, err)
	}

	var business domain.Business
	err = executor.QueryRowContext(ctx, query, args...).Scan(&business.ID, &business.Name, &business.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrBusinessNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetBusinessByID - scan business: %v", ErrScanRow, err)
	}
	business.CreatedAt = business.CreatedAt.UTC()

	return &business, nil
}

// CreateUser создает пользователя. Email сравнивается без учета регистра
func (r *Repository) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("users").
		Columns("email", "password_hash", "full_name", "role", "business_id").
		Values(strings.ToLower(user.Email), user.PasswordHash, user.FullName, user.Role, user.BusinessID).
		Suffix("RETURNING id, email, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateUser - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&user.ID, &user.Email, &user.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("%w: CreateUser - execute insert: %v", ErrExecQuery, err)
	}
	user.CreatedAt = user.CreatedAt.UTC()

	return user, nil
}

// GetUserByEmail получает пользователя по email
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "email", "password_hash", "full_name", "role", "business_id", "created_at").
		From("users").
		Where(squirrel.Eq{"email": strings.ToLower(email)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetUserByEmail - build select query: %v", ErrBuildQuery, err)
	}

	var user domain.User
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.FullName,
		&user.Role,
		&user.BusinessID,
		&user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetUserByEmail - scan user: %v", ErrScanRow, err)
	}
	user.CreatedAt = user.CreatedAt.UTC()

	return &user, nil
}
