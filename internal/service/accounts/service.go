package accounts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	accountRepo "github.com/m04kA/SMC-SlotService/internal/infra/storage/account"
	"github.com/m04kA/SMC-SlotService/internal/service/accounts/models"
)

// Service регистрация и вход владельцев бизнеса
type Service struct {
	accountRepo AccountRepository
	tokens      TokenIssuer
	txManager   TransactionManager
	logger      Logger
	hashCost    int
}

// NewService создает новый экземпляр сервиса учетных записей
func NewService(
	accountRepo AccountRepository,
	tokens TokenIssuer,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		accountRepo: accountRepo,
		tokens:      tokens,
		txManager:   txManager,
		logger:      logger,
		hashCost:    bcrypt.DefaultCost,
	}
}

// Register создает бизнес и его владельца в одной транзакции и выдает токен
func (s *Service) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	s.logger.Info("Register: registering business for email=%s", email)

	businessName := strings.TrimSpace(req.BusinessName)
	if businessName == "" || utf8.RuneCountInString(businessName) > domain.MaxBusinessNameLength {
		return nil, fmt.Errorf("%w: business_name is required and must be at most %d characters",
			ErrInvalidInput, domain.MaxBusinessNameLength)
	}
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if n := len(req.Password); n < domain.MinPasswordLength || n > domain.MaxPasswordLength {
		return nil, fmt.Errorf("%w: password must be %d to %d bytes long",
			ErrInvalidInput, domain.MinPasswordLength, domain.MaxPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.hashCost)
	if err != nil {
		s.logger.Error("Register: failed to hash password: %v", err)
		return nil, fmt.Errorf("%w: Register - hash password: %v", ErrInternal, err)
	}

	var (
		business *domain.Business
		user     *domain.User
	)

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		business, err = s.accountRepo.CreateBusiness(txCtx, &domain.Business{Name: businessName})
		if err != nil {
			return fmt.Errorf("%w: Register - create business: %v", ErrInternal, err)
		}

		user, err = s.accountRepo.CreateUser(txCtx, &domain.User{
			Email:        email,
			PasswordHash: string(hash),
			FullName:     strings.TrimSpace(req.FullName),
			Role:         domain.RoleBusinessAdmin,
			BusinessID:   business.ID,
		})
		if err != nil {
			if errors.Is(err, accountRepo.ErrEmailTaken) {
				return ErrEmailTaken
			}
			return fmt.Errorf("%w: Register - create user: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailTaken):
			s.logger.Warn("Register: email=%s is already registered", email)
			return nil, err
		case errors.Is(err, ErrInternal):
			s.logger.Error("Register: %v", err)
			return nil, err
		default:
			s.logger.Error("Register: transaction error: %v", err)
			return nil, fmt.Errorf("%w: Register - transaction error: %v", ErrInternal, err)
		}
	}

	token, err := s.tokens.Issue(user.ID, user.Email, user.Role, user.BusinessID)
	if err != nil {
		s.logger.Error("Register: failed to issue token for user=%d: %v", user.ID, err)
		return nil, fmt.Errorf("%w: Register - issue token: %v", ErrInternal, err)
	}

	s.logger.Info("Register: created business id=%d with owner id=%d", business.ID, user.ID)
	return &models.AuthResponse{
		Token:    token,
		User:     models.FromDomainUser(user),
		Business: models.FromDomainBusiness(business),
	}, nil
}

// Login проверяет пароль и выдает токен.
// Неизвестный email и неверный пароль неразличимы для вызывающего
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	s.logger.Info("Login: email=%s", email)

	user, err := s.accountRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, accountRepo.ErrUserNotFound) {
			s.logger.Warn("Login: unknown email=%s", email)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Login: repository error for email=%s: %v", email, err)
		return nil, fmt.Errorf("%w: Login - repository error: %v", ErrInternal, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("Login: wrong password for user=%d", user.ID)
		return nil, ErrInvalidCredentials
	}

	business, err := s.accountRepo.GetBusinessByID(ctx, user.BusinessID)
	if err != nil {
		s.logger.Error("Login: failed to get business id=%d: %v", user.BusinessID, err)
		return nil, fmt.Errorf("%w: Login - get business: %v", ErrInternal, err)
	}

	token, err := s.tokens.Issue(user.ID, user.Email, user.Role, user.BusinessID)
	if err != nil {
		s.logger.Error("Login: failed to issue token for user=%d: %v", user.ID, err)
		return nil, fmt.Errorf("%w: Login - issue token: %v", ErrInternal, err)
	}

	s.logger.Info("Login: user=%d logged in", user.ID)
	return &models.AuthResponse{
		Token:    token,
		User:     models.FromDomainUser(user),
		Business: models.FromDomainBusiness(business),
	}, nil
}
