package models

import (
	"time"

	"github.com/m04kA/SMC-SlotService/internal/domain"
)

// Request модели

// RegisterRequest регистрация бизнеса вместе с его владельцем
type RegisterRequest struct {
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required"`
	FullName     string `json:"full_name"`
	BusinessName string `json:"business_name" validate:"required"`
}

// LoginRequest вход по email и паролю
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Response модели

// UserResponse пользователь без хеша пароля
type UserResponse struct {
	ID         int64     `json:"id"`
	Email      string    `json:"email"`
	FullName   string    `json:"full_name"`
	Role       string    `json:"role"`
	BusinessID int64     `json:"business_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// BusinessResponse бизнес
type BusinessResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse токен и данные учетной записи
type AuthResponse struct {
	Token    string            `json:"token"`
	User     UserResponse      `json:"user"`
	Business *BusinessResponse `json:"business,omitempty"`
}

// Методы конвертации

// FromDomainUser конвертирует пользователя в DTO
func FromDomainUser(u *domain.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		FullName:   u.FullName,
		Role:       u.Role,
		BusinessID: u.BusinessID,
		CreatedAt:  u.CreatedAt,
	}
}

// FromDomainBusiness конвертирует бизнес в DTO
func FromDomainBusiness(b *domain.Business) *BusinessResponse {
	if b == nil {
		return nil
	}
	return &BusinessResponse{
		ID:        b.ID,
		Name:      b.Name,
		CreatedAt: b.CreatedAt,
	}
}
