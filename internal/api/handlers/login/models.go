package login

import (
	"github.com/m04kA/SMC-SlotService/internal/service/accounts/models"
)

// LoginResponse HTTP ответ на успешный вход
type LoginResponse struct {
	Message string              `json:"message"`
	Token   string              `json:"token"`
	User    models.UserResponse `json:"user"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP модель
func FromServiceResponse(resp *models.AuthResponse) *LoginResponse {
	return &LoginResponse{
		Message: msgSuccess,
		Token:   resp.Token,
		User:    resp.User,
	}
}
