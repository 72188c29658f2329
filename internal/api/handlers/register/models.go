package register

import (
	"github.com/m04kA/SMC-SlotService/internal/service/accounts/models"
)

// RegisterResponse HTTP ответ на регистрацию бизнеса
type RegisterResponse struct {
	Message  string                   `json:"message"`
	Token    string                   `json:"token"`
	User     models.UserResponse      `json:"user"`
	Business *models.BusinessResponse `json:"business"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP модель
func FromServiceResponse(resp *models.AuthResponse) *RegisterResponse {
	return &RegisterResponse{
		Message:  msgSuccess,
		Token:    resp.Token,
		User:     resp.User,
		Business: resp.Business,
	}
}
