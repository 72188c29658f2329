package book_slot

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-SlotService/internal/domain"
)

var validate = validator.New()

// validateRequest валидирует запрос и возвращает нормализованные данные клиента
func validateRequest(req *Request) (*domain.Customer, error) {
	if req.SlotID <= 0 {
		return nil, fmt.Errorf("%w: slot id must be positive", ErrInvalidInput)
	}

	name := strings.TrimSpace(req.CustomerName)
	if name == "" {
		return nil, fmt.Errorf("%w: customer_name is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > domain.MaxCustomerNameLength {
		return nil, fmt.Errorf("%w: customer_name is longer than %d characters", ErrInvalidInput, domain.MaxCustomerNameLength)
	}

	email := strings.TrimSpace(req.CustomerEmail)
	if err := validate.Var(email, "required,email"); err != nil {
		return nil, fmt.Errorf("%w: customer_email is not a valid email", ErrInvalidInput)
	}

	customer := &domain.Customer{Name: name, Email: email}

	if req.CustomerPhone != nil {
		phone := strings.TrimSpace(*req.CustomerPhone)
		if utf8.RuneCountInString(phone) > domain.MaxCustomerPhoneLength {
			return nil, fmt.Errorf("%w: customer_phone is longer than %d characters", ErrInvalidInput, domain.MaxCustomerPhoneLength)
		}
		if phone != "" {
			customer.Phone = &phone
		}
	}

	return customer, nil
}
