package book_slot

import (
	"time"

	bookSlot "github.com/m04kA/SMC-SlotService/internal/usecase/book_slot"
)

// BookSlotRequest данные клиента для бронирования
type BookSlotRequest struct {
	CustomerName  string  `json:"customer_name" validate:"required"`
	CustomerEmail string  `json:"customer_email" validate:"required"`
	CustomerPhone *string `json:"customer_phone,omitempty"`
}

// ConfirmationResponse подтверждение бронирования
type ConfirmationResponse struct {
	Message       string    `json:"message"`
	SlotID        int64     `json:"slot_id"`
	ServiceID     int64     `json:"service_id"`
	BusinessID    int64     `json:"business_id"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	CustomerPhone *string   `json:"customer_phone,omitempty"`
	BookedAt      time.Time `json:"booked_at"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *BookSlotRequest) ToUseCaseRequest(slotID int64) *bookSlot.Request {
	return &bookSlot.Request{
		SlotID:        slotID,
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		CustomerPhone: r.CustomerPhone,
	}
}

// FromUseCaseResponse конвертирует подтверждение use case в HTTP ответ
func FromUseCaseResponse(resp *bookSlot.Response) *ConfirmationResponse {
	return &ConfirmationResponse{
		Message:       msgBooked,
		SlotID:        resp.SlotID,
		ServiceID:     resp.ServiceID,
		BusinessID:    resp.BusinessID,
		StartTime:     resp.Start,
		EndTime:       resp.End,
		CustomerName:  resp.Customer.Name,
		CustomerEmail: resp.Customer.Email,
		CustomerPhone: resp.Customer.Phone,
		BookedAt:      resp.BookedAt,
	}
}
