package models

import (
	"time"

	"github.com/m04kA/SMC-SlotService/internal/domain"
)

// Request модели

// ListSlotsRequest фильтр инвентаря владельца в виде строк запроса.
// Пустое значение означает отсутствие фильтра
type ListSlotsRequest struct {
	BusinessID int64
	ServiceID  string // ID услуги
	Status     string // available | booked | cancelled
	From       string // "YYYY-MM-DD" или RFC 3339, включительно
	To         string // "YYYY-MM-DD" включительно или RFC 3339 исключительно
}

// Response модели

// SlotResponse слот для владельца бизнеса
type SlotResponse struct {
	ID          int64     `json:"id"`
	BusinessID  int64     `json:"business_id"`
	ServiceID   int64     `json:"service_id"`
	ServiceName string    `json:"service_name,omitempty"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Duration    int       `json:"duration"`
	Status      string    `json:"status"`
	BatchID     string    `json:"batch_id,omitempty"`

	CustomerName  *string    `json:"customer_name,omitempty"`
	CustomerEmail *string    `json:"customer_email,omitempty"`
	CustomerPhone *string    `json:"customer_phone,omitempty"`
	BookedAt      *time.Time `json:"booked_at,omitempty"`
	CancelledAt   *time.Time `json:"cancelled_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Методы конвертации

// FromDomainSlot конвертирует domain модель в DTO
func FromDomainSlot(s *domain.Slot) *SlotResponse {
	if s == nil {
		return nil
	}

	resp := &SlotResponse{
		ID:          s.ID,
		BusinessID:  s.BusinessID,
		ServiceID:   s.ServiceID,
		ServiceName: s.ServiceName,
		StartTime:   s.Start,
		EndTime:     s.End,
		Duration:    s.DurationMinutes(),
		Status:      string(s.Status),
		BatchID:     s.BatchID,
		BookedAt:    s.BookedAt,
		CancelledAt: s.CancelledAt,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}

	if s.Customer != nil {
		resp.CustomerName = &s.Customer.Name
		resp.CustomerEmail = &s.Customer.Email
		resp.CustomerPhone = s.Customer.Phone
	}

	return resp
}

// FromDomainSlotList конвертирует список слотов
func FromDomainSlotList(slots []*domain.Slot) []SlotResponse {
	result := make([]SlotResponse, 0, len(slots))
	for _, s := range slots {
		result = append(result, *FromDomainSlot(s))
	}
	return result
}
