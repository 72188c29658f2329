package get_public_slots

import "github.com/m04kA/SMC-SlotService/internal/domain"

// Request модель публичного запроса свободных слотов
type Request struct {
	BusinessID int64  // ID бизнеса
	ServiceID  int64  // ID услуги
	Date       string // Дата "YYYY-MM-DD" (опционально)
}

// Response список свободных слотов, упорядоченный по началу
type Response struct {
	Slots []*domain.Slot
}
