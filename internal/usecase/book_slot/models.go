package book_slot

import (
	"time"

	"github.com/m04kA/SMC-SlotService/internal/domain"
)

// Request модель запроса на бронирование слота
type Request struct {
	SlotID        int64   // ID слота
	CustomerName  string  // Имя клиента
	CustomerEmail string  // Email клиента
	CustomerPhone *string // Телефон (опционально)
}

// Response подтверждение бронирования
type Response struct {
	SlotID     int64
	ServiceID  int64
	BusinessID int64
	Start      time.Time
	End        time.Time
	Customer   domain.Customer
	BookedAt   time.Time
}
