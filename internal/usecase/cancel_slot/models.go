package cancel_slot

import "github.com/m04kA/SMC-SlotService/internal/domain"

// Request модель запроса на отмену слота владельцем
type Request struct {
	BusinessID int64 // ID бизнеса из токена
	SlotID     int64 // ID слота
}

// Response отмененный слот
type Response struct {
	Slot *domain.Slot
}
