package get_public_slots

import (
	"time"

	getPublicSlots "github.com/m04kA/SMC-SlotService/internal/usecase/get_public_slots"
)

// PublicSlot свободный слот без данных клиентов
type PublicSlot struct {
	ID          int64     `json:"id"`
	ServiceID   int64     `json:"service_id"`
	ServiceName string    `json:"service_name"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Duration    int       `json:"duration"`
}

// FromUseCaseResponse конвертирует результат use case в HTTP ответ
func FromUseCaseResponse(resp *getPublicSlots.Response) []PublicSlot {
	result := make([]PublicSlot, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		result = append(result, PublicSlot{
			ID:          s.ID,
			ServiceID:   s.ServiceID,
			ServiceName: s.ServiceName,
			StartTime:   s.Start,
			EndTime:     s.End,
			Duration:    s.DurationMinutes(),
		})
	}
	return result
}
