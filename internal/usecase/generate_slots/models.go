package generate_slots

import (
	"github.com/m04kA/SMC-SlotService/internal/domain"
)

// Request модель запроса на генерацию слотов
type Request struct {
	BusinessID      int64    // ID бизнеса из токена
	ServiceID       int64    // ID услуги
	StartDate       string   // Первая дата, "YYYY-MM-DD"
	EndDate         string   // Последняя дата включительно
	StartTime       string   // Начало рабочего окна, "HH:MM"
	EndTime         string   // Конец рабочего окна (не включается)
	IntervalMinutes int      // Шаг между началами слотов
	ExcludeWeekdays []string // Пропускаемые дни недели ("sunday", ...)
}

// Response результат генерации: частичный успех не является ошибкой
type Response struct {
	BatchID   string
	ServiceID int64
	Accepted  []*domain.Slot
	Skipped   []domain.SkippedCandidate
}

func domainBatch(businessID, serviceID int64, batchID string, candidates []domain.SlotCandidate) domain.PersistBatch {
	return domain.PersistBatch{
		BusinessID: businessID,
		ServiceID:  serviceID,
		BatchID:    batchID,
		Candidates: candidates,
	}
}
