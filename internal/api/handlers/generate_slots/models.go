package generate_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SlotService/internal/service/slots/models"
	generateSlots "github.com/m04kA/SMC-SlotService/internal/usecase/generate_slots"
)

// GenerateSlotsRequest HTTP запрос на генерацию слотов
type GenerateSlotsRequest struct {
	ServiceID       int64    `json:"service_id" validate:"required,gt=0"`
	StartDate       string   `json:"start_date" validate:"required"` // YYYY-MM-DD
	EndDate         string   `json:"end_date" validate:"required"`   // YYYY-MM-DD
	StartTime       string   `json:"start_time" validate:"required"` // HH:MM
	EndTime         string   `json:"end_time" validate:"required"`   // HH:MM
	IntervalMinutes int      `json:"interval" validate:"required"`   // шаг между началами, минуты
	ExcludeWeekdays []string `json:"exclude_weekdays,omitempty"`
}

// SkippedSlot кандидат, не сохраненный из-за пересечения
type SkippedSlot struct {
	StartTime      time.Time  `json:"start_time"`
	EndTime        time.Time  `json:"end_time"`
	ConflictSlotID *int64     `json:"conflict_slot_id,omitempty"`
	ConflictStart  *time.Time `json:"conflict_start,omitempty"`
	Reason         string     `json:"reason"`
}

// GenerateSlotsResponse частичный результат генерации
type GenerateSlotsResponse struct {
	Message  string                `json:"message"`
	BatchID  string                `json:"batch_id"`
	Accepted []models.SlotResponse `json:"accepted"`
	Skipped  []SkippedSlot         `json:"skipped"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *GenerateSlotsRequest) ToUseCaseRequest(businessID int64) *generateSlots.Request {
	return &generateSlots.Request{
		BusinessID:      businessID,
		ServiceID:       r.ServiceID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		StartTime:       r.StartTime,
		EndTime:         r.EndTime,
		IntervalMinutes: r.IntervalMinutes,
		ExcludeWeekdays: r.ExcludeWeekdays,
	}
}

// FromUseCaseResponse конвертирует результат use case в HTTP ответ
func FromUseCaseResponse(resp *generateSlots.Response) *GenerateSlotsResponse {
	skipped := make([]SkippedSlot, 0, len(resp.Skipped))
	for _, s := range resp.Skipped {
		item := SkippedSlot{
			StartTime: s.Candidate.Start,
			EndTime:   s.Candidate.End,
			Reason:    msgReasonOverlap,
		}
		if s.ConflictSlotID != 0 {
			id := s.ConflictSlotID
			item.ConflictSlotID = &id
		} else {
			item.Reason = msgReasonBatchOverlap
		}
		if !s.ConflictStart.IsZero() {
			start := s.ConflictStart
			item.ConflictStart = &start
		}
		skipped = append(skipped, item)
	}

	return &GenerateSlotsResponse{
		Message:  fmt.Sprintf(msgGenerated, len(resp.Accepted), len(resp.Skipped)),
		BatchID:  resp.BatchID,
		Accepted: models.FromDomainSlotList(resp.Accepted),
		Skipped:  skipped,
	}
}
