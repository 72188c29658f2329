package generate_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	"github.com/m04kA/SMC-SlotService/pkg/types"
)

// Window развернутый запрос генерации
type Window struct {
	StartDate time.Time // используются только год, месяц и день
	EndDate   time.Time
	StartTime types.TimeString
	EndTime   types.TimeString

	IntervalMinutes int
	DurationMinutes int

	ExcludeWeekdays map[time.Weekday]bool
	Location        *time.Location
}

// Expand разворачивает ежедневное окно в упорядоченный список кандидатов.
// Кандидат, выходящий за конец окна, отбрасывается целиком.
// Хранилище не используется. limit <= 0 снимает ограничение
func Expand(w Window, limit int) ([]domain.SlotCandidate, error) {
	loc := w.Location
	if loc == nil {
		loc = time.UTC
	}

	interval := time.Duration(w.IntervalMinutes) * time.Minute
	duration := time.Duration(w.DurationMinutes) * time.Minute
	if interval <= 0 || duration <= 0 {
		return nil, fmt.Errorf("%w: interval and duration must be positive", ErrInvalidInput)
	}

	candidates := make([]domain.SlotCandidate, 0)

	for d := dateOnly(w.StartDate); !d.After(dateOnly(w.EndDate)); d = d.AddDate(0, 0, 1) {
		if w.ExcludeWeekdays[d.Weekday()] {
			continue
		}

		windowStart := w.StartTime.On(d, loc)
		windowEnd := w.EndTime.On(d, loc)

		for start := windowStart; !start.Add(duration).After(windowEnd); start = start.Add(interval) {
			if limit > 0 && len(candidates) >= limit {
				return nil, fmt.Errorf("%w: more than %d slots", ErrTooManyCandidates, limit)
			}
			candidates = append(candidates, domain.SlotCandidate{
				Start: start.UTC(),
				End:   start.Add(duration).UTC(),
			})
		}
	}

	return candidates, nil
}

// dateOnly отбрасывает время, календарная дата сохраняется
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
