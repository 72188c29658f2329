package domain

import (
	"fmt"
	"sort"
	"time"
)

// SlotStatus состояние слота
type SlotStatus string

const (
	SlotAvailable SlotStatus = "available"
	SlotBooked    SlotStatus = "booked"
	SlotCancelled SlotStatus = "cancelled"
)

var (
	// ErrInvalidTransition переход между состояниями запрещен автоматом
	ErrInvalidTransition = fmt.Errorf("%w: invalid slot state transition", ErrConflict)

	// ErrInvalidStatus неизвестное значение статуса
	ErrInvalidStatus = fmt.Errorf("%w: invalid slot status", ErrValidation)
)

// allowedTransitions допустимые переходы. cancelled терминальный
var allowedTransitions = map[SlotStatus][]SlotStatus{
	SlotAvailable: {SlotBooked, SlotCancelled},
	SlotBooked:    {SlotCancelled},
}

// ParseSlotStatus разбирает статус из строки запроса
func ParseSlotStatus(s string) (SlotStatus, error) {
	switch st := SlotStatus(s); st {
	case SlotAvailable, SlotBooked, SlotCancelled:
		return st, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
}

// CanTransition проверяет, разрешен ли переход from → to
func CanTransition(from, to SlotStatus) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Customer контактные данные клиента, забронировавшего слот
type Customer struct {
	Name  string
	Email string
	Phone *string
}

// Slot единица бронируемого времени. Start и End хранятся в UTC
type Slot struct {
	ID         int64
	BusinessID int64
	ServiceID  int64
	Start      time.Time
	End        time.Time
	Status     SlotStatus
	BatchID    string

	// Денормализованное название услуги (только для чтения владельцем)
	ServiceName string

	Customer    *Customer
	BookedAt    *time.Time
	CancelledAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive true для слотов, участвующих в проверке пересечений
func (s *Slot) IsActive() bool {
	return s.Status != SlotCancelled
}

// DurationMinutes длительность слота в минутах
func (s *Slot) DurationMinutes() int {
	return int(s.End.Sub(s.Start) / time.Minute)
}

// Overlaps строгое пересечение полуинтервалов [aStart, aEnd) и [bStart, bEnd)
// Соприкасающиеся интервалы не пересекаются
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// SlotCandidate результат генерации до сохранения
type SlotCandidate struct {
	Start time.Time
	End   time.Time
}

// PersistBatch пакет кандидатов одной генерации
type PersistBatch struct {
	BusinessID int64
	ServiceID  int64
	BatchID    string
	Candidates []SlotCandidate
}

// SkippedCandidate кандидат, отклоненный из-за пересечения
type SkippedCandidate struct {
	Candidate SlotCandidate

	// ConflictSlotID слот, с которым пересекся кандидат.
	// 0, если пересечение с кандидатом этого же пакета (его начало в ConflictStart)
	ConflictSlotID int64
	ConflictStart  time.Time

	Err error
}

// PersistResult частичный результат сохранения пакета
type PersistResult struct {
	Accepted []*Slot
	Skipped  []SkippedCandidate
}

// PlanBatch последовательно в порядке начала проверяет кандидатов против существующих
// активных слотов услуги и уже принятых кандидатов этого пакета.
// existing должны быть активными слотами одной услуги
func PlanBatch(existing []*Slot, candidates []SlotCandidate) (accepted []SlotCandidate, skipped []SkippedCandidate) {
	active := make([]*Slot, 0, len(existing))
	for _, s := range existing {
		if s.IsActive() {
			active = append(active, s)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i].Start.Before(active[j].Start) })

	ordered := make([]SlotCandidate, len(candidates))
	copy(ordered, candidates)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Start.Before(ordered[j].Start) })

	accepted = make([]SlotCandidate, 0, len(ordered))

	for _, c := range ordered {
		if conflict := findOverlap(active, c); conflict != nil {
			skipped = append(skipped, SkippedCandidate{
				Candidate:      c,
				ConflictSlotID: conflict.ID,
				ConflictStart:  conflict.Start,
				Err: fmt.Errorf("%w: overlaps slot id=%d [%s - %s]", ErrConflict,
					conflict.ID, conflict.Start.Format(time.RFC3339), conflict.End.Format(time.RFC3339)),
			})
			continue
		}

		// Принятые кандидаты упорядочены и не пересекаются, достаточно последнего
		if n := len(accepted); n > 0 && Overlaps(accepted[n-1].Start, accepted[n-1].End, c.Start, c.End) {
			prev := accepted[n-1]
			skipped = append(skipped, SkippedCandidate{
				Candidate:     c,
				ConflictStart: prev.Start,
				Err: fmt.Errorf("%w: overlaps candidate [%s - %s] of the same batch", ErrConflict,
					prev.Start.Format(time.RFC3339), prev.End.Format(time.RFC3339)),
			})
			continue
		}

		accepted = append(accepted, c)
	}

	return accepted, skipped
}

// findOverlap ищет активный слот, пересекающийся с кандидатом.
// Непересекающиеся слоты, отсортированные по началу, отсортированы и по концу,
// поэтому первый слот с End > c.Start единственный кандидат на пересечение
func findOverlap(active []*Slot, c SlotCandidate) *Slot {
	i := sort.Search(len(active), func(i int) bool { return active[i].End.After(c.Start) })
	for ; i < len(active) && active[i].Start.Before(c.End); i++ {
		if Overlaps(active[i].Start, active[i].End, c.Start, c.End) {
			return active[i]
		}
	}
	return nil
}

// Transition запрос на атомарную смену состояния (compare-and-swap)
type Transition struct {
	SlotID   int64
	From     SlotStatus
	To       SlotStatus
	Customer *Customer // обязателен для available → booked
	At       time.Time
}

// Validate проверяет переход до обращения к хранилищу
func (t Transition) Validate() error {
	if !CanTransition(t.From, t.To) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, t.From, t.To)
	}
	if t.To == SlotBooked && t.Customer == nil {
		return fmt.Errorf("%w: customer is required to book a slot", ErrValidation)
	}
	return nil
}

// Apply применяет переход к копии слота. Хранилища используют его,
// чтобы отметки времени выставлялись одинаково
func (t Transition) Apply(s Slot) Slot {
	at := t.At
	s.Status = t.To
	s.UpdatedAt = at

	switch t.To {
	case SlotBooked:
		c := *t.Customer
		s.Customer = &c
		s.BookedAt = &at
	case SlotCancelled:
		s.CancelledAt = &at
	}

	return s
}

// SlotFilter фильтр инвентаря владельца
type SlotFilter struct {
	ServiceID *int64
	Status    *SlotStatus
	From      *time.Time // start >= From
	To        *time.Time // start < To
}

// TimeRange полуинтервал [From, To). Нулевой To означает отсутствие верхней границы
type TimeRange struct {
	From time.Time
	To   time.Time
}

// Contains проверяет, попадает ли момент в диапазон
func (r TimeRange) Contains(t time.Time) bool {
	if t.Before(r.From) {
		return false
	}
	return r.To.IsZero() || t.Before(r.To)
}

// Matches проверяет слот на соответствие фильтру
func (f SlotFilter) Matches(s *Slot) bool {
	if f.ServiceID != nil && s.ServiceID != *f.ServiceID {
		return false
	}
	if f.Status != nil && s.Status != *f.Status {
		return false
	}
	if f.From != nil && s.Start.Before(*f.From) {
		return false
	}
	if f.To != nil && !s.Start.Before(*f.To) {
		return false
	}
	return true
}
