package domain

import "time"

// Service услуга, которую можно забронировать
type Service struct {
	ID              int64
	BusinessID      int64
	Name            string
	Description     *string
	DurationMinutes int
	CreatedAt       time.Time
	DeletedAt       *time.Time
}

// Duration длительность услуги
func (s *Service) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}

// IsDeleted true, если услуга мягко удалена
func (s *Service) IsDeleted() bool {
	return s.DeletedAt != nil
}
