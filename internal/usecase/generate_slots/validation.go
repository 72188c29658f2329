package generate_slots

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	"github.com/m04kA/SMC-SlotService/pkg/types"
)

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// validateRequest проверяет запрос и разворачивает его в окно генерации.
// Длительность услуги подставляется позже
func validateRequest(req *Request, maxDays int) (*Window, error) {
	if req.BusinessID <= 0 {
		return nil, fmt.Errorf("%w: businessID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return nil, fmt.Errorf("%w: service_id must be positive", ErrInvalidInput)
	}

	startDate, err := time.Parse(domain.DateFormat, req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: start_date %q must be YYYY-MM-DD", ErrInvalidDate, req.StartDate)
	}

	endDate, err := time.Parse(domain.DateFormat, req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: end_date %q must be YYYY-MM-DD", ErrInvalidDate, req.EndDate)
	}

	if endDate.Before(startDate) {
		return nil, fmt.Errorf("%w: end_date is before start_date", ErrInvalidDate)
	}

	// Количество дней включительно
	days := int(endDate.Sub(startDate)/(24*time.Hour)) + 1
	if maxDays > 0 && days > maxDays {
		return nil, fmt.Errorf("%w: %d days requested, at most %d allowed", ErrRangeTooLarge, days, maxDays)
	}

	startTime, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: start_time %q: %v", ErrInvalidTime, req.StartTime, err)
	}

	endTime, err := types.NewTimeStringFromString(req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: end_time %q: %v", ErrInvalidTime, req.EndTime, err)
	}

	if !endTime.IsAfter(startTime) {
		return nil, fmt.Errorf("%w: end_time must be after start_time", ErrInvalidTime)
	}

	if req.IntervalMinutes < domain.MinIntervalMinutes || req.IntervalMinutes > domain.MaxIntervalMinutes {
		return nil, fmt.Errorf("%w: interval must be between %d and %d minutes",
			ErrInvalidInterval, domain.MinIntervalMinutes, domain.MaxIntervalMinutes)
	}

	exclude, err := parseWeekdays(req.ExcludeWeekdays)
	if err != nil {
		return nil, err
	}

	return &Window{
		StartDate:       startDate,
		EndDate:         endDate,
		StartTime:       startTime,
		EndTime:         endTime,
		IntervalMinutes: req.IntervalMinutes,
		ExcludeWeekdays: exclude,
	}, nil
}

func parseWeekdays(names []string) (map[time.Weekday]bool, error) {
	exclude := make(map[time.Weekday]bool, len(names))
	for _, name := range names {
		wd, ok := weekdays[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("%w: unknown weekday %q", ErrInvalidInput, name)
		}
		exclude[wd] = true
	}
	return exclude, nil
}
