package types

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	minutesInDay = 24 * 60
)

var (
	// ErrInvalidTimeString возвращается при некорректном формате времени
	ErrInvalidTimeString = errors.New("invalid time string format")

	// ErrTimeOverflow возвращается, когда результат выходит за пределы суток
	ErrTimeOverflow = errors.New("time string overflow")
)

// TimeString время суток в формате "HH:MM" (локальные часы бизнеса)
// Допускается "24:00" как конец суток
type TimeString string

// NewTimeString создает TimeString из времени (секунды отбрасываются)
func NewTimeString(t time.Time) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute()))
}

// NewTimeStringFromString разбирает "HH:MM" или "HH:MM:SS"
// Секунды допускаются только нулевые - слоты имеют минутную точность
func NewTimeStringFromString(s string) (TimeString, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return "", ErrInvalidTimeString
	}

	hours, err := parseTwoDigits(parts[0])
	if err != nil {
		return "", err
	}
	minutes, err := parseTwoDigits(parts[1])
	if err != nil {
		return "", err
	}
	if len(parts) == 3 {
		seconds, err := parseTwoDigits(parts[2])
		if err != nil {
			return "", err
		}
		if seconds != 0 {
			return "", fmt.Errorf("%w: seconds are not supported", ErrInvalidTimeString)
		}
	}

	ts := TimeString(fmt.Sprintf("%02d:%02d", hours, minutes))
	if err := ts.Validate(); err != nil {
		return "", err
	}

	return ts, nil
}

// NewTimeStringFromMinutes создает TimeString из количества минут от полуночи
func NewTimeStringFromMinutes(total int) (TimeString, error) {
	if total < 0 || total > minutesInDay {
		return "", ErrTimeOverflow
	}
	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

// Validate проверяет формат и диапазон значения
func (t TimeString) Validate() error {
	_, err := t.parse()
	return err
}

// IsZero возвращает true для пустого значения
func (t TimeString) IsZero() bool {
	return t == ""
}

// Minutes количество минут от полуночи
// Для некорректного значения возвращает -1
func (t TimeString) Minutes() int {
	m, err := t.parse()
	if err != nil {
		return -1
	}
	return m
}

// AddMinutes прибавляет минуты, результат не может выйти за пределы суток
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	m, err := t.parse()
	if err != nil {
		return "", err
	}
	return NewTimeStringFromMinutes(m + minutes)
}

// IsBefore строго раньше
func (t TimeString) IsBefore(other TimeString) bool {
	return t.Minutes() < other.Minutes()
}

// IsAfter строго позже
func (t TimeString) IsAfter(other TimeString) bool {
	return t.Minutes() > other.Minutes()
}

// On возвращает момент времени в указанную дату в заданной локации
// Считается по настенным часам: "24:00" даёт полночь следующего дня
func (t TimeString) On(date time.Time, loc *time.Location) time.Time {
	y, mo, d := date.Date()
	m := t.Minutes()
	return time.Date(y, mo, d, m/60, m%60, 0, 0, loc)
}

func (t TimeString) String() string {
	return string(t)
}

func (t TimeString) parse() (int, error) {
	s := string(t)
	if len(s) != 5 || s[2] != ':' {
		return 0, ErrInvalidTimeString
	}

	hours, err := parseTwoDigits(s[:2])
	if err != nil {
		return 0, err
	}
	minutes, err := parseTwoDigits(s[3:])
	if err != nil {
		return 0, err
	}

	if minutes > 59 || hours > 24 || (hours == 24 && minutes != 0) {
		return 0, fmt.Errorf("%w: %q is out of range", ErrInvalidTimeString, s)
	}

	return hours*60 + minutes, nil
}

func parseTwoDigits(s string) (int, error) {
	if len(s) != 2 {
		return 0, ErrInvalidTimeString
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return 0, ErrInvalidTimeString
	}
	return v, nil
}
