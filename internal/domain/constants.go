package domain

// Ограничения каталога услуг
const (
	MaxServiceNameLength        = 255
	MaxServiceDescriptionLength = 2000
	MinServiceDurationMinutes   = 1
	MaxServiceDurationMinutes   = 1440 // сутки
)

// Ограничения генерации слотов
const (
	MinIntervalMinutes       = 1
	MaxIntervalMinutes       = 1440
	DefaultMaxGenerationDays = 366
	DefaultMaxCandidates     = 10000
)

// Ограничения данных клиента и учетных записей
const (
	MaxCustomerNameLength  = 255
	MaxCustomerPhoneLength = 32
	MaxBusinessNameLength  = 255
	MinPasswordLength      = 6
	MaxPasswordLength      = 72 // предел bcrypt
)

// Форматы даты и времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
