package domain

// Default booking policy values
const (
	DefaultMaxBookingsPerDay = 10
	DefaultTimeBufferMinutes = 60
)

// Business validation constants
const (
	MinMaxBookingsPerDay = 1
	MaxMaxBookingsPerDay = 100
	MinTimeBufferMinutes = 0
	MaxTimeBufferMinutes = 480 // 8 часов

	MinServicePrice           = 0
	MinServiceDurationMinutes = 5
	MaxServiceDurationMinutes = 480

	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// SlotGranularityMinutes фиксированный шаг генерации слотов
const SlotGranularityMinutes = 30

// WorkingDaysPerWeek размер недельного шаблона расписания
const WorkingDaysPerWeek = 7

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Причины недоступности дня, возвращаемые движком доступности
// Для нерабочих периодов причиной служит reason самого периода
const (
	BlockingReasonNotWorkingDay = "not a working day"
	BlockingReasonDailyLimit    = "daily limit reached"
)
