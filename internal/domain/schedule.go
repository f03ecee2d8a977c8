package domain

import (
	"time"

	"github.com/avdmnk/SVC-BookingService/pkg/types"
)

// Weekday день недели в расписании (понедельник..воскресенье)
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

// Weekdays все дни недели в порядке следования (используется для вывода расписания)
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// IsValid проверяет, что значение является известным днём недели
func (w Weekday) IsValid() bool {
	for _, d := range Weekdays {
		if d == w {
			return true
		}
	}
	return false
}

// WeekdayFromTime возвращает Weekday для календарной даты
func WeekdayFromTime(t time.Time) Weekday {
	switch t.Weekday() {
	case time.Monday:
		return Monday
	case time.Tuesday:
		return Tuesday
	case time.Wednesday:
		return Wednesday
	case time.Thursday:
		return Thursday
	case time.Friday:
		return Friday
	case time.Saturday:
		return Saturday
	default:
		return Sunday
	}
}

// WorkingHoursEntry одна запись недельного расписания (ровно одна на день недели)
type WorkingHoursEntry struct {
	DayOfWeek    Weekday
	StartTime    types.TimeString
	EndTime      types.TimeString
	IsWorkingDay bool
}

// OffDutyReason причина нерабочего периода
type OffDutyReason string

const (
	ReasonHoliday   OffDutyReason = "Holiday"
	ReasonVacation  OffDutyReason = "Vacation"
	ReasonSickLeave OffDutyReason = "Sick Leave"
	ReasonPersonal  OffDutyReason = "Personal"
	ReasonOther     OffDutyReason = "Other"
)

// OffDutyReasons допустимые причины нерабочих периодов
var OffDutyReasons = []OffDutyReason{
	ReasonHoliday,
	ReasonVacation,
	ReasonSickLeave,
	ReasonPersonal,
	ReasonOther,
}

// IsValid проверяет, что причина входит в допустимый набор
func (r OffDutyReason) IsValid() bool {
	for _, known := range OffDutyReasons {
		if known == r {
			return true
		}
	}
	return false
}

// OffDutyPeriod нерабочий период (диапазон дат включительно)
// Инвариант: EndDate >= StartDate, проверяется на границе записи настроек
type OffDutyPeriod struct {
	ID        int64
	StartDate time.Time
	EndDate   time.Time
	Reason    OffDutyReason
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Contains проверяет, что дата попадает в период (границы включительно)
// Даты сравниваются по календарным дням, время суток игнорируется
func (p *OffDutyPeriod) Contains(date time.Time) bool {
	d := TruncateToDay(date)
	start := TruncateToDay(p.StartDate)
	end := TruncateToDay(p.EndDate)
	return !d.Before(start) && !d.After(end)
}

// Overlaps проверяет пересечение периода с диапазоном [start, end] (включительно)
func (p *OffDutyPeriod) Overlaps(start, end time.Time) bool {
	s := TruncateToDay(start)
	e := TruncateToDay(end)
	return !TruncateToDay(p.StartDate).After(e) && !TruncateToDay(p.EndDate).Before(s)
}

// BookingPolicy глобальная политика бронирования (в системе не более одной записи)
// Создается лениво с дефолтными значениями при первом чтении
type BookingPolicy struct {
	ID                int64
	MaxBookingsPerDay int
	TimeBufferMinutes int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// DefaultBookingPolicy возвращает политику с дефолтными значениями
func DefaultBookingPolicy() *BookingPolicy {
	return &BookingPolicy{
		MaxBookingsPerDay: DefaultMaxBookingsPerDay,
		TimeBufferMinutes: DefaultTimeBufferMinutes,
	}
}

// TruncateToDay обнуляет время, оставляя только календарную дату
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
