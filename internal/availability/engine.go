// Package availability содержит чистый движок расчёта доступности дня
// для бронирования: рабочие часы, нерабочие периоды, дневной лимит и
// минимальный буфер между бронированиями сводятся к списку доступных слотов.
//
// Движок не обращается к БД и системному времени - все входные данные,
// включая текущий момент, передаются явно. Один и тот же расчёт
// используется и при выдаче слотов клиенту, и при серверной проверке
// перед записью бронирования.
package availability

import (
	"time"

	"github.com/avdmnk/SVC-BookingService/internal/domain"
	"github.com/avdmnk/SVC-BookingService/pkg/types"
)

// Result результат расчёта доступности на дату
type Result struct {
	IsBookableDay  bool
	BlockingReason string // пустая строка, если день доступен
	AvailableSlots []types.TimeString
}

// blocked возвращает результат "день недоступен" с указанной причиной
func blocked(reason string) Result {
	return Result{
		IsBookableDay:  false,
		BlockingReason: reason,
		AvailableSlots: []types.TimeString{},
	}
}

// Compute вычисляет доступность дня и список доступных слотов
//
// Шаги, каждый из которых может сделать день недоступным:
//  1. День недели должен быть рабочим по недельному шаблону.
//  2. Дата не должна попадать в нерабочий период.
//  3. Количество существующих бронирований не должно достигать дневного лимита.
//  4. Слоты генерируются с шагом 30 минут от начала до конца рабочего дня
//     (конец исключается - слот, начинающийся ровно в конце дня, не предлагается).
//  5. Для сегодняшней даты отбрасываются слоты, не находящиеся строго в будущем.
//  6. Слот отбрасывается, если разница с любым существующим бронированием
//     строго меньше буфера (разница ровно в буфер допустима).
//
// Движок не возвращает ошибок: некорректные записи расписания
// (рабочий день со start >= end) трактуются как закрытый день,
// некорректные времена бронирований пропускаются при фильтрации.
func Compute(
	date time.Time,
	workingHours []domain.WorkingHoursEntry,
	offDutyPeriods []domain.OffDutyPeriod,
	policy domain.BookingPolicy,
	existingBookings []types.TimeString,
	now time.Time,
) Result {
	// 1. Проверка рабочего дня
	entry, ok := entryForDay(workingHours, domain.WeekdayFromTime(date))
	if !ok || !entry.IsWorkingDay {
		return blocked(domain.BlockingReasonNotWorkingDay)
	}

	startMinutes, err := entry.StartTime.Minutes()
	if err != nil {
		return blocked(domain.BlockingReasonNotWorkingDay)
	}
	endMinutes, err := entry.EndTime.Minutes()
	if err != nil {
		return blocked(domain.BlockingReasonNotWorkingDay)
	}
	// Fail-safe: запись с start >= end означает ноль слотов, день считается закрытым
	if startMinutes >= endMinutes {
		return blocked(domain.BlockingReasonNotWorkingDay)
	}

	// 2. Проверка нерабочих периодов (первый совпавший даёт причину)
	for i := range offDutyPeriods {
		if offDutyPeriods[i].Contains(date) {
			return blocked(string(offDutyPeriods[i].Reason))
		}
	}

	// 3. Дневной лимит: при достигнутом лимите день блокируется целиком
	if len(existingBookings) >= policy.MaxBookingsPerDay {
		return blocked(domain.BlockingReasonDailyLimit)
	}

	// 4. Генерация слотов-кандидатов с фиксированным шагом, конец дня исключается
	candidates := make([]int, 0, (endMinutes-startMinutes)/domain.SlotGranularityMinutes+1)
	for slot := startMinutes; slot < endMinutes; slot += domain.SlotGranularityMinutes {
		candidates = append(candidates, slot)
	}

	// 5. Для сегодняшней даты остаются только слоты строго в будущем
	if sameDay(date, now) {
		nowMinutes := now.Hour()*60 + now.Minute()
		candidates = filterInts(candidates, func(slot int) bool {
			return slot > nowMinutes
		})
	}

	// 6. Буферная фильтрация: симметрично относительно всех бронирований дня
	occupied := bookingMinutes(existingBookings)
	candidates = filterInts(candidates, func(slot int) bool {
		for _, b := range occupied {
			diff := slot - b
			if diff < 0 {
				diff = -diff
			}
			if diff < policy.TimeBufferMinutes {
				return false
			}
		}
		return true
	})

	slots := make([]types.TimeString, 0, len(candidates))
	for _, m := range candidates {
		ts, err := types.NewTimeStringFromMinutes(m)
		if err != nil {
			continue
		}
		slots = append(slots, ts)
	}

	return Result{
		IsBookableDay:  true,
		BlockingReason: "",
		AvailableSlots: slots,
	}
}

// IsSlotAvailable проверяет, что запрошенное время входит в список доступных слотов
// Используется серверной проверкой перед записью бронирования
func IsSlotAvailable(result Result, startTime types.TimeString) bool {
	if !result.IsBookableDay {
		return false
	}
	for _, slot := range result.AvailableSlots {
		if slot == startTime {
			return true
		}
	}
	return false
}

// entryForDay ищет запись расписания для дня недели
// Отсутствующая запись трактуется как нерабочий день, а не ошибка
func entryForDay(entries []domain.WorkingHoursEntry, day domain.Weekday) (domain.WorkingHoursEntry, bool) {
	for i := range entries {
		if entries[i].DayOfWeek == day {
			return entries[i], true
		}
	}
	return domain.WorkingHoursEntry{}, false
}

// bookingMinutes конвертирует времена бронирований в минуты с начала суток
// Некорректные значения пропускаются
func bookingMinutes(bookings []types.TimeString) []int {
	result := make([]int, 0, len(bookings))
	for _, b := range bookings {
		m, err := b.Minutes()
		if err != nil {
			continue
		}
		result = append(result, m)
	}
	return result
}

// sameDay проверяет, что две даты относятся к одному календарному дню
func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func filterInts(values []int, keep func(int) bool) []int {
	filtered := values[:0]
	for _, v := range values {
		if keep(v) {
			filtered = append(filtered, v)
		}
	}
	return filtered
}
