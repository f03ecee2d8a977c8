package models

import (
	"time"

	"github.com/avdmnk/SVC-BookingService/internal/domain"
	"github.com/avdmnk/SVC-BookingService/pkg/types"
)

// Request модели

// WorkingHoursEntryRequest одна запись недельного расписания в запросе
type WorkingHoursEntryRequest struct {
	DayOfWeek    string `json:"dayOfWeek"`
	StartTime    string `json:"startTime"` // "09:00"
	EndTime      string `json:"endTime"`   // "18:00"
	IsWorkingDay bool   `json:"isWorkingDay"`
}

// UpdateWorkingHoursRequest запрос на полную замену недельного расписания
// Применяется атомарно: либо все 7 записей, либо ни одной
type UpdateWorkingHoursRequest struct {
	Entries []WorkingHoursEntryRequest `json:"entries"`
}

// CreateOffDutyPeriodRequest запрос на создание нерабочего периода
type CreateOffDutyPeriodRequest struct {
	StartDate string `json:"startDate"` // "2025-10-15"
	EndDate   string `json:"endDate"`   // "2025-10-20"
	Reason    string `json:"reason"`
}

// UpdateOffDutyPeriodRequest запрос на обновление нерабочего периода
type UpdateOffDutyPeriodRequest struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Reason    string `json:"reason"`
}

// UpdatePolicyRequest запрос на обновление политики бронирования
type UpdatePolicyRequest struct {
	MaxBookingsPerDay int `json:"maxBookingsPerDay"`
	TimeBufferMinutes int `json:"timeBufferMinutes"`
}

// CheckAvailabilityRequest запрос на проверку пересечения диапазона с нерабочими периодами
type CheckAvailabilityRequest struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// Response модели

// WorkingHoursEntryResponse одна запись недельного расписания
type WorkingHoursEntryResponse struct {
	DayOfWeek    string `json:"dayOfWeek"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
	IsWorkingDay bool   `json:"isWorkingDay"`
}

// WorkingHoursResponse недельное расписание (всегда 7 записей, понедельник..воскресенье)
type WorkingHoursResponse struct {
	Entries []WorkingHoursEntryResponse `json:"entries"`
}

// OffDutyPeriodResponse ответ с данными нерабочего периода
type OffDutyPeriodResponse struct {
	ID        int64     `json:"id"`
	StartDate string    `json:"startDate"`
	EndDate   string    `json:"endDate"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OffDutyPeriodListResponse ответ со списком нерабочих периодов
type OffDutyPeriodListResponse struct {
	Periods []OffDutyPeriodResponse `json:"periods"`
}

// PolicyResponse ответ с политикой бронирования
type PolicyResponse struct {
	MaxBookingsPerDay int       `json:"maxBookingsPerDay"`
	TimeBufferMinutes int       `json:"timeBufferMinutes"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// CheckAvailabilityResponse результат проверки пересечения с нерабочими периодами
type CheckAvailabilityResponse struct {
	Available          bool                    `json:"available"`
	ConflictingPeriods []OffDutyPeriodResponse `json:"conflictingPeriods"`
}

// Методы конвертации

// ToDomainEntry конвертирует запись запроса в domain модель
func (r *WorkingHoursEntryRequest) ToDomainEntry() domain.WorkingHoursEntry {
	return domain.WorkingHoursEntry{
		DayOfWeek:    domain.Weekday(r.DayOfWeek),
		StartTime:    types.TimeString(r.StartTime),
		EndTime:      types.TimeString(r.EndTime),
		IsWorkingDay: r.IsWorkingDay,
	}
}

// FromDomainWorkingHours конвертирует недельное расписание в DTO
func FromDomainWorkingHours(entries []domain.WorkingHoursEntry) *WorkingHoursResponse {
	resp := &WorkingHoursResponse{
		Entries: make([]WorkingHoursEntryResponse, len(entries)),
	}

	for i, entry := range entries {
		resp.Entries[i] = WorkingHoursEntryResponse{
			DayOfWeek:    string(entry.DayOfWeek),
			StartTime:    entry.StartTime.String(),
			EndTime:      entry.EndTime.String(),
			IsWorkingDay: entry.IsWorkingDay,
		}
	}

	return resp
}

// FromDomainPeriod конвертирует domain модель периода в DTO
func FromDomainPeriod(p *domain.OffDutyPeriod) *OffDutyPeriodResponse {
	if p == nil {
		return nil
	}

	return &OffDutyPeriodResponse{
		ID:        p.ID,
		StartDate: p.StartDate.Format(domain.DateFormat),
		EndDate:   p.EndDate.Format(domain.DateFormat),
		Reason:    string(p.Reason),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// FromDomainPeriodList конвертирует список domain моделей в DTO
func FromDomainPeriodList(periods []*domain.OffDutyPeriod) *OffDutyPeriodListResponse {
	if periods == nil {
		return &OffDutyPeriodListResponse{
			Periods: []OffDutyPeriodResponse{},
		}
	}

	resp := &OffDutyPeriodListResponse{
		Periods: make([]OffDutyPeriodResponse, len(periods)),
	}

	for i, period := range periods {
		if periodResp := FromDomainPeriod(period); periodResp != nil {
			resp.Periods[i] = *periodResp
		}
	}

	return resp
}

// FromDomainPolicy конвертирует domain модель политики в DTO
func FromDomainPolicy(p *domain.BookingPolicy) *PolicyResponse {
	if p == nil {
		return nil
	}

	return &PolicyResponse{
		MaxBookingsPerDay: p.MaxBookingsPerDay,
		TimeBufferMinutes: p.TimeBufferMinutes,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}
