// Package schedule хранит настройки расписания: недельный шаблон рабочих
// часов, нерабочие периоды и глобальную политику бронирования
package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/avdmnk/SVC-BookingService/internal/domain"
	"github.com/avdmnk/SVC-BookingService/pkg/dbmetrics"
	"github.com/avdmnk/SVC-BookingService/pkg/psqlbuilder"
)

// DBExecutor интерфейс исполнителя запросов (см. pkg/dbmetrics)
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий настроек расписания
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// --- Недельный шаблон рабочих часов ---

// GetWorkingHours возвращает все записи недельного шаблона
// Порядок: понедельник..воскресенье; отсутствующие дни не дополняются
func (r *Repository) GetWorkingHours(ctx context.Context) ([]domain.WorkingHoursEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"day_of_week",
		"start_time",
		"end_time",
		"is_working_day",
	).
		From("working_hours").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetWorkingHours - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWorkingHours - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	byDay := make(map[domain.Weekday]domain.WorkingHoursEntry, domain.WorkingDaysPerWeek)
	for rows.Next() {
		var entry domain.WorkingHoursEntry
		if err := rows.Scan(&entry.DayOfWeek, &entry.StartTime, &entry.EndTime, &entry.IsWorkingDay); err != nil {
			return nil, fmt.Errorf("%w: GetWorkingHours - scan row: %v", ErrScanRow, err)
		}
		byDay[entry.DayOfWeek] = entry
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetWorkingHours - rows error: %v", ErrScanRow, err)
	}

	// Выдаём в фиксированном порядке дней недели
	entries := make([]domain.WorkingHoursEntry, 0, len(byDay))
	for _, day := range domain.Weekdays {
		if entry, ok := byDay[day]; ok {
			entries = append(entries, entry)
		}
	}

	return entries, nil
}

// ReplaceWorkingHours заменяет весь недельный шаблон (all-or-nothing)
// Вызывается внутри транзакции, переданной через контекст
func (r *Repository) ReplaceWorkingHours(ctx context.Context, entries []domain.WorkingHoursEntry) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("working_hours").ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceWorkingHours - build delete query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceWorkingHours - execute delete: %v", ErrExecQuery, err)
	}

	insertBuilder := psqlbuilder.Insert("working_hours").
		Columns("day_of_week", "start_time", "end_time", "is_working_day")
	for _, entry := range entries {
		insertBuilder = insertBuilder.Values(entry.DayOfWeek, entry.StartTime, entry.EndTime, entry.IsWorkingDay)
	}

	query, args, err = insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceWorkingHours - build insert query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceWorkingHours - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// --- Нерабочие периоды ---

var offDutyColumns = []string{"id", "start_date", "end_date", "reason", "created_at", "updated_at"}

// ListOffDutyPeriods возвращает все нерабочие периоды, отсортированные по дате начала
func (r *Repository) ListOffDutyPeriods(ctx context.Context) ([]*domain.OffDutyPeriod, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(offDutyColumns...).
		From("off_duty_periods").
		OrderBy("start_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListOffDutyPeriods - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryPeriods(ctx, executor, query, args, "ListOffDutyPeriods")
}

// ListOverlappingPeriods возвращает периоды, пересекающиеся с диапазоном [start, end]
func (r *Repository) ListOverlappingPeriods(ctx context.Context, start, end time.Time) ([]*domain.OffDutyPeriod, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(offDutyColumns...).
		From("off_duty_periods").
		Where(squirrel.LtOrEq{"start_date": domain.TruncateToDay(end)}).
		Where(squirrel.GtOrEq{"end_date": domain.TruncateToDay(start)}).
		OrderBy("start_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListOverlappingPeriods - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryPeriods(ctx, executor, query, args, "ListOverlappingPeriods")
}

// GetOffDutyPeriod получает нерабочий период по ID
func (r *Repository) GetOffDutyPeriod(ctx context.Context, id int64) (*domain.OffDutyPeriod, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(offDutyColumns...).
		From("off_duty_periods").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOffDutyPeriod - build select query: %v", ErrBuildQuery, err)
	}

	period, err := scanPeriod(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrPeriodNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetOffDutyPeriod - scan period: %v", ErrScanRow, err)
	}

	return period, nil
}

// CreateOffDutyPeriod создает новый нерабочий период
func (r *Repository) CreateOffDutyPeriod(ctx context.Context, period *domain.OffDutyPeriod) (*domain.OffDutyPeriod, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("off_duty_periods").
		Columns("start_date", "end_date", "reason").
		Values(
			domain.TruncateToDay(period.StartDate),
			domain.TruncateToDay(period.EndDate),
			period.Reason,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateOffDutyPeriod - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&period.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateOffDutyPeriod - execute insert: %v", ErrExecQuery, err)
	}

	period.CreatedAt = createdAt.Time
	period.UpdatedAt = updatedAt.Time

	return period, nil
}

// UpdateOffDutyPeriod обновляет нерабочий период
func (r *Repository) UpdateOffDutyPeriod(ctx context.Context, id int64, period *domain.OffDutyPeriod) (*domain.OffDutyPeriod, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("off_duty_periods").
		Set("start_date", domain.TruncateToDay(period.StartDate)).
		Set("end_date", domain.TruncateToDay(period.EndDate)).
		Set("reason", period.Reason).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpdateOffDutyPeriod - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrPeriodNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateOffDutyPeriod - execute update: %v", ErrExecQuery, err)
	}

	period.ID = id
	period.CreatedAt = createdAt.Time
	period.UpdatedAt = updatedAt.Time

	return period, nil
}

// DeleteOffDutyPeriod удаляет нерабочий период
func (r *Repository) DeleteOffDutyPeriod(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("off_duty_periods").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteOffDutyPeriod - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteOffDutyPeriod - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteOffDutyPeriod - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrPeriodNotFound
	}

	return nil
}

// --- Политика бронирования (синглтон) ---

// GetPolicy возвращает политику бронирования
// Если политика ещё не создана, возвращает ErrPolicyNotFound
func (r *Repository) GetPolicy(ctx context.Context) (*domain.BookingPolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"max_bookings_per_day",
		"time_buffer_minutes",
		"created_at",
		"updated_at",
	).
		From("booking_policy").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetPolicy - build select query: %v", ErrBuildQuery, err)
	}

	var policy domain.BookingPolicy
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&policy.ID,
		&policy.MaxBookingsPerDay,
		&policy.TimeBufferMinutes,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrPolicyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetPolicy - scan policy: %v", ErrScanRow, err)
	}

	policy.CreatedAt = createdAt.Time
	policy.UpdatedAt = updatedAt.Time

	return &policy, nil
}

// UpsertPolicy создает или обновляет единственную запись политики
// Запись политики никогда не удаляется
func (r *Repository) UpsertPolicy(ctx context.Context, policy *domain.BookingPolicy) (*domain.BookingPolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("booking_policy").
		Columns("singleton", "max_bookings_per_day", "time_buffer_minutes").
		Values(true, policy.MaxBookingsPerDay, policy.TimeBufferMinutes).
		Suffix(`ON CONFLICT (singleton) DO UPDATE
			SET max_bookings_per_day = EXCLUDED.max_bookings_per_day,
			    time_buffer_minutes = EXCLUDED.time_buffer_minutes,
			    updated_at = now()
			RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpsertPolicy - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&policy.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertPolicy - execute upsert: %v", ErrExecQuery, err)
	}

	policy.CreatedAt = createdAt.Time
	policy.UpdatedAt = updatedAt.Time

	return policy, nil
}

// Helpers

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPeriod(row rowScanner) (*domain.OffDutyPeriod, error) {
	var period domain.OffDutyPeriod
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&period.ID,
		&period.StartDate,
		&period.EndDate,
		&period.Reason,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	period.CreatedAt = createdAt.Time
	period.UpdatedAt = updatedAt.Time

	return &period, nil
}

func (r *Repository) queryPeriods(ctx context.Context, executor DBExecutor, query string, args []interface{}, op string) ([]*domain.OffDutyPeriod, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	periods := make([]*domain.OffDutyPeriod, 0)
	for rows.Next() {
		period, err := scanPeriod(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		periods = append(periods, period)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return periods, nil
}
