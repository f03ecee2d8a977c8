package schedule

import "errors"

var (
	// ErrPeriodNotFound возвращается, когда нерабочий период не найден
	ErrPeriodNotFound = errors.New("schedule.repository: off-duty period not found")

	// ErrPolicyNotFound возвращается, когда политика бронирования ещё не создана
	ErrPolicyNotFound = errors.New("schedule.repository: booking policy not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")
)
