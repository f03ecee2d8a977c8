package settings

import "errors"

var (
	// ErrPeriodNotFound возвращается, когда нерабочий период не найден
	ErrPeriodNotFound = errors.New("off-duty period not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidSchedule возвращается при некорректном недельном расписании
	ErrInvalidSchedule = errors.New("invalid weekly schedule")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
