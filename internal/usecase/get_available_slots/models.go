package get_available_slots

import (
	"time"

	"github.com/avdmnk/SVC-BookingService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	Date time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа с доступностью дня
type Response struct {
	Date           time.Time          // Дата, на которую запрашивались слоты
	IsBookableDay  bool               // Доступен ли день для бронирования
	BlockingReason string             // Причина недоступности (пустая, если день доступен)
	AvailableSlots []types.TimeString // Времена начала свободных слотов по возрастанию
}
