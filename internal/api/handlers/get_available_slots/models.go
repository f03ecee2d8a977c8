package get_available_slots

import (
	"github.com/avdmnk/SVC-BookingService/internal/domain"
	getSlots "github.com/avdmnk/SVC-BookingService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date           string   `json:"date"`
	IsBookableDay  bool     `json:"isBookableDay"`
	BlockingReason string   `json:"blockingReason,omitempty"`
	AvailableSlots []string `json:"availableSlots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getSlots.Response) *AvailableSlotsResponse {
	slots := make([]string, len(resp.AvailableSlots))
	for i, slot := range resp.AvailableSlots {
		slots[i] = slot.String()
	}

	return &AvailableSlotsResponse{
		Date:           resp.Date.Format(domain.DateFormat),
		IsBookableDay:  resp.IsBookableDay,
		BlockingReason: resp.BlockingReason,
		AvailableSlots: slots,
	}
}
