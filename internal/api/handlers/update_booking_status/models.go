package update_booking_status

// UpdateStatusRequest - тело запроса на смену статуса бронирования
type UpdateStatusRequest struct {
	Status string `json:"status"`
}
