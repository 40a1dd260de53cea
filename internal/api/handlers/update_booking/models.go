package update_booking

import (
	updateBooking "github.com/m04kA/QuickCourt-BookingService/internal/usecase/update_booking"
)

// UpdateBookingRequest HTTP request model
type UpdateBookingRequest struct {
	Notes *string `json:"notes"`
}

// UpdateBookingResponse HTTP response model
type UpdateBookingResponse struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateBooking.Response) *UpdateBookingResponse {
	return &UpdateBookingResponse{
		ID:     resp.ID,
		Status: resp.Status,
		Notes:  resp.Notes,
	}
}
