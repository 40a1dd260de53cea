package cancel_booking

import (
	"time"

	cancelBooking "github.com/m04kA/QuickCourt-BookingService/internal/usecase/cancel_booking"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	Reason string `json:"reason,omitempty"`
}

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	ID             int64    `json:"id"`
	Status         string   `json:"status"`
	CancelledBy    string   `json:"cancelledBy"`
	CancelledAt    string   `json:"cancelledAt"` // ISO 8601
	RefundEligible bool     `json:"refundEligible"`
	PaymentStatus  string   `json:"paymentStatus"`
	RefundAmount   *float64 `json:"refundAmount,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelBooking.Response) *CancelBookingResponse {
	return &CancelBookingResponse{
		ID:             resp.ID,
		Status:         resp.Status,
		CancelledBy:    resp.CancelledBy,
		CancelledAt:    resp.CancelledAt.Format(time.RFC3339),
		RefundEligible: resp.RefundEligible,
		PaymentStatus:  resp.PaymentStatus,
		RefundAmount:   resp.RefundAmount,
	}
}
