package pay_booking

import (
	"context"

	"github.com/m04kA/QuickCourt-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	Pay(ctx context.Context, bookingID int64, req *models.PayBookingRequest) (*models.PayBookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
