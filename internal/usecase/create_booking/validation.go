package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/QuickCourt-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.FacilityID <= 0 {
		return fmt.Errorf("%w: facilityID must be positive", ErrInvalidInput)
	}

	if req.CourtID == "" {
		return fmt.Errorf("%w: courtID is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.EndTime.IsZero() {
		return fmt.Errorf("%w: endTime is required", ErrInvalidInput)
	}
	if err := req.EndTime.ValidateEnd(); err != nil {
		return fmt.Errorf("%w: invalid endTime format: %v", ErrInvalidInput, err)
	}

	if err := validateBookingType(req.Type); err != nil {
		return err
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	if req.Group != nil && req.Group.Size > domain.MaxGroupSize {
		return fmt.Errorf("%w: group size must not exceed %d", ErrInvalidInput, domain.MaxGroupSize)
	}

	return nil
}

// validateBookingType проверяет, что тип бронирования известен
// Пустой тип допустим - трактуется как single
func validateBookingType(bookingType string) error {
	switch domain.BookingType(bookingType) {
	case "", domain.TypeSingle, domain.TypeRecurring, domain.TypeGroup, domain.TypeTournament:
		return nil
	default:
		return fmt.Errorf("%w: unknown booking type %q", ErrInvalidInput, bookingType)
	}
}

// resolveBookingType возвращает тип бронирования с учетом дефолта
func resolveBookingType(bookingType string) domain.BookingType {
	if bookingType == "" {
		return domain.TypeSingle
	}
	return domain.BookingType(bookingType)
}

// combineDateTime возвращает момент начала слота в указанную дату
func combineDateTime(date time.Time, slot domain.TimeSlot) (time.Time, error) {
	startMinutes, err := slot.StartTime.Minutes()
	if err != nil {
		return time.Time{}, err
	}

	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return day.Add(time.Duration(startMinutes) * time.Minute), nil
}
