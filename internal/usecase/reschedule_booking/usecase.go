package reschedule_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/QuickCourt-BookingService/internal/availability"
	"github.com/m04kA/QuickCourt-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/QuickCourt-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/QuickCourt-BookingService/pkg/ptr"
	"github.com/m04kA/QuickCourt-BookingService/pkg/types"
)

// Request модель запроса на перенос бронирования
type Request struct {
	BookingID int64            // ID бронирования
	ActorID   int64            // ID пользователя, выполняющего перенос
	Date      time.Time        // Новая дата бронирования
	StartTime types.TimeString // Новое время начала слота
	EndTime   types.TimeString // Новое время окончания слота
}

// Response модель ответа с перенесенным бронированием
// Стоимость при переносе не пересчитывается
type Response struct {
	ID              int64
	Status          string
	BookingDate     time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
	TotalAmount     float64
	Currency        string
}

// UseCase use case для переноса бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case переноса бронирования
// Перенос мутирует существующее бронирование: ID и стоимость сохраняются,
// длительность пересчитывается из новых границ слота. Проверка конфликта
// выполняется в сериализуемой транзакции и исключает само бронирование
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleBooking: booking=%d, actor=%d, date=%s, slot=%s-%s",
		req.BookingID, req.ActorID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Собираем новый временной слот
	durationMinutes, err := req.StartTime.MinutesUntil(req.EndTime)
	if err != nil {
		uc.logger.Warn("RescheduleBooking: invalid time slot %s-%s: %v", req.StartTime, req.EndTime, err)
		return nil, ErrInvalidTimeSlot
	}
	slot := domain.TimeSlot{
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		DurationMinutes: durationMinutes,
	}

	// 3. Получаем бронирование
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("RescheduleBooking: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("RescheduleBooking: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	// 4. Перенести может только владелец бронирования
	if booking.UserID != req.ActorID {
		uc.logger.Warn("RescheduleBooking: access denied for actor=%d to booking id=%d", req.ActorID, req.BookingID)
		return nil, ErrAccessDenied
	}

	// 5. Перенос доступен только подтвержденному бронированию
	if !booking.CanBeRescheduled() {
		uc.logger.Warn("RescheduleBooking: booking id=%d cannot be rescheduled, status=%s",
			req.BookingID, booking.Status)
		return nil, ErrCannotReschedule
	}

	// 6. Новое начало должно быть строго в будущем
	now := uc.timeProvider.Now()
	startMinutes, err := slot.StartTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to compute start datetime: %v", ErrInternal, err)
	}
	day := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, req.Date.Location())
	startDateTime := day.Add(time.Duration(startMinutes) * time.Minute)
	if !startDateTime.After(now) {
		uc.logger.Warn("RescheduleBooking: new slot start %s is not in the future", startDateTime)
		return nil, ErrBookingInPast
	}

	// 7. Проверка конфликта и перенос в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Активные бронирования корта на новую дату с блокировкой (FOR UPDATE)
		filter := domain.FacilityBookingsFilter{
			FacilityID:      booking.FacilityID,
			CourtID:         ptr.Ptr(booking.Court.CourtID),
			Date:            ptr.Ptr(req.Date),
			IncludeInactive: false,
		}

		existing, err := uc.bookingRepo.GetByFacilityWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("RescheduleBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 7.2. Само бронирование конфликтом не считается
		others := make([]*domain.Booking, 0, len(existing))
		for _, b := range existing {
			if b.ID == booking.ID {
				continue
			}
			others = append(others, b)
		}

		if conflict := availability.FindConflict(others, booking.Court.CourtID, slot); conflict != nil {
			uc.logger.Warn("RescheduleBooking: new slot conflicts with booking id=%d (%s-%s)",
				conflict.ID, conflict.TimeSlot.StartTime, conflict.TimeSlot.EndTime)
			return ErrSlotConflict
		}

		// 7.3. Применяем перенос guarded UPDATE
		if err := uc.bookingRepo.Reschedule(txCtx, req.BookingID, req.Date, slot); err != nil {
			switch {
			case errors.Is(err, bookingRepo.ErrNotReschedulable):
				uc.logger.Warn("RescheduleBooking: booking id=%d left confirmed status", req.BookingID)
				return ErrCannotReschedule
			case errors.Is(err, bookingRepo.ErrSlotConflict):
				uc.logger.Warn("RescheduleBooking: storage rejected overlapping slot for booking id=%d", req.BookingID)
				return ErrSlotConflict
			}
			uc.logger.Error("RescheduleBooking: failed to reschedule booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to reschedule: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("RescheduleBooking: successfully rescheduled booking id=%d to %s %s-%s",
		req.BookingID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	return &Response{
		ID:              req.BookingID,
		Status:          string(domain.StatusConfirmed),
		BookingDate:     req.Date,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		DurationMinutes: durationMinutes,
		TotalAmount:     booking.Pricing.TotalAmount,
		Currency:        booking.Pricing.Currency,
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if req.ActorID <= 0 {
		return fmt.Errorf("%w: actorID must be positive", ErrInvalidInput)
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

	return nil
}
