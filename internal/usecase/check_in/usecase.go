package check_in

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/QuickCourt-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/QuickCourt-BookingService/internal/infra/storage/booking"
)

// DefaultMethod способ отметки по умолчанию
const DefaultMethod = "manual"

// Request модель запроса на отметку о приходе
type Request struct {
	BookingID int64  // ID бронирования
	ActorID   int64  // ID пользователя, выполняющего отметку
	Method    string // Способ отметки (manual, qr_code), опционально
}

// Response модель ответа с результатом отметки
type Response struct {
	ID          int64
	Status      string
	CheckInTime time.Time
	Method      string
}

// UseCase use case для отметки о приходе
type UseCase struct {
	bookingRepo  BookingRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case отметки о приходе
// Отметка переводит подтвержденное бронирование в in_progress.
// Разрешена только владельцу бронирования и только в день бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckIn: booking=%d, actor=%d", req.BookingID, req.ActorID)

	// 1. Валидация входных данных
	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}
	if req.ActorID <= 0 {
		return nil, fmt.Errorf("%w: actorID must be positive", ErrInvalidInput)
	}

	// 2. Получаем бронирование
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("CheckIn: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("CheckIn: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	// 3. Отметиться может только владелец бронирования
	if booking.UserID != req.ActorID {
		uc.logger.Warn("CheckIn: access denied for actor=%d to booking id=%d", req.ActorID, req.BookingID)
		return nil, ErrAccessDenied
	}

	// 4. Проверяем статус и отсутствие предыдущей отметки
	if !booking.CanCheckIn() {
		uc.logger.Warn("CheckIn: booking id=%d cannot check in, status=%s", req.BookingID, booking.Status)
		return nil, ErrNotAllowed
	}

	// 5. Отметка возможна только в день бронирования
	now := uc.timeProvider.Now()
	if !isSameDay(booking.BookingDate, now) {
		uc.logger.Warn("CheckIn: booking id=%d is on %s, today is %s",
			req.BookingID, booking.BookingDate.Format(domain.DateFormat), now.Format(domain.DateFormat))
		return nil, ErrNotBookingDay
	}

	method := req.Method
	if method == "" {
		method = DefaultMethod
	}

	// 6. Применяем отметку guarded UPDATE
	if err := uc.bookingRepo.SetCheckIn(ctx, req.BookingID, now, method); err != nil {
		if errors.Is(err, bookingRepo.ErrCheckInNotAllowed) {
			uc.logger.Warn("CheckIn: booking id=%d already checked in or left confirmed status", req.BookingID)
			return nil, ErrNotAllowed
		}
		uc.logger.Error("CheckIn: failed to check in booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to check in: %v", ErrInternal, err)
	}

	uc.logger.Info("CheckIn: successfully checked in booking id=%d at %s", req.BookingID, now.Format(time.RFC3339))

	return &Response{
		ID:          req.BookingID,
		Status:      string(domain.StatusInProgress),
		CheckInTime: now,
		Method:      method,
	}, nil
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
