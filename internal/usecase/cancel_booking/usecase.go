package cancel_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/QuickCourt-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/QuickCourt-BookingService/internal/infra/storage/booking"
	facilityClient "github.com/m04kA/QuickCourt-BookingService/internal/integrations/facilityservice"
	"github.com/m04kA/QuickCourt-BookingService/internal/pricing"
	"github.com/m04kA/QuickCourt-BookingService/pkg/ptr"
)

// UseCase use case для отмены бронирования
type UseCase struct {
	bookingRepo    BookingRepository
	facilityClient FacilityServiceClient
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	facilityClient FacilityServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		facilityClient: facilityClient,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case отмены бронирования
// Право на возврат определяется политикой отмены площадки: отмена
// бесплатна, если до начала осталось не меньше freeUntilHours часов.
// Возврат выполняется только по уже оплаченному бронированию
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: booking=%d, actor=%d, role=%s", req.BookingID, req.ActorID, req.ActorRole)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем бронирование
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("CancelBooking: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("CancelBooking: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	// 3. Получаем площадку (политика отмены и проверка владельца)
	facility, err := uc.facilityClient.GetFacility(ctx, booking.FacilityID)
	if err != nil {
		if errors.Is(err, facilityClient.ErrFacilityNotFound) {
			uc.logger.Error("CancelBooking: facility id=%d not found for booking id=%d",
				booking.FacilityID, req.BookingID)
			return nil, fmt.Errorf("%w: facility not found", ErrInternal)
		}
		uc.logger.Error("CancelBooking: failed to get facility id=%d: %v", booking.FacilityID, err)
		return nil, fmt.Errorf("%w: failed to get facility: %v", ErrInternal, err)
	}

	// 4. Определяем, кто отменяет
	cancelledBy, err := resolveCancelledBy(booking, facility, req.ActorID, req.ActorRole)
	if err != nil {
		uc.logger.Warn("CancelBooking: access denied for actor=%d to booking id=%d", req.ActorID, req.BookingID)
		return nil, err
	}

	// 5. Проверяем, можно ли отменить бронирование
	if !booking.CanBeCancelled() {
		uc.logger.Warn("CancelBooking: booking id=%d cannot be cancelled, status=%s", req.BookingID, booking.Status)
		return nil, ErrCannotCancel
	}

	// 6. Право на возврат: часов до начала не меньше freeUntilHours
	now := uc.timeProvider.Now()
	startDateTime, err := booking.StartDateTime()
	if err != nil {
		uc.logger.Error("CancelBooking: failed to compute start datetime for booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to compute start datetime: %v", ErrInternal, err)
	}

	hoursUntilStart := startDateTime.Sub(now).Hours()
	refundEligible := hoursUntilStart >= float64(facility.CancellationPolicy.FreeUntilHours)

	cancellation := domain.Cancellation{
		CancelledBy:    cancelledBy,
		CancelledAt:    now,
		Reason:         req.Reason,
		RefundEligible: refundEligible,
	}

	// 7. Возврат только по оплаченному бронированию
	payment := booking.Payment
	if refundEligible && booking.IsPaid() {
		refund := pricing.RefundAmount(booking.Pricing.TotalAmount, facility.CancellationPolicy.RefundPercentage)
		payment.Status = domain.PaymentRefunded
		payment.RefundAmount = ptr.Ptr(refund)
		payment.RefundedAt = ptr.Ptr(now)

		uc.logger.Info("CancelBooking: booking id=%d refund=%.2f (%.0f%% of %.2f)",
			req.BookingID, refund, facility.CancellationPolicy.RefundPercentage, booking.Pricing.TotalAmount)
	}

	// 8. Применяем отмену одним guarded UPDATE
	if err := uc.bookingRepo.ApplyCancellation(ctx, req.BookingID, cancellation, payment); err != nil {
		if errors.Is(err, bookingRepo.ErrNotCancellable) {
			uc.logger.Warn("CancelBooking: booking id=%d already left cancellable status", req.BookingID)
			return nil, ErrCannotCancel
		}
		uc.logger.Error("CancelBooking: failed to cancel booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to cancel booking: %v", ErrInternal, err)
	}

	uc.logger.Info("CancelBooking: successfully cancelled booking id=%d by %s, refundEligible=%t",
		req.BookingID, cancelledBy, refundEligible)

	return &Response{
		ID:             req.BookingID,
		Status:         string(domain.StatusCancelled),
		CancelledBy:    cancelledBy,
		CancelledAt:    now,
		RefundEligible: refundEligible,
		PaymentStatus:  string(payment.Status),
		RefundAmount:   payment.RefundAmount,
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

	if len(req.Reason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: reason must not exceed %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	return nil
}

// resolveCancelledBy определяет, от чьего имени выполняется отмена
// Владелец бронирования отменяет как user, владелец площадки как facility,
// администратор как admin. Остальным доступ запрещён
func resolveCancelledBy(booking *domain.Booking, facility *facilityClient.Facility, actorID int64, actorRole string) (string, error) {
	if booking.UserID == actorID {
		return domain.CancelledByUser, nil
	}

	if actorRole == domain.RoleAdmin {
		return domain.CancelledByAdmin, nil
	}

	if facility.IsOwner(actorID) {
		return domain.CancelledByFacility, nil
	}

	return "", ErrAccessDenied
}
