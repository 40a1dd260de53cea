package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/QuickCourt-BookingService/internal/availability"
	"github.com/m04kA/QuickCourt-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/QuickCourt-BookingService/internal/infra/storage/booking"
	facilityClient "github.com/m04kA/QuickCourt-BookingService/internal/integrations/facilityservice"
	"github.com/m04kA/QuickCourt-BookingService/internal/pricing"
	"github.com/m04kA/QuickCourt-BookingService/pkg/ptr"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo    BookingRepository
	facilityClient FacilityServiceClient
	txManager      TransactionManager
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	facilityClient FacilityServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		facilityClient: facilityClient,
		txManager:      txManager,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка конфликта и запись выполняются в сериализуемой транзакции
// для предотвращения двойного бронирования при конкурентных запросах
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, facility=%d, court=%s, date=%s, slot=%s-%s",
		req.UserID, req.FacilityID, req.CourtID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Собираем временной слот, длительность выводится из границ
	durationMinutes, err := req.StartTime.MinutesUntil(req.EndTime)
	if err != nil {
		uc.logger.Warn("CreateBooking: invalid time slot %s-%s: %v", req.StartTime, req.EndTime, err)
		return nil, ErrInvalidTimeSlot
	}
	slot := domain.TimeSlot{
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		DurationMinutes: durationMinutes,
	}

	// 4. Получаем площадку
	facility, err := uc.facilityClient.GetFacility(ctx, req.FacilityID)
	if err != nil {
		if errors.Is(err, facilityClient.ErrFacilityNotFound) {
			uc.logger.Warn("CreateBooking: facility id=%d not found", req.FacilityID)
			return nil, ErrFacilityNotFound
		}
		uc.logger.Error("CreateBooking: failed to get facility id=%d: %v", req.FacilityID, err)
		return nil, fmt.Errorf("%w: failed to get facility: %v", ErrInternal, err)
	}

	if !facility.IsActive {
		uc.logger.Warn("CreateBooking: facility id=%d is not active", req.FacilityID)
		return nil, ErrFacilityInactive
	}

	// 5. Проверяем корт
	court := facility.CourtByID(req.CourtID)
	if court == nil {
		uc.logger.Warn("CreateBooking: court id=%s not found in facility id=%d", req.CourtID, req.FacilityID)
		return nil, ErrCourtNotFound
	}
	if !court.IsActive {
		uc.logger.Warn("CreateBooking: court id=%s is not active", req.CourtID)
		return nil, ErrCourtInactive
	}

	// 6. Начало слота должно быть строго в будущем
	startDateTime, err := combineDateTime(req.Date, slot)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to compute start datetime: %v", ErrInternal, err)
	}
	if !startDateTime.After(now) {
		uc.logger.Warn("CreateBooking: slot start %s is not in the future", startDateTime)
		return nil, ErrBookingInPast
	}

	// 7. Слот должен целиком попадать в рабочие часы площадки
	if !availability.IsWithinOperatingHours(facility.OperatingHours, req.Date, slot) {
		uc.logger.Warn("CreateBooking: slot %s-%s is outside operating hours on %s",
			req.StartTime, req.EndTime, req.Date.Format(domain.DateFormat))
		return nil, ErrOutsideOperatingHours
	}

	// Переменная для хранения результата
	var result *domain.Booking

	// 8. Проверка конфликта и создание в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 8.1. Активные бронирования корта на эту дату с блокировкой (FOR UPDATE)
		filter := domain.FacilityBookingsFilter{
			FacilityID:      req.FacilityID,
			CourtID:         ptr.Ptr(req.CourtID),
			Date:            ptr.Ptr(req.Date),
			IncludeInactive: false,
		}

		existing, err := uc.bookingRepo.GetByFacilityWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 8.2. Проверяем пересечение с активными бронированиями
		if conflict := availability.FindConflict(existing, req.CourtID, slot); conflict != nil {
			uc.logger.Warn("CreateBooking: slot conflicts with booking id=%d (%s-%s)",
				conflict.ID, conflict.TimeSlot.StartTime, conflict.TimeSlot.EndTime)
			return ErrSlotConflict
		}

		// 8.3. Вычисляем стоимость по ценовой политике площадки
		unitPrice := pricing.PriceForSlot(facility.Pricing, req.Date, req.StartTime)
		amount := pricing.ComputeBookingAmount(unitPrice, slot.DurationMinutes)

		currency := facility.Pricing.Currency
		if currency == "" {
			currency = domain.DefaultCurrency
		}

		// 8.4. Создаем бронирование с денормализацией данных корта
		booking := &domain.Booking{
			UserID:     req.UserID,
			FacilityID: req.FacilityID,
			Court: domain.CourtSnapshot{
				CourtID: court.CourtID,
				Name:    court.Name,
				Sport:   court.Sport,
			},
			BookingDate:      req.Date,
			TimeSlot:         slot,
			BookingType:      resolveBookingType(req.Type),
			RecurringDetails: req.Recurring,
			GroupDetails:     req.Group,
			Pricing: domain.Pricing{
				BaseAmount:  amount.BaseAmount,
				Taxes:       amount.Taxes,
				Discounts:   0,
				TotalAmount: amount.TotalAmount,
				Currency:    currency,
			},
			Payment: domain.Payment{
				Status: domain.PaymentPending,
			},
			Status: domain.StatusConfirmed,
			Notes:  req.Notes,
		}

		// 8.5. Сохраняем бронирование
		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotConflict) {
				uc.logger.Warn("CreateBooking: storage rejected overlapping slot for court=%s", req.CourtID)
				return ErrSlotConflict
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, total=%.2f %s",
		result.ID, result.Pricing.TotalAmount, result.Pricing.Currency)

	// 9. Увеличиваем счетчик бронирований площадки (best-effort)
	if err := uc.facilityClient.IncrementTotalBookings(ctx, req.FacilityID); err != nil {
		uc.logger.Warn("CreateBooking: failed to increment bookings counter for facility id=%d: %v",
			req.FacilityID, err)
	}

	return toResponse(result), nil
}
