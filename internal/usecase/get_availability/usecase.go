package get_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/QuickCourt-BookingService/internal/availability"
	"github.com/m04kA/QuickCourt-BookingService/internal/domain"
	facilityClient "github.com/m04kA/QuickCourt-BookingService/internal/integrations/facilityservice"
	"github.com/m04kA/QuickCourt-BookingService/internal/pricing"
	"github.com/m04kA/QuickCourt-BookingService/pkg/ptr"
	"github.com/m04kA/QuickCourt-BookingService/pkg/types"
)

// UseCase use case для получения сетки доступности площадки
type UseCase struct {
	bookingRepo    BookingRepository
	facilityClient FacilityServiceClient
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
		logger:         logger,
	}
}

// Execute выполняет use case получения сетки доступности
// Сетка строится часовыми слотами от открытия до закрытия площадки,
// неполный хвостовой слот отбрасывается. Слот считается занятым, если
// пересекается с активным бронированием корта. В закрытый день сетка пустая
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: facility=%d, date=%s", req.FacilityID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем площадку
	facility, err := uc.facilityClient.GetFacility(ctx, req.FacilityID)
	if err != nil {
		if errors.Is(err, facilityClient.ErrFacilityNotFound) {
			uc.logger.Warn("GetAvailability: facility id=%d not found", req.FacilityID)
			return nil, ErrFacilityNotFound
		}
		uc.logger.Error("GetAvailability: failed to get facility id=%d: %v", req.FacilityID, err)
		return nil, fmt.Errorf("%w: failed to get facility: %v", ErrInternal, err)
	}

	// 3. Отбираем корты: все активные либо один запрошенный
	courts, err := selectCourts(facility, req.CourtID)
	if err != nil {
		uc.logger.Warn("GetAvailability: court id=%v not found in facility id=%d", req.CourtID, req.FacilityID)
		return nil, err
	}

	// 4. Рабочие часы на указанную дату, в закрытый день сетка пустая
	schedule := facility.OperatingHours.ForWeekday(req.Date.Weekday())
	if schedule.Closed {
		uc.logger.Info("GetAvailability: facility id=%d is closed on %s", req.FacilityID, req.Date.Format(domain.DateFormat))
		return emptyResponse(req, courts), nil
	}

	open, err := types.NewTimeStringFromString(schedule.Open)
	if err != nil {
		uc.logger.Error("GetAvailability: invalid open time %q for facility id=%d", schedule.Open, req.FacilityID)
		return nil, fmt.Errorf("%w: invalid operating hours: %v", ErrInternal, err)
	}
	close := types.TimeString(schedule.Close)
	if err := close.ValidateEnd(); err != nil {
		uc.logger.Error("GetAvailability: invalid close time %q for facility id=%d", schedule.Close, req.FacilityID)
		return nil, fmt.Errorf("%w: invalid operating hours: %v", ErrInternal, err)
	}

	// 5. Генерируем часовую сетку слотов
	grid := availability.GenerateSlots(open, close, domain.DefaultSlotIntervalMinutes)

	// 6. Активные бронирования площадки на эту дату одним запросом
	filter := domain.FacilityBookingsFilter{
		FacilityID:      req.FacilityID,
		CourtID:         req.CourtID,
		Date:            ptr.Ptr(req.Date),
		IncludeInactive: false,
	}

	bookings, err := uc.bookingRepo.GetByFacilityWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 7. Размечаем сетку по каждому корту
	result := make([]CourtAvailability, 0, len(courts))
	for _, court := range courts {
		slots := make([]Slot, 0, len(grid))
		for _, slot := range grid {
			slots = append(slots, Slot{
				StartTime:    slot.StartTime,
				EndTime:      slot.EndTime,
				Available:    availability.FindConflict(bookings, court.CourtID, slot) == nil,
				PricePerHour: pricing.PriceForSlot(facility.Pricing, req.Date, slot.StartTime),
			})
		}

		result = append(result, CourtAvailability{
			CourtID: court.CourtID,
			Name:    court.Name,
			Sport:   court.Sport,
			Slots:   slots,
		})
	}

	uc.logger.Info("GetAvailability: generated %d slots for %d courts of facility=%d on %s",
		len(grid), len(result), req.FacilityID, req.Date.Format(domain.DateFormat))

	return &Response{
		FacilityID: req.FacilityID,
		Date:       req.Date,
		Courts:     result,
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.FacilityID <= 0 {
		return fmt.Errorf("%w: facilityID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.CourtID != nil && *req.CourtID == "" {
		return fmt.Errorf("%w: courtID must not be empty", ErrInvalidInput)
	}

	return nil
}

// selectCourts возвращает активные корты площадки либо один запрошенный
func selectCourts(facility *facilityClient.Facility, courtID *string) ([]facilityClient.Court, error) {
	if courtID != nil {
		court := facility.CourtByID(*courtID)
		if court == nil {
			return nil, ErrCourtNotFound
		}
		return []facilityClient.Court{*court}, nil
	}

	courts := make([]facilityClient.Court, 0, len(facility.Courts))
	for _, court := range facility.Courts {
		if court.IsActive {
			courts = append(courts, court)
		}
	}
	return courts, nil
}

// emptyResponse возвращает сетку без слотов для всех отобранных кортов
func emptyResponse(req *Request, courts []facilityClient.Court) *Response {
	result := make([]CourtAvailability, 0, len(courts))
	for _, court := range courts {
		result = append(result, CourtAvailability{
			CourtID: court.CourtID,
			Name:    court.Name,
			Sport:   court.Sport,
			Slots:   []Slot{},
		})
	}

	return &Response{
		FacilityID: req.FacilityID,
		Date:       req.Date,
		Courts:     result,
	}
}
