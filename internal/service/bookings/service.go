package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/QuickCourt-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/QuickCourt-BookingService/internal/infra/storage/booking"
	facilityClient "github.com/m04kA/QuickCourt-BookingService/internal/integrations/facilityservice"
	"github.com/m04kA/QuickCourt-BookingService/internal/service/bookings/models"
)

// Service сервис для чтения бронирований и заглушки оплаты
// Мутации жизненного цикла (создание, отмена, перенос, отметки) живут
// в отдельных use case пакетах
type Service struct {
	bookingRepo    BookingRepository
	facilityClient FacilityServiceClient
	timeProvider   TimeProvider
	logger         Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	facilityClient FacilityServiceClient,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:    bookingRepo,
		facilityClient: facilityClient,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// GetByID получает бронирование по ID
// Бронирование видит его владелец, владелец площадки и администратор
func (s *Service) GetByID(ctx context.Context, id int64, actorID int64, actorRole string) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for actor=%d", id, actorID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if err := s.checkBookingAccess(ctx, booking, actorID, actorRole); err != nil {
		s.logger.Warn("GetByID: access denied for actor=%d to booking id=%d", actorID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя
// Пользователь видит только свои бронирования, администратор - любые
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v, upcoming=%t",
		req.UserID, req.Status, req.Upcoming)

	if req.UserID != req.ActorID && req.ActorRole != domain.RoleAdmin {
		s.logger.Warn("GetUserBookings: access denied for actor=%d to bookings of user=%d", req.ActorID, req.UserID)
		return nil, ErrAccessDenied
	}

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	// Для предстоящих бронирований отсекаем все даты до сегодняшней
	var upcomingFrom *time.Time
	if req.Upcoming {
		now := s.timeProvider.Now()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		upcomingFrom = &today
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID, domainStatus, upcomingFrom)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetFacilityBookings получает бронирования площадки с гибкой фильтрацией
// Доступно владельцу площадки и администратору. При WithStats ответ
// дополняется агрегированной выручкой по оплаченным бронированиям
func (s *Service) GetFacilityBookings(ctx context.Context, req *models.GetFacilityBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetFacilityBookings: fetching bookings for facility=%d, actor=%d", req.FacilityID, req.ActorID)

	if err := s.checkFacilityAccess(ctx, req.FacilityID, req.ActorID, req.ActorRole); err != nil {
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetFacilityBookings: invalid filter for facility=%d: %v", req.FacilityID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByFacilityWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetFacilityBookings: repository error for facility=%d: %v", req.FacilityID, err)
		return nil, fmt.Errorf("%w: GetFacilityBookings - repository error: %v", ErrInternal, err)
	}

	resp := models.FromDomainBookingList(bookings)

	if req.WithStats {
		stats, err := s.bookingRepo.GetRevenueStats(ctx, req.FacilityID, req.Date)
		if err != nil {
			s.logger.Error("GetFacilityBookings: failed to get revenue stats for facility=%d: %v", req.FacilityID, err)
			return nil, fmt.Errorf("%w: GetFacilityBookings - revenue stats error: %v", ErrInternal, err)
		}
		resp.Stats = models.FromDomainRevenueStats(stats)
	}

	s.logger.Info("GetFacilityBookings: successfully fetched %d bookings for facility=%d",
		len(bookings), req.FacilityID)
	return resp, nil
}

// Pay отмечает бронирование оплаченным
// Платёжный шлюз не подключён: оплата имитируется, идентификатор
// транзакции генерируется локально
func (s *Service) Pay(ctx context.Context, bookingID int64, req *models.PayBookingRequest) (*models.PayBookingResponse, error) {
	s.logger.Info("Pay: paying booking id=%d by actor=%d", bookingID, req.ActorID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Pay: booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Pay: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Pay - repository error: %v", ErrInternal, err)
	}

	// Оплатить может только владелец бронирования
	if booking.UserID != req.ActorID {
		s.logger.Warn("Pay: access denied for actor=%d to booking id=%d", req.ActorID, bookingID)
		return nil, ErrAccessDenied
	}

	method := req.Method
	if method == "" {
		method = "card"
	}

	now := s.timeProvider.Now()
	transactionID := fmt.Sprintf("TXN%d", now.UnixMilli())

	if err := s.bookingRepo.MarkPaid(ctx, bookingID, method, transactionID, now); err != nil {
		if errors.Is(err, bookingRepo.ErrPaymentNotPending) {
			s.logger.Warn("Pay: booking id=%d payment is not pending", bookingID)
			return nil, ErrAlreadyPaid
		}
		s.logger.Error("Pay: failed to mark booking id=%d as paid: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Pay - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Pay: successfully paid booking id=%d, transaction=%s", bookingID, transactionID)

	return &models.PayBookingResponse{
		ID:            bookingID,
		PaymentStatus: string(domain.PaymentPaid),
		Method:        method,
		TransactionID: transactionID,
		PaidAt:        now.Format(time.RFC3339),
	}, nil
}

// Вспомогательные методы

// checkBookingAccess проверяет доступ к бронированию
// Доступ имеют владелец бронирования, владелец площадки и администратор
func (s *Service) checkBookingAccess(ctx context.Context, booking *domain.Booking, actorID int64, actorRole string) error {
	if booking.UserID == actorID {
		return nil
	}

	if actorRole == domain.RoleAdmin {
		return nil
	}

	return s.checkFacilityAccess(ctx, booking.FacilityID, actorID, actorRole)
}

// checkFacilityAccess проверяет, что пользователь владеет площадкой
// или является администратором
func (s *Service) checkFacilityAccess(ctx context.Context, facilityID int64, actorID int64, actorRole string) error {
	if actorRole == domain.RoleAdmin {
		return nil
	}

	facility, err := s.facilityClient.GetFacility(ctx, facilityID)
	if err != nil {
		if errors.Is(err, facilityClient.ErrFacilityNotFound) {
			s.logger.Warn("checkFacilityAccess: facility id=%d not found", facilityID)
			return ErrFacilityNotFound
		}
		s.logger.Error("checkFacilityAccess: failed to get facility id=%d: %v", facilityID, err)
		return fmt.Errorf("%w: checkFacilityAccess - failed to get facility: %v", ErrInternal, err)
	}

	if facility.IsOwner(actorID) {
		return nil
	}

	s.logger.Warn("checkFacilityAccess: actor=%d is not the owner of facility=%d", actorID, facilityID)
	return ErrAccessDenied
}
