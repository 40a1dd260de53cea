package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/QuickCourt-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/QuickCourt-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/QuickCourt-BookingService/internal/integrations/facilityservice"
	"github.com/m04kA/QuickCourt-BookingService/internal/service/bookings/models"
	"github.com/m04kA/QuickCourt-BookingService/pkg/ptr"
)

type fakeRepo struct {
	booking      *domain.Booking
	bookings     []*domain.Booking
	stats        *domain.RevenueStats
	getErr       error
	markPaidErr  error
	lastUserID   int64
	lastStatus   *domain.BookingStatus
	lastUpcoming *time.Time
	lastFilter   *domain.FacilityBookingsFilter
	paidMethod   string
	paidTxnID    string
}

func (f *fakeRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.booking, nil
}

func (f *fakeRepo) GetByUserID(_ context.Context, userID int64, status *domain.BookingStatus, upcomingFrom *time.Time) ([]*domain.Booking, error) {
	f.lastUserID = userID
	f.lastStatus = status
	f.lastUpcoming = upcomingFrom
	return f.bookings, nil
}

func (f *fakeRepo) GetByFacilityWithFilter(_ context.Context, filter domain.FacilityBookingsFilter) ([]*domain.Booking, error) {
	f.lastFilter = &filter
	return f.bookings, nil
}

func (f *fakeRepo) GetRevenueStats(_ context.Context, _ int64, _ *time.Time) (*domain.RevenueStats, error) {
	return f.stats, nil
}

func (f *fakeRepo) MarkPaid(_ context.Context, _ int64, method, transactionID string, _ time.Time) error {
	if f.markPaidErr != nil {
		return f.markPaidErr
	}
	f.paidMethod = method
	f.paidTxnID = transactionID
	return nil
}

type fakeFacilityClient struct {
	facility *facilityservice.Facility
	getErr   error
}

func (f *fakeFacilityClient) GetFacility(_ context.Context, _ int64) (*facilityservice.Facility, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.facility, nil
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var testNow = time.Date(2026, 3, 16, 12, 30, 45, 0, time.UTC)

func testBooking() *domain.Booking {
	return &domain.Booking{
		ID:          5,
		UserID:      7,
		FacilityID:  1,
		Court:       domain.CourtSnapshot{CourtID: "court_1", Name: "Court 1", Sport: "badminton"},
		BookingDate: time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC),
		TimeSlot:    domain.TimeSlot{StartTime: "10:00", EndTime: "11:00", DurationMinutes: 60},
		BookingType: domain.TypeSingle,
		Pricing:     domain.Pricing{BaseAmount: 500, Taxes: 90, TotalAmount: 590, Currency: "INR"},
		Payment:     domain.Payment{Status: domain.PaymentPending},
		Status:      domain.StatusConfirmed,
	}
}

func testFacility() *facilityservice.Facility {
	return &facilityservice.Facility{ID: 1, OwnerID: 99, IsActive: true}
}

func newTestService(repo *fakeRepo, client *fakeFacilityClient) *Service {
	svc := NewService(repo, client, nopLogger{})
	svc.timeProvider = fixedClock{now: testNow}
	return svc
}

func TestGetByID_Owner(t *testing.T) {
	repo := &fakeRepo{booking: testBooking()}
	svc := newTestService(repo, &fakeFacilityClient{facility: testFacility()})

	resp, err := svc.GetByID(context.Background(), 5, 7, domain.RoleUser)

	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.ID)
	assert.Equal(t, "2026-03-16", resp.BookingDate)
	assert.Equal(t, "10:00", resp.StartTime)
	assert.Equal(t, 590.0, resp.TotalAmount)
}

func TestGetByID_FacilityOwner(t *testing.T) {
	repo := &fakeRepo{booking: testBooking()}
	svc := newTestService(repo, &fakeFacilityClient{facility: testFacility()})

	_, err := svc.GetByID(context.Background(), 5, 99, domain.RoleOwner)

	require.NoError(t, err)
}

func TestGetByID_Admin(t *testing.T) {
	repo := &fakeRepo{booking: testBooking()}
	svc := newTestService(repo, &fakeFacilityClient{})

	_, err := svc.GetByID(context.Background(), 5, 1000, domain.RoleAdmin)

	require.NoError(t, err)
}

func TestGetByID_StrangerDenied(t *testing.T) {
	repo := &fakeRepo{booking: testBooking()}
	svc := newTestService(repo, &fakeFacilityClient{facility: testFacility()})

	_, err := svc.GetByID(context.Background(), 5, 1000, domain.RoleUser)

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	repo := &fakeRepo{getErr: bookingRepo.ErrBookingNotFound}
	svc := newTestService(repo, &fakeFacilityClient{})

	_, err := svc.GetByID(context.Background(), 5, 7, domain.RoleUser)

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetUserBookings_Self(t *testing.T) {
	repo := &fakeRepo{bookings: []*domain.Booking{testBooking()}}
	svc := newTestService(repo, &fakeFacilityClient{})

	resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: 7, ActorID: 7, ActorRole: domain.RoleUser,
	})

	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Nil(t, resp.Stats)
	assert.Equal(t, int64(7), repo.lastUserID)
	assert.Nil(t, repo.lastStatus)
	assert.Nil(t, repo.lastUpcoming)
}

func TestGetUserBookings_OtherUserDenied(t *testing.T) {
	svc := newTestService(&fakeRepo{}, &fakeFacilityClient{})

	_, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: 7, ActorID: 8, ActorRole: domain.RoleUser,
	})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetUserBookings_AdminSeesAnyUser(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo, &fakeFacilityClient{})

	_, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: 7, ActorID: 1000, ActorRole: domain.RoleAdmin,
	})

	require.NoError(t, err)
}

func TestGetUserBookings_UpcomingFromTodayMidnight(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo, &fakeFacilityClient{})

	_, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: 7, ActorID: 7, ActorRole: domain.RoleUser, Upcoming: true,
	})

	require.NoError(t, err)
	require.NotNil(t, repo.lastUpcoming)
	assert.Equal(t, time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), *repo.lastUpcoming)
}

func TestGetUserBookings_StatusFilter(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo, &fakeFacilityClient{})

	_, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: 7, ActorID: 7, ActorRole: domain.RoleUser, Status: ptr.Ptr("confirmed"),
	})

	require.NoError(t, err)
	require.NotNil(t, repo.lastStatus)
	assert.Equal(t, domain.StatusConfirmed, *repo.lastStatus)
}

func TestGetUserBookings_InvalidStatus(t *testing.T) {
	svc := newTestService(&fakeRepo{}, &fakeFacilityClient{})

	_, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: 7, ActorID: 7, ActorRole: domain.RoleUser, Status: ptr.Ptr("unknown"),
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetFacilityBookings_Owner(t *testing.T) {
	repo := &fakeRepo{bookings: []*domain.Booking{testBooking()}}
	svc := newTestService(repo, &fakeFacilityClient{facility: testFacility()})

	resp, err := svc.GetFacilityBookings(context.Background(), &models.GetFacilityBookingsRequest{
		FacilityID: 1, ActorID: 99, ActorRole: domain.RoleOwner,
	})

	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Nil(t, resp.Stats)
}

func TestGetFacilityBookings_NotOwnerDenied(t *testing.T) {
	svc := newTestService(&fakeRepo{}, &fakeFacilityClient{facility: testFacility()})

	_, err := svc.GetFacilityBookings(context.Background(), &models.GetFacilityBookingsRequest{
		FacilityID: 1, ActorID: 7, ActorRole: domain.RoleUser,
	})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetFacilityBookings_WithStats(t *testing.T) {
	repo := &fakeRepo{
		bookings: []*domain.Booking{testBooking()},
		stats: &domain.RevenueStats{
			TotalRevenue:        1180,
			TotalBookings:       2,
			AverageBookingValue: 590,
		},
	}
	svc := newTestService(repo, &fakeFacilityClient{facility: testFacility()})

	resp, err := svc.GetFacilityBookings(context.Background(), &models.GetFacilityBookingsRequest{
		FacilityID: 1, ActorID: 99, ActorRole: domain.RoleOwner, WithStats: true,
	})

	require.NoError(t, err)
	require.NotNil(t, resp.Stats)
	assert.Equal(t, 1180.0, resp.Stats.TotalRevenue)
	assert.Equal(t, int64(2), resp.Stats.TotalBookings)
}

func TestGetFacilityBookings_FilterPassthrough(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo, &fakeFacilityClient{facility: testFacility()})

	date := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	_, err := svc.GetFacilityBookings(context.Background(), &models.GetFacilityBookingsRequest{
		FacilityID: 1, ActorID: 99, ActorRole: domain.RoleOwner,
		CourtID: ptr.Ptr("court_1"), Date: &date, Status: ptr.Ptr("cancelled"), IncludeInactive: true,
	})

	require.NoError(t, err)
	require.NotNil(t, repo.lastFilter)
	assert.Equal(t, "court_1", *repo.lastFilter.CourtID)
	assert.Equal(t, domain.StatusCancelled, *repo.lastFilter.Status)
	assert.True(t, repo.lastFilter.IncludeInactive)
}

func TestPay_Success(t *testing.T) {
	repo := &fakeRepo{booking: testBooking()}
	svc := newTestService(repo, &fakeFacilityClient{})

	resp, err := svc.Pay(context.Background(), 5, &models.PayBookingRequest{ActorID: 7, Method: "upi"})

	require.NoError(t, err)
	assert.Equal(t, string(domain.PaymentPaid), resp.PaymentStatus)
	assert.Equal(t, "upi", resp.Method)
	assert.Equal(t, "upi", repo.paidMethod)
	assert.NotEmpty(t, resp.TransactionID)
	assert.Equal(t, resp.TransactionID, repo.paidTxnID)
}

func TestPay_DefaultMethod(t *testing.T) {
	repo := &fakeRepo{booking: testBooking()}
	svc := newTestService(repo, &fakeFacilityClient{})

	resp, err := svc.Pay(context.Background(), 5, &models.PayBookingRequest{ActorID: 7})

	require.NoError(t, err)
	assert.Equal(t, "card", resp.Method)
}

func TestPay_NotOwner(t *testing.T) {
	repo := &fakeRepo{booking: testBooking()}
	svc := newTestService(repo, &fakeFacilityClient{})

	_, err := svc.Pay(context.Background(), 5, &models.PayBookingRequest{ActorID: 8})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestPay_AlreadyPaid(t *testing.T) {
	repo := &fakeRepo{booking: testBooking(), markPaidErr: bookingRepo.ErrPaymentNotPending}
	svc := newTestService(repo, &fakeFacilityClient{})

	_, err := svc.Pay(context.Background(), 5, &models.PayBookingRequest{ActorID: 7})

	assert.ErrorIs(t, err, ErrAlreadyPaid)
}
