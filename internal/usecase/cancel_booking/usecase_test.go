package cancel_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/QuickCourt-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/QuickCourt-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/QuickCourt-BookingService/internal/integrations/facilityservice"
	"github.com/m04kA/QuickCourt-BookingService/pkg/ptr"
)

// --- фейки ---

type fakeRepo struct {
	booking   *domain.Booking
	getErr    error
	applyErr  error
	appliedC  *domain.Cancellation
	appliedP  *domain.Payment
}

func (f *fakeRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.booking, nil
}

func (f *fakeRepo) ApplyCancellation(_ context.Context, _ int64, c domain.Cancellation, p domain.Payment) error {
	if f.applyErr != nil {
		return f.applyErr
	}
	f.appliedC = &c
	f.appliedP = &p
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

// --- фикстуры ---

// Слот 10:00-11:00 16 марта; "сейчас" 08:00 того же дня, то есть ровно
// за 2 часа до начала
var testNow = time.Date(2026, 3, 16, 8, 0, 0, 0, time.UTC)

func testBooking() *domain.Booking {
	return &domain.Booking{
		ID:          5,
		UserID:      7,
		FacilityID:  1,
		Court:       domain.CourtSnapshot{CourtID: "court_1"},
		BookingDate: time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC),
		TimeSlot:    domain.TimeSlot{StartTime: "10:00", EndTime: "11:00", DurationMinutes: 60},
		Pricing:     domain.Pricing{BaseAmount: 500, Taxes: 90, TotalAmount: 590, Currency: "INR"},
		Payment:     domain.Payment{Status: domain.PaymentPaid, PaidAt: ptr.Ptr(testNow.Add(-time.Hour))},
		Status:      domain.StatusConfirmed,
	}
}

func testFacility() *facilityservice.Facility {
	return &facilityservice.Facility{
		ID:       1,
		OwnerID:  99,
		IsActive: true,
		CancellationPolicy: facilityservice.CancellationPolicy{
			FreeUntilHours:   2,
			RefundPercentage: 80,
		},
	}
}

func newTestUseCase(repo *fakeRepo, client *fakeFacilityClient, now time.Time) *UseCase {
	uc := NewUseCase(repo, client, nopLogger{})
	uc.timeProvider = fixedClock{now: now}
	return uc
}

// --- тесты ---

func TestExecute_OwnerCancelWithRefund(t *testing.T) {
	repo := &fakeRepo{booking: testBooking()}
	uc := newTestUseCase(repo, &fakeFacilityClient{facility: testFacility()}, testNow)

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 5, ActorID: 7, ActorRole: domain.RoleUser})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	assert.Equal(t, domain.CancelledByUser, resp.CancelledBy)
	assert.True(t, resp.RefundEligible)
	assert.Equal(t, string(domain.PaymentRefunded), resp.PaymentStatus)
	require.NotNil(t, resp.RefundAmount)
	assert.Equal(t, 472.0, *resp.RefundAmount) // 80% от 590

	require.NotNil(t, repo.appliedP)
	assert.Equal(t, domain.PaymentRefunded, repo.appliedP.Status)
	require.NotNil(t, repo.appliedP.RefundedAt)
	assert.Equal(t, testNow, *repo.appliedP.RefundedAt)
}

func TestExecute_RefundBoundaryExactlyAtPolicy(t *testing.T) {
	// Ровно freeUntilHours часов до начала - возврат положен
	repo := &fakeRepo{booking: testBooking()}
	uc := newTestUseCase(repo, &fakeFacilityClient{facility: testFacility()}, testNow)

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 5, ActorID: 7, ActorRole: domain.RoleUser})

	require.NoError(t, err)
	assert.True(t, resp.RefundEligible)
}

func TestExecute_RefundBoundaryJustUnderPolicy(t *testing.T) {
	// Хоть на секунду меньше freeUntilHours - возврата нет
	repo := &fakeRepo{booking: testBooking()}
	uc := newTestUseCase(repo, &fakeFacilityClient{facility: testFacility()}, testNow.Add(time.Second))

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 5, ActorID: 7, ActorRole: domain.RoleUser})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	assert.False(t, resp.RefundEligible)
	assert.Equal(t, string(domain.PaymentPaid), resp.PaymentStatus)
	assert.Nil(t, resp.RefundAmount)
}

func TestExecute_UnpaidBookingNoRefund(t *testing.T) {
	booking := testBooking()
	booking.Payment = domain.Payment{Status: domain.PaymentPending}
	repo := &fakeRepo{booking: booking}
	uc := newTestUseCase(repo, &fakeFacilityClient{facility: testFacility()}, testNow)

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 5, ActorID: 7, ActorRole: domain.RoleUser})

	require.NoError(t, err)
	assert.True(t, resp.RefundEligible)
	assert.Equal(t, string(domain.PaymentPending), resp.PaymentStatus)
	assert.Nil(t, resp.RefundAmount)
}

func TestExecute_AdminCancel(t *testing.T) {
	repo := &fakeRepo{booking: testBooking()}
	uc := newTestUseCase(repo, &fakeFacilityClient{facility: testFacility()}, testNow)

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 5, ActorID: 1000, ActorRole: domain.RoleAdmin})

	require.NoError(t, err)
	assert.Equal(t, domain.CancelledByAdmin, resp.CancelledBy)
}

func TestExecute_FacilityOwnerCancel(t *testing.T) {
	repo := &fakeRepo{booking: testBooking()}
	uc := newTestUseCase(repo, &fakeFacilityClient{facility: testFacility()}, testNow)

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 5, ActorID: 99, ActorRole: domain.RoleOwner})

	require.NoError(t, err)
	assert.Equal(t, domain.CancelledByFacility, resp.CancelledBy)
}

func TestExecute_StrangerDenied(t *testing.T) {
	repo := &fakeRepo{booking: testBooking()}
	uc := newTestUseCase(repo, &fakeFacilityClient{facility: testFacility()}, testNow)

	_, err := uc.Execute(context.Background(), &Request{BookingID: 5, ActorID: 1000, ActorRole: domain.RoleUser})

	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Nil(t, repo.appliedC)
}

func TestExecute_AlreadyCancelled(t *testing.T) {
	booking := testBooking()
	booking.Status = domain.StatusCancelled
	repo := &fakeRepo{booking: booking}
	uc := newTestUseCase(repo, &fakeFacilityClient{facility: testFacility()}, testNow)

	_, err := uc.Execute(context.Background(), &Request{BookingID: 5, ActorID: 7, ActorRole: domain.RoleUser})

	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestExecute_CompletedNotCancellable(t *testing.T) {
	booking := testBooking()
	booking.Status = domain.StatusCompleted
	repo := &fakeRepo{booking: booking}
	uc := newTestUseCase(repo, &fakeFacilityClient{facility: testFacility()}, testNow)

	_, err := uc.Execute(context.Background(), &Request{BookingID: 5, ActorID: 7, ActorRole: domain.RoleUser})

	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestExecute_ConcurrentCancelMapped(t *testing.T) {
	// Guarded UPDATE не нашел строку в отменяемом статусе
	repo := &fakeRepo{booking: testBooking(), applyErr: bookingRepo.ErrNotCancellable}
	uc := newTestUseCase(repo, &fakeFacilityClient{facility: testFacility()}, testNow)

	_, err := uc.Execute(context.Background(), &Request{BookingID: 5, ActorID: 7, ActorRole: domain.RoleUser})

	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestExecute_BookingNotFound(t *testing.T) {
	repo := &fakeRepo{getErr: bookingRepo.ErrBookingNotFound}
	uc := newTestUseCase(repo, &fakeFacilityClient{facility: testFacility()}, testNow)

	_, err := uc.Execute(context.Background(), &Request{BookingID: 5, ActorID: 7, ActorRole: domain.RoleUser})

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_Validation(t *testing.T) {
	uc := newTestUseCase(&fakeRepo{}, &fakeFacilityClient{}, testNow)

	_, err := uc.Execute(context.Background(), &Request{BookingID: 0, ActorID: 7})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{BookingID: 5, ActorID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
