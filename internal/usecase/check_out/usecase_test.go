package check_out

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/QuickCourt-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/QuickCourt-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/QuickCourt-BookingService/pkg/ptr"
)

type fakeRepo struct {
	booking      *domain.Booking
	getErr       error
	setErr       error
	checkedOutAt *time.Time
}

func (f *fakeRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.booking, nil
}

func (f *fakeRepo) SetCheckOut(_ context.Context, _ int64, at time.Time, _ string) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.checkedOutAt = &at
	return nil
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var testNow = time.Date(2026, 3, 16, 11, 5, 0, 0, time.UTC)

func checkedInBooking() *domain.Booking {
	return &domain.Booking{
		ID:          5,
		UserID:      7,
		FacilityID:  1,
		BookingDate: time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC),
		TimeSlot:    domain.TimeSlot{StartTime: "10:00", EndTime: "11:00", DurationMinutes: 60},
		Status:      domain.StatusInProgress,
		CheckIn: domain.CheckEvent{
			Time:   ptr.Ptr(time.Date(2026, 3, 16, 9, 55, 0, 0, time.UTC)),
			Method: ptr.Ptr("manual"),
		},
	}
}

func newTestUseCase(repo *fakeRepo, now time.Time) *UseCase {
	uc := NewUseCase(repo, nopLogger{})
	uc.timeProvider = fixedClock{now: now}
	return uc
}

func TestExecute_Success(t *testing.T) {
	repo := &fakeRepo{booking: checkedInBooking()}
	uc := newTestUseCase(repo, testNow)

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 5, ActorID: 7})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), resp.Status)
	assert.Equal(t, testNow, resp.CheckOutTime)
	assert.Equal(t, DefaultMethod, resp.Method)
	require.NotNil(t, repo.checkedOutAt)
	assert.Equal(t, testNow, *repo.checkedOutAt)
}

func TestExecute_NotOwner(t *testing.T) {
	repo := &fakeRepo{booking: checkedInBooking()}
	uc := newTestUseCase(repo, testNow)

	_, err := uc.Execute(context.Background(), &Request{BookingID: 5, ActorID: 8})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecute_NeverCheckedIn(t *testing.T) {
	booking := checkedInBooking()
	booking.Status = domain.StatusConfirmed
	booking.CheckIn = domain.CheckEvent{}
	repo := &fakeRepo{booking: booking}
	uc := newTestUseCase(repo, testNow)

	_, err := uc.Execute(context.Background(), &Request{BookingID: 5, ActorID: 7})

	assert.ErrorIs(t, err, ErrNotAllowed)
}

func TestExecute_AlreadyCheckedOut(t *testing.T) {
	booking := checkedInBooking()
	booking.Status = domain.StatusCompleted
	booking.CheckOut = domain.CheckEvent{Time: ptr.Ptr(testNow.Add(-time.Minute)), Method: ptr.Ptr("manual")}
	repo := &fakeRepo{booking: booking}
	uc := newTestUseCase(repo, testNow)

	_, err := uc.Execute(context.Background(), &Request{BookingID: 5, ActorID: 7})

	assert.ErrorIs(t, err, ErrNotAllowed)
}

func TestExecute_ConcurrentCheckOutMapped(t *testing.T) {
	repo := &fakeRepo{booking: checkedInBooking(), setErr: bookingRepo.ErrCheckOutNotAllowed}
	uc := newTestUseCase(repo, testNow)

	_, err := uc.Execute(context.Background(), &Request{BookingID: 5, ActorID: 7})

	assert.ErrorIs(t, err, ErrNotAllowed)
}

func TestExecute_NotFound(t *testing.T) {
	repo := &fakeRepo{getErr: bookingRepo.ErrBookingNotFound}
	uc := newTestUseCase(repo, testNow)

	_, err := uc.Execute(context.Background(), &Request{BookingID: 5, ActorID: 7})

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_Validation(t *testing.T) {
	uc := newTestUseCase(&fakeRepo{}, testNow)

	_, err := uc.Execute(context.Background(), &Request{BookingID: -1, ActorID: 7})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
