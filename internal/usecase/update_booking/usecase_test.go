package update_booking

import (
	"context"
	"strings"
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
	updateErr    error
	updatedNotes *string
}

func (f *fakeRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.booking, nil
}

func (f *fakeRepo) UpdateNotes(_ context.Context, _ int64, notes string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updatedNotes = &notes
	return nil
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func testBooking() *domain.Booking {
	return &domain.Booking{
		ID:          5,
		UserID:      7,
		FacilityID:  1,
		BookingDate: time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC),
		TimeSlot:    domain.TimeSlot{StartTime: "10:00", EndTime: "11:00", DurationMinutes: 60},
		Status:      domain.StatusConfirmed,
	}
}

func newTestUseCase(repo *fakeRepo, now time.Time) *UseCase {
	uc := NewUseCase(repo, nopLogger{})
	uc.timeProvider = fixedClock{now: now}
	return uc
}

func TestExecute_Success(t *testing.T) {
	repo := &fakeRepo{booking: testBooking()}
	uc := newTestUseCase(repo, testNow)

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 5, ActorID: 7, Notes: ptr.Ptr("bring rackets")})

	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.ID)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, "bring rackets", resp.Notes)
	require.NotNil(t, repo.updatedNotes)
	assert.Equal(t, "bring rackets", *repo.updatedNotes)
}

func TestExecute_NotOwner(t *testing.T) {
	repo := &fakeRepo{booking: testBooking()}
	uc := newTestUseCase(repo, testNow)

	_, err := uc.Execute(context.Background(), &Request{BookingID: 5, ActorID: 8, Notes: ptr.Ptr("x")})

	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Nil(t, repo.updatedNotes)
}

func TestExecute_TerminalStatusNotEditable(t *testing.T) {
	for _, status := range []domain.BookingStatus{
		domain.StatusCompleted,
		domain.StatusCancelled,
		domain.StatusNoShow,
	} {
		booking := testBooking()
		booking.Status = status
		repo := &fakeRepo{booking: booking}
		uc := newTestUseCase(repo, testNow)

		_, err := uc.Execute(context.Background(), &Request{BookingID: 5, ActorID: 7, Notes: ptr.Ptr("x")})

		assert.ErrorIs(t, err, ErrNotEditable, "status %s", status)
	}
}

func TestExecute_BookingDayStartedNotEditable(t *testing.T) {
	repo := &fakeRepo{booking: testBooking()}
	uc := newTestUseCase(repo, testNow.AddDate(0, 0, 1))

	_, err := uc.Execute(context.Background(), &Request{BookingID: 5, ActorID: 7, Notes: ptr.Ptr("x")})

	assert.ErrorIs(t, err, ErrNotEditable)
}

func TestExecute_ConcurrentTransitionMapped(t *testing.T) {
	repo := &fakeRepo{booking: testBooking(), updateErr: bookingRepo.ErrNotEditable}
	uc := newTestUseCase(repo, testNow)

	_, err := uc.Execute(context.Background(), &Request{BookingID: 5, ActorID: 7, Notes: ptr.Ptr("x")})

	assert.ErrorIs(t, err, ErrNotEditable)
}

func TestExecute_NotFound(t *testing.T) {
	repo := &fakeRepo{getErr: bookingRepo.ErrBookingNotFound}
	uc := newTestUseCase(repo, testNow)

	_, err := uc.Execute(context.Background(), &Request{BookingID: 5, ActorID: 7, Notes: ptr.Ptr("x")})

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_Validation(t *testing.T) {
	uc := newTestUseCase(&fakeRepo{}, testNow)

	_, err := uc.Execute(context.Background(), &Request{BookingID: 0, ActorID: 7, Notes: ptr.Ptr("x")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{BookingID: 5, ActorID: 7})
	assert.ErrorIs(t, err, ErrInvalidInput)

	long := strings.Repeat("a", domain.MaxNotesLength+1)
	_, err = uc.Execute(context.Background(), &Request{BookingID: 5, ActorID: 7, Notes: &long})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
