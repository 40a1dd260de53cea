package get_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/QuickCourt-BookingService/internal/domain"
	"github.com/m04kA/QuickCourt-BookingService/internal/integrations/facilityservice"
	"github.com/m04kA/QuickCourt-BookingService/pkg/ptr"
	"github.com/m04kA/QuickCourt-BookingService/pkg/types"
)

type fakeRepo struct {
	bookings []*domain.Booking
}

func (f *fakeRepo) GetByFacilityWithFilter(_ context.Context, _ domain.FacilityBookingsFilter) ([]*domain.Booking, error) {
	return f.bookings, nil
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

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// 2026-03-16 - понедельник
var testDate = time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)

func testFacility() *facilityservice.Facility {
	return &facilityservice.Facility{
		ID:       1,
		OwnerID:  99,
		IsActive: true,
		OperatingHours: facilityservice.OperatingHours{
			Monday: facilityservice.DaySchedule{Open: "06:00", Close: "10:00"},
			Sunday: facilityservice.DaySchedule{Closed: true},
		},
		Pricing: facilityservice.Pricing{BasePrice: 500, Currency: "INR"},
		Courts: []facilityservice.Court{
			{CourtID: "court_1", Name: "Court 1", Sport: "badminton", IsActive: true},
			{CourtID: "court_2", Name: "Court 2", Sport: "tennis", IsActive: true},
			{CourtID: "court_3", Name: "Court 3", Sport: "squash", IsActive: false},
		},
	}
}

func TestExecute_GridForAllActiveCourts(t *testing.T) {
	uc := NewUseCase(&fakeRepo{}, &fakeFacilityClient{facility: testFacility()}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{FacilityID: 1, Date: testDate})

	require.NoError(t, err)
	// Неактивный корт в сетку не попадает
	require.Len(t, resp.Courts, 2)
	assert.Equal(t, "court_1", resp.Courts[0].CourtID)
	assert.Equal(t, "court_2", resp.Courts[1].CourtID)

	// 06:00-10:00 часовыми слотами
	require.Len(t, resp.Courts[0].Slots, 4)
	assert.Equal(t, types.TimeString("06:00"), resp.Courts[0].Slots[0].StartTime)
	assert.Equal(t, types.TimeString("07:00"), resp.Courts[0].Slots[0].EndTime)
	assert.Equal(t, types.TimeString("09:00"), resp.Courts[0].Slots[3].StartTime)

	for _, slot := range resp.Courts[0].Slots {
		assert.True(t, slot.Available)
		assert.Equal(t, 500.0, slot.PricePerHour)
	}
}

func TestExecute_OccupiedSlotMarked(t *testing.T) {
	repo := &fakeRepo{
		bookings: []*domain.Booking{
			{
				Court:    domain.CourtSnapshot{CourtID: "court_1"},
				TimeSlot: domain.TimeSlot{StartTime: "07:30", EndTime: "08:30", DurationMinutes: 60},
				Status:   domain.StatusConfirmed,
			},
		},
	}
	uc := NewUseCase(repo, &fakeFacilityClient{facility: testFacility()}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{FacilityID: 1, Date: testDate})

	require.NoError(t, err)

	court1 := resp.Courts[0].Slots
	assert.True(t, court1[0].Available)  // 06:00-07:00
	assert.False(t, court1[1].Available) // 07:00-08:00 пересекается
	assert.False(t, court1[2].Available) // 08:00-09:00 пересекается
	assert.True(t, court1[3].Available)  // 09:00-10:00

	// Бронирование другого корта сетку court_2 не занимает
	for _, slot := range resp.Courts[1].Slots {
		assert.True(t, slot.Available)
	}
}

func TestExecute_CancelledBookingDoesNotOccupy(t *testing.T) {
	repo := &fakeRepo{
		bookings: []*domain.Booking{
			{
				Court:    domain.CourtSnapshot{CourtID: "court_1"},
				TimeSlot: domain.TimeSlot{StartTime: "07:00", EndTime: "08:00", DurationMinutes: 60},
				Status:   domain.StatusCancelled,
			},
		},
	}
	uc := NewUseCase(repo, &fakeFacilityClient{facility: testFacility()}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{FacilityID: 1, Date: testDate})

	require.NoError(t, err)
	assert.True(t, resp.Courts[0].Slots[1].Available)
}

func TestExecute_ClosedDayEmptyGrid(t *testing.T) {
	uc := NewUseCase(&fakeRepo{}, &fakeFacilityClient{facility: testFacility()}, nopLogger{})

	sunday := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	resp, err := uc.Execute(context.Background(), &Request{FacilityID: 1, Date: sunday})

	require.NoError(t, err)
	require.Len(t, resp.Courts, 2)
	assert.Empty(t, resp.Courts[0].Slots)
	assert.Empty(t, resp.Courts[1].Slots)
}

func TestExecute_CourtFilter(t *testing.T) {
	uc := NewUseCase(&fakeRepo{}, &fakeFacilityClient{facility: testFacility()}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{FacilityID: 1, Date: testDate, CourtID: ptr.Ptr("court_2")})

	require.NoError(t, err)
	require.Len(t, resp.Courts, 1)
	assert.Equal(t, "court_2", resp.Courts[0].CourtID)
}

func TestExecute_CourtNotFound(t *testing.T) {
	uc := NewUseCase(&fakeRepo{}, &fakeFacilityClient{facility: testFacility()}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{FacilityID: 1, Date: testDate, CourtID: ptr.Ptr("court_9")})

	assert.ErrorIs(t, err, ErrCourtNotFound)
}

func TestExecute_PeakPriceInGrid(t *testing.T) {
	facility := testFacility()
	peak := 1.5
	facility.Pricing.PeakHours = []facilityservice.PeakHour{
		{StartTime: "08:00", EndTime: "10:00", Multiplier: &peak},
	}
	uc := NewUseCase(&fakeRepo{}, &fakeFacilityClient{facility: facility}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{FacilityID: 1, Date: testDate})

	require.NoError(t, err)

	slots := resp.Courts[0].Slots
	assert.Equal(t, 500.0, slots[0].PricePerHour) // 06:00
	assert.Equal(t, 500.0, slots[1].PricePerHour) // 07:00
	assert.Equal(t, 750.0, slots[2].PricePerHour) // 08:00 пик
	assert.Equal(t, 750.0, slots[3].PricePerHour) // 09:00 пик
}

func TestExecute_FacilityNotFound(t *testing.T) {
	uc := NewUseCase(&fakeRepo{}, &fakeFacilityClient{getErr: facilityservice.ErrFacilityNotFound}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{FacilityID: 1, Date: testDate})

	assert.ErrorIs(t, err, ErrFacilityNotFound)
}

func TestExecute_Validation(t *testing.T) {
	uc := NewUseCase(&fakeRepo{}, &fakeFacilityClient{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{FacilityID: 0, Date: testDate})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{FacilityID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{FacilityID: 1, Date: testDate, CourtID: ptr.Ptr("")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
