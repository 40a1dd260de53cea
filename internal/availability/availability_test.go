package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/QuickCourt-BookingService/internal/domain"
	"github.com/m04kA/QuickCourt-BookingService/internal/integrations/facilityservice"
	"github.com/m04kA/QuickCourt-BookingService/pkg/types"
)

func makeBooking(courtID string, start, end types.TimeString, status domain.BookingStatus) *domain.Booking {
	duration, _ := start.MinutesUntil(end)
	return &domain.Booking{
		Court: domain.CourtSnapshot{CourtID: courtID},
		TimeSlot: domain.TimeSlot{
			StartTime:       start,
			EndTime:         end,
			DurationMinutes: duration,
		},
		Status: status,
	}
}

func slot(start, end types.TimeString) domain.TimeSlot {
	duration, _ := start.MinutesUntil(end)
	return domain.TimeSlot{StartTime: start, EndTime: end, DurationMinutes: duration}
}

func TestFindConflict_Overlap(t *testing.T) {
	existing := []*domain.Booking{
		makeBooking("court-1", "10:00", "11:00", domain.StatusConfirmed),
	}

	got := FindConflict(existing, "court-1", slot("10:30", "11:30"))

	require.NotNil(t, got)
	assert.Equal(t, types.TimeString("10:00"), got.TimeSlot.StartTime)
}

func TestFindConflict_TouchingBoundaryIsNotConflict(t *testing.T) {
	existing := []*domain.Booking{
		makeBooking("court-1", "10:00", "11:00", domain.StatusConfirmed),
	}

	// Бронирование заканчивается ровно в момент начала кандидата
	assert.Nil(t, FindConflict(existing, "court-1", slot("11:00", "12:00")))
	assert.Nil(t, FindConflict(existing, "court-1", slot("09:00", "10:00")))
}

func TestFindConflict_OtherCourtIgnored(t *testing.T) {
	existing := []*domain.Booking{
		makeBooking("court-2", "10:00", "11:00", domain.StatusConfirmed),
	}

	assert.Nil(t, FindConflict(existing, "court-1", slot("10:00", "11:00")))
}

func TestFindConflict_InactiveStatusesIgnored(t *testing.T) {
	for _, status := range domain.InactiveStatuses {
		existing := []*domain.Booking{
			makeBooking("court-1", "10:00", "11:00", status),
		}

		assert.Nil(t, FindConflict(existing, "court-1", slot("10:00", "11:00")), "status %s", status)
	}
}

func TestFindConflict_InProgressOccupiesSlot(t *testing.T) {
	existing := []*domain.Booking{
		makeBooking("court-1", "10:00", "11:00", domain.StatusInProgress),
	}

	assert.NotNil(t, FindConflict(existing, "court-1", slot("10:00", "11:00")))
}

func TestFindConflict_ReturnsFirstMatch(t *testing.T) {
	existing := []*domain.Booking{
		makeBooking("court-1", "09:00", "10:30", domain.StatusConfirmed),
		makeBooking("court-1", "10:30", "12:00", domain.StatusConfirmed),
	}

	got := FindConflict(existing, "court-1", slot("10:00", "11:00"))

	require.NotNil(t, got)
	assert.Equal(t, types.TimeString("09:00"), got.TimeSlot.StartTime)
}

func TestIsWithinOperatingHours(t *testing.T) {
	hours := facilityservice.OperatingHours{
		Monday: facilityservice.DaySchedule{Open: "06:00", Close: "22:00"},
		Sunday: facilityservice.DaySchedule{Closed: true},
	}

	monday := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	sunday := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	assert.True(t, IsWithinOperatingHours(hours, monday, slot("06:00", "07:00")))
	assert.True(t, IsWithinOperatingHours(hours, monday, slot("21:00", "22:00")))
	assert.False(t, IsWithinOperatingHours(hours, monday, slot("05:00", "06:00")))
	assert.False(t, IsWithinOperatingHours(hours, monday, slot("21:30", "22:30")))

	// Закрытый день - недоступно независимо от слота
	assert.False(t, IsWithinOperatingHours(hours, sunday, slot("10:00", "11:00")))
}

func TestIsWithinOperatingHours_InvalidScheduleFailsClosed(t *testing.T) {
	hours := facilityservice.OperatingHours{
		Monday: facilityservice.DaySchedule{Open: "6am", Close: "22:00"},
	}

	monday := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)

	assert.False(t, IsWithinOperatingHours(hours, monday, slot("10:00", "11:00")))
}

func TestGenerateSlots(t *testing.T) {
	slots := GenerateSlots("06:00", "09:00", 60)

	require.Len(t, slots, 3)
	assert.Equal(t, types.TimeString("06:00"), slots[0].StartTime)
	assert.Equal(t, types.TimeString("07:00"), slots[0].EndTime)
	assert.Equal(t, 60, slots[0].DurationMinutes)
	assert.Equal(t, types.TimeString("08:00"), slots[2].StartTime)
	assert.Equal(t, types.TimeString("09:00"), slots[2].EndTime)
}

func TestGenerateSlots_TrailingPartialDropped(t *testing.T) {
	// 06:00-08:30 при шаге 60 минут: неполный хвост 08:00-08:30 отбрасывается
	slots := GenerateSlots("06:00", "08:30", 60)

	require.Len(t, slots, 2)
	assert.Equal(t, types.TimeString("08:00"), slots[1].EndTime)
}

func TestGenerateSlots_EmptyRange(t *testing.T) {
	assert.Empty(t, GenerateSlots("10:00", "10:00", 60))
	assert.Empty(t, GenerateSlots("10:00", "10:30", 60))
}

func TestGenerateSlots_NeverExtendsPastClose(t *testing.T) {
	// Хвост, упирающийся в конец суток, не должен вылезать за закрытие
	assert.Empty(t, GenerateSlots("23:00", "23:45", 60))
}

func TestGenerateSlots_MidnightClose(t *testing.T) {
	slots := GenerateSlots("22:00", types.EndOfDay, 60)

	require.Len(t, slots, 2)
	assert.Equal(t, types.TimeString("22:00"), slots[0].StartTime)
	assert.Equal(t, types.TimeString("23:00"), slots[1].StartTime)
	assert.Equal(t, types.EndOfDay, slots[1].EndTime)
}

func TestIsWithinOperatingHours_MidnightClose(t *testing.T) {
	hours := facilityservice.OperatingHours{
		Monday: facilityservice.DaySchedule{Open: "06:00", Close: "24:00"},
	}

	monday := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)

	assert.True(t, IsWithinOperatingHours(hours, monday, slot("23:00", types.EndOfDay)))
	assert.True(t, IsWithinOperatingHours(hours, monday, slot("10:00", "11:00")))
}

func TestGenerateSlots_FullDay(t *testing.T) {
	slots := GenerateSlots("00:00", "23:00", 60)

	require.Len(t, slots, 23)
	assert.Equal(t, types.TimeString("22:00"), slots[22].StartTime)
	assert.Equal(t, types.TimeString("23:00"), slots[22].EndTime)
}
