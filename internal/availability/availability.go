// Package availability решает, может ли слот быть забронирован:
// проверка конфликтов с существующими бронированиями, попадание в рабочие
// часы площадки и генерация сетки слотов для отображения доступности.
package availability

import (
	"time"

	"github.com/m04kA/QuickCourt-BookingService/internal/domain"
	"github.com/m04kA/QuickCourt-BookingService/internal/integrations/facilityservice"
	"github.com/m04kA/QuickCourt-BookingService/pkg/types"
)

// FindConflict возвращает первое бронирование того же корта, чей слот
// пересекается с candidate, или nil, если конфликта нет.
// Учитываются только бронирования, занимающие слот (confirmed, in_progress);
// отменённые и завершённые конфликтом не считаются.
//
// Интервалы полуоткрытые: бронирование, заканчивающееся ровно в момент
// начала candidate, конфликтом НЕ является
func FindConflict(existing []*domain.Booking, courtID string, candidate domain.TimeSlot) *domain.Booking {
	for _, booking := range existing {
		if booking.Court.CourtID != courtID {
			continue
		}
		if !booking.IsActive() {
			continue
		}

		if types.Overlaps(
			booking.TimeSlot.StartTime, booking.TimeSlot.EndTime,
			candidate.StartTime, candidate.EndTime,
		) {
			return booking
		}
	}

	return nil
}

// IsWithinOperatingHours проверяет, что слот целиком попадает в рабочие
// часы площадки на указанную дату. Fail-closed: закрытый день или
// некорректное расписание означают недоступность
func IsWithinOperatingHours(hours facilityservice.OperatingHours, date time.Time, slot domain.TimeSlot) bool {
	schedule := hours.ForWeekday(date.Weekday())
	if schedule.Closed {
		return false
	}

	open, err := types.NewTimeStringFromString(schedule.Open)
	if err != nil {
		return false
	}

	// Закрытие в полночь задается как "24:00"
	close := types.TimeString(schedule.Close)
	if err := close.ValidateEnd(); err != nil {
		return false
	}

	return !slot.StartTime.IsBefore(open) && !slot.EndTime.IsAfter(close)
}

// GenerateSlots генерирует последовательные непересекающиеся слоты шириной
// intervalMinutes от open до close. Неполный хвостовой слот, выходящий за
// close, отбрасывается.
//
// Используется только для отображения доступности; проверка конфликтов
// всегда работает с точным запрошенным слотом, а не с сеткой
func GenerateSlots(open, close types.TimeString, intervalMinutes int) []domain.TimeSlot {
	slots := make([]domain.TimeSlot, 0)

	current := open
	for current.IsBefore(close) {
		end, err := current.AddMinutes(intervalMinutes)
		if err != nil {
			break
		}
		if end.IsAfter(close) {
			break
		}

		slots = append(slots, domain.TimeSlot{
			StartTime:       current,
			EndTime:         end,
			DurationMinutes: intervalMinutes,
		})

		current = end
	}

	return slots
}
