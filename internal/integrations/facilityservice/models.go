package facilityservice

import "time"

// DaySchedule режим работы площадки в конкретный день недели
// Если Closed = true, Open/Close игнорируются
type DaySchedule struct {
	Open   string `json:"open"`  // "06:00"
	Close  string `json:"close"` // "22:00"
	Closed bool   `json:"closed"`
}

// OperatingHours расписание работы площадки по дням недели
type OperatingHours struct {
	Monday    DaySchedule `json:"monday"`
	Tuesday   DaySchedule `json:"tuesday"`
	Wednesday DaySchedule `json:"wednesday"`
	Thursday  DaySchedule `json:"thursday"`
	Friday    DaySchedule `json:"friday"`
	Saturday  DaySchedule `json:"saturday"`
	Sunday    DaySchedule `json:"sunday"`
}

// ForWeekday возвращает расписание на указанный день недели
func (h OperatingHours) ForWeekday(weekday time.Weekday) DaySchedule {
	switch weekday {
	case time.Monday:
		return h.Monday
	case time.Tuesday:
		return h.Tuesday
	case time.Wednesday:
		return h.Wednesday
	case time.Thursday:
		return h.Thursday
	case time.Friday:
		return h.Friday
	case time.Saturday:
		return h.Saturday
	case time.Sunday:
		return h.Sunday
	default:
		return DaySchedule{Closed: true}
	}
}

// PeakHour пиковое окно с множителем цены
type PeakHour struct {
	StartTime  string   `json:"startTime"` // "18:00"
	EndTime    string   `json:"endTime"`   // "20:00"
	Multiplier *float64 `json:"multiplier,omitempty"`
}

// SeasonalPricing сезонный множитель цены
type SeasonalPricing struct {
	Name       string    `json:"name,omitempty"`
	StartDate  time.Time `json:"startDate"`
	EndDate    time.Time `json:"endDate"`
	Multiplier float64   `json:"multiplier"`
}

// Pricing ценовая политика площадки
type Pricing struct {
	BasePrice         float64           `json:"basePrice"`
	Currency          string            `json:"currency"`
	PeakHours         []PeakHour        `json:"peakHours,omitempty"`
	WeekendMultiplier *float64          `json:"weekendMultiplier,omitempty"`
	SeasonalPricing   []SeasonalPricing `json:"seasonalPricing,omitempty"`
}

// CancellationPolicy политика отмены бронирования
type CancellationPolicy struct {
	FreeUntilHours   int     `json:"freeUntilHours"`   // часы до начала, в течение которых отмена бесплатна
	RefundPercentage float64 `json:"refundPercentage"` // 0-100
}

// Court корт площадки
type Court struct {
	CourtID  string `json:"courtId"`
	Name     string `json:"name"`
	Sport    string `json:"sport"`
	IsIndoor bool   `json:"isIndoor"`
	Capacity int    `json:"capacity"`
	IsActive bool   `json:"isActive"`
}

// Facility площадка из FacilityService
type Facility struct {
	ID                 int64              `json:"id"`
	OwnerID            int64              `json:"ownerId"`
	Name               string             `json:"name"`
	IsActive           bool               `json:"isActive"`
	OperatingHours     OperatingHours     `json:"operatingHours"`
	Pricing            Pricing            `json:"pricing"`
	CancellationPolicy CancellationPolicy `json:"cancellationPolicy"`
	Courts             []Court            `json:"courts"`
}

// CourtByID возвращает корт площадки по ID, nil если не найден
// CourtID уникален в пределах площадки
func (f *Facility) CourtByID(courtID string) *Court {
	for i := range f.Courts {
		if f.Courts[i].CourtID == courtID {
			return &f.Courts[i]
		}
	}
	return nil
}

// IsOwner возвращает true, если пользователь является владельцем площадки
func (f *Facility) IsOwner(userID int64) bool {
	return f.OwnerID == userID
}

// ErrorResponse модель ошибки от FacilityService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
