package get_availability

import (
	"github.com/m04kA/QuickCourt-BookingService/internal/domain"
	getAvailability "github.com/m04kA/QuickCourt-BookingService/internal/usecase/get_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	FacilityID int64               `json:"facilityId"`
	Date       string              `json:"date"`
	Courts     []CourtAvailability `json:"courts"`
}

// CourtAvailability сетка слотов одного корта
type CourtAvailability struct {
	CourtID string `json:"courtId"`
	Name    string `json:"name"`
	Sport   string `json:"sport"`
	Slots   []Slot `json:"slots"`
}

// Slot слот сетки доступности
type Slot struct {
	StartTime    string  `json:"startTime"`
	EndTime      string  `json:"endTime"`
	Available    bool    `json:"available"`
	PricePerHour float64 `json:"pricePerHour"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	courts := make([]CourtAvailability, len(resp.Courts))
	for i, court := range resp.Courts {
		slots := make([]Slot, len(court.Slots))
		for j, slot := range court.Slots {
			slots[j] = Slot{
				StartTime:    slot.StartTime.String(),
				EndTime:      slot.EndTime.String(),
				Available:    slot.Available,
				PricePerHour: slot.PricePerHour,
			}
		}
		courts[i] = CourtAvailability{
			CourtID: court.CourtID,
			Name:    court.Name,
			Sport:   court.Sport,
			Slots:   slots,
		}
	}

	return &AvailabilityResponse{
		FacilityID: resp.FacilityID,
		Date:       resp.Date.Format(domain.DateFormat),
		Courts:     courts,
	}
}
