package get_facility_bookings

import (
	"strconv"
	"time"

	"github.com/m04kA/QuickCourt-BookingService/internal/domain"
	"github.com/m04kA/QuickCourt-BookingService/internal/service/bookings/models"
)

// ToServiceRequest собирает запрос к сервису из path и query параметров
func ToServiceRequest(
	facilityID, actorID int64,
	actorRole string,
	courtIDStr, statusStr, dateStr, includeInactiveStr, withStatsStr string,
) (*models.GetFacilityBookingsRequest, error) {
	req := &models.GetFacilityBookingsRequest{
		FacilityID: facilityID,
		ActorID:    actorID,
		ActorRole:  actorRole,
	}

	if courtIDStr != "" {
		req.CourtID = &courtIDStr
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	if dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			return nil, err
		}
		req.Date = &date
	}

	if includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, err
		}
		req.IncludeInactive = includeInactive
	}

	if withStatsStr != "" {
		withStats, err := strconv.ParseBool(withStatsStr)
		if err != nil {
			return nil, err
		}
		req.WithStats = withStats
	}

	return req, nil
}
