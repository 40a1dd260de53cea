package get_availability

import (
	"time"

	"github.com/m04kA/QuickCourt-BookingService/pkg/types"
)

// Request модель запроса сетки доступности площадки
type Request struct {
	FacilityID int64     // ID площадки
	Date       time.Time // Дата, на которую запрашивается доступность
	CourtID    *string   // Фильтр по корту (опционально)
}

// Response модель ответа с сеткой доступности по кортам
type Response struct {
	FacilityID int64               // ID площадки
	Date       time.Time           // Дата, на которую строилась сетка
	Courts     []CourtAvailability // Доступность по кортам
}

// CourtAvailability сетка слотов одного корта
type CourtAvailability struct {
	CourtID string // ID корта
	Name    string // Название корта
	Sport   string // Вид спорта
	Slots   []Slot // Сетка слотов на день
}

// Slot слот сетки доступности
type Slot struct {
	StartTime    types.TimeString // Время начала слота
	EndTime      types.TimeString // Время окончания слота
	Available    bool             // Свободен ли слот
	PricePerHour float64          // Цена часа для этого слота
}
