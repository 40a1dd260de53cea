package booking

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/QuickCourt-BookingService/internal/domain"
	"github.com/m04kA/QuickCourt-BookingService/pkg/dbmetrics"
	"github.com/m04kA/QuickCourt-BookingService/pkg/psqlbuilder"
)

// exclusionViolation код ошибки PostgreSQL при нарушении exclusion constraint
// (два активных бронирования одного корта пересеклись по времени)
const exclusionViolation = "23P01"

// bookingColumns полный список колонок таблицы bookings в порядке сканирования
var bookingColumns = []string{
	"id",
	"user_id",
	"facility_id",
	"court_id",
	"court_name",
	"court_sport",
	"booking_date",
	"start_time",
	"end_time",
	"duration_minutes",
	"booking_type",
	"recurring_details",
	"group_details",
	"base_amount",
	"taxes",
	"discounts",
	"total_amount",
	"currency",
	"payment_status",
	"payment_method",
	"payment_transaction_id",
	"paid_at",
	"refund_amount",
	"refunded_at",
	"status",
	"check_in_time",
	"check_in_method",
	"check_out_time",
	"check_out_method",
	"notes",
	"cancelled_by",
	"cancelled_at",
	"cancellation_reason",
	"refund_eligible",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция (через context.Value), использует её.
// Exclusion constraint хранилища служит страховкой от гонки двух конкурентных
// созданий: нарушение возвращается как ErrSlotConflict
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	recurringJSON, err := marshalDetails(b.RecurringDetails)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - marshal recurring details: %v", ErrBuildQuery, err)
	}
	groupJSON, err := marshalDetails(b.GroupDetails)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - marshal group details: %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"user_id",
			"facility_id",
			"court_id",
			"court_name",
			"court_sport",
			"booking_date",
			"start_time",
			"end_time",
			"duration_minutes",
			"booking_type",
			"recurring_details",
			"group_details",
			"base_amount",
			"taxes",
			"discounts",
			"total_amount",
			"currency",
			"payment_status",
			"status",
			"notes",
		).
		Values(
			b.UserID,
			b.FacilityID,
			b.Court.CourtID,
			b.Court.Name,
			b.Court.Sport,
			b.BookingDate,
			b.TimeSlot.StartTime,
			b.TimeSlot.EndTime,
			b.TimeSlot.DurationMinutes,
			b.BookingType,
			recurringJSON,
			groupJSON,
			b.Pricing.BaseAmount,
			b.Pricing.Taxes,
			b.Pricing.Discounts,
			b.Pricing.TotalAmount,
			b.Pricing.Currency,
			b.Payment.Status,
			b.Status,
			b.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&b.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isExclusionViolation(err) {
			return nil, ErrSlotConflict
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return b, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	b, err := scanBooking(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return b, nil
}

// GetByUserID получает список бронирований пользователя
// Опционально фильтрует по статусу и по предстоящим бронированиям
func (r *Repository) GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus, upcomingFrom *time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"user_id": userID})

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	// Для предстоящих бронирований сортируем от ближайших, иначе от последних
	if upcomingFrom != nil {
		selectBuilder = selectBuilder.
			Where(squirrel.GtOrEq{"booking_date": *upcomingFrom}).
			OrderBy("booking_date ASC, start_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("booking_date DESC, start_time DESC")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByFacilityWithFilter получает бронирования площадки с фильтрацией
// по корту, дате, статусу и включению неактивных бронирований.
//
// Внутри транзакции чтение на конкретную дату берёт FOR UPDATE - блокировка
// существующих бронирований на время проверки конфликта (create/reschedule)
func (r *Repository) GetByFacilityWithFilter(ctx context.Context, filter domain.FacilityBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"facility_id": filter.FacilityID})

	if filter.CourtID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"court_id": *filter.CourtID})
	}

	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"booking_date": *filter.Date})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		// Без явного статуса по умолчанию отдаем только занимающие слот
		conflicting := make([]string, len(domain.ConflictingStatuses))
		for i, s := range domain.ConflictingStatuses {
			conflicting[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": conflicting})
	}

	if filter.Date != nil {
		selectBuilder = selectBuilder.OrderBy("start_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("booking_date DESC, start_time DESC")
	}

	if dbmetrics.IsInTransaction(ctx) && filter.Date != nil {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFacilityWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFacilityWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ApplyCancellation отменяет бронирование одним guarded UPDATE:
// статус, запись об отмене и возврат оплаты применяются атомарно.
// Guard по статусу защищает от повторной отмены (и повторного refund):
// 0 затронутых строк означает, что бронирование уже в терминальном статусе
func (r *Repository) ApplyCancellation(ctx context.Context, id int64, c domain.Cancellation, p domain.Payment) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancelled_by", c.CancelledBy).
		Set("cancelled_at", c.CancelledAt).
		Set("cancellation_reason", c.Reason).
		Set("refund_eligible", c.RefundEligible).
		Set("payment_status", p.Status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": []string{
			string(domain.StatusConfirmed),
			string(domain.StatusInProgress),
		}})

	if p.RefundAmount != nil {
		updateBuilder = updateBuilder.
			Set("refund_amount", *p.RefundAmount).
			Set("refunded_at", p.RefundedAt)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ApplyCancellation - build update query: %v", ErrBuildQuery, err)
	}

	return r.execGuarded(ctx, executor, query, args, ErrNotCancellable)
}

// SetCheckIn отмечает приход и переводит бронирование в in_progress
// Guard: только из confirmed и только один раз
func (r *Repository) SetCheckIn(ctx context.Context, id int64, at time.Time, method string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusInProgress).
		Set("check_in_time", at).
		Set("check_in_method", method).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.StatusConfirmed}).
		Where("check_in_time IS NULL").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetCheckIn - build update query: %v", ErrBuildQuery, err)
	}

	return r.execGuarded(ctx, executor, query, args, ErrCheckInNotAllowed)
}

// SetCheckOut отмечает уход и переводит бронирование в completed
// Guard: только после check-in и только один раз
func (r *Repository) SetCheckOut(ctx context.Context, id int64, at time.Time, method string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCompleted).
		Set("check_out_time", at).
		Set("check_out_method", method).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where("check_in_time IS NOT NULL").
		Where("check_out_time IS NULL").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetCheckOut - build update query: %v", ErrBuildQuery, err)
	}

	return r.execGuarded(ctx, executor, query, args, ErrCheckOutNotAllowed)
}

// Reschedule переносит бронирование на новую дату и слот
// Перенос - мутация той же записи, id и стоимость не меняются.
// Guard: только из confirmed
func (r *Repository) Reschedule(ctx context.Context, id int64, date time.Time, slot domain.TimeSlot) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("booking_date", date).
		Set("start_time", slot.StartTime).
		Set("end_time", slot.EndTime).
		Set("duration_minutes", slot.DurationMinutes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.StatusConfirmed}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Reschedule - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isExclusionViolation(err) {
			return ErrSlotConflict
		}
		return fmt.Errorf("%w: Reschedule - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Reschedule - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrNotReschedulable
	}

	return nil
}

// UpdateNotes обновляет заметки бронирования
// Guard: заметки редактируются только у активного бронирования
func (r *Repository) UpdateNotes(ctx context.Context, id int64, notes string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("notes", notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": []string{
			string(domain.StatusConfirmed),
			string(domain.StatusInProgress),
		}}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateNotes - build update query: %v", ErrBuildQuery, err)
	}

	return r.execGuarded(ctx, executor, query, args, ErrNotEditable)
}

// MarkPaid отмечает бронирование оплаченным (заглушка платёжного шлюза)
// Guard: оплата должна быть в статусе pending
func (r *Repository) MarkPaid(ctx context.Context, id int64, method, transactionID string, paidAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("payment_status", domain.PaymentPaid).
		Set("payment_method", method).
		Set("payment_transaction_id", transactionID).
		Set("paid_at", paidAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"payment_status": domain.PaymentPending}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkPaid - build update query: %v", ErrBuildQuery, err)
	}

	return r.execGuarded(ctx, executor, query, args, ErrPaymentNotPending)
}

// GetRevenueStats агрегирует выручку площадки по оплаченным бронированиям
// Опционально за конкретную дату
func (r *Repository) GetRevenueStats(ctx context.Context, facilityID int64, date *time.Time) (*domain.RevenueStats, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"COALESCE(SUM(total_amount), 0)",
		"COUNT(*)",
		"COALESCE(AVG(total_amount), 0)",
	).
		From("bookings").
		Where(squirrel.Eq{"facility_id": facilityID}).
		Where(squirrel.Eq{"payment_status": domain.PaymentPaid})

	if date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"booking_date": *date})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetRevenueStats - build select query: %v", ErrBuildQuery, err)
	}

	var stats domain.RevenueStats
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&stats.TotalRevenue,
		&stats.TotalBookings,
		&stats.AverageBookingValue,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: GetRevenueStats - scan stats: %v", ErrScanRow, err)
	}

	return &stats, nil
}

// execGuarded выполняет guarded UPDATE: 0 затронутых строк означает,
// что guard не пропустил переход (или записи нет)
func (r *Repository) execGuarded(ctx context.Context, executor DBExecutor, query string, args []interface{}, guardErr error) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return guardErr
	}

	return nil
}

// scanBooking сканирует одну строку в бронирование
func scanBooking(scan func(dest ...interface{}) error) (*domain.Booking, error) {
	var (
		b             domain.Booking
		recurringJSON []byte
		groupJSON     []byte
		refundElig    sql.NullBool
		cancelledBy   sql.NullString
		cancelledAt   sql.NullTime
		cancelReason  sql.NullString
		createdAt     sql.NullTime
		updatedAt     sql.NullTime
	)

	err := scan(
		&b.ID,
		&b.UserID,
		&b.FacilityID,
		&b.Court.CourtID,
		&b.Court.Name,
		&b.Court.Sport,
		&b.BookingDate,
		&b.TimeSlot.StartTime,
		&b.TimeSlot.EndTime,
		&b.TimeSlot.DurationMinutes,
		&b.BookingType,
		&recurringJSON,
		&groupJSON,
		&b.Pricing.BaseAmount,
		&b.Pricing.Taxes,
		&b.Pricing.Discounts,
		&b.Pricing.TotalAmount,
		&b.Pricing.Currency,
		&b.Payment.Status,
		&b.Payment.Method,
		&b.Payment.TransactionID,
		&b.Payment.PaidAt,
		&b.Payment.RefundAmount,
		&b.Payment.RefundedAt,
		&b.Status,
		&b.CheckIn.Time,
		&b.CheckIn.Method,
		&b.CheckOut.Time,
		&b.CheckOut.Method,
		&b.Notes,
		&cancelledBy,
		&cancelledAt,
		&cancelReason,
		&refundElig,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(recurringJSON) > 0 {
		var details domain.RecurringDetails
		if err := json.Unmarshal(recurringJSON, &details); err != nil {
			return nil, fmt.Errorf("unmarshal recurring details: %v", err)
		}
		b.RecurringDetails = &details
	}
	if len(groupJSON) > 0 {
		var details domain.GroupDetails
		if err := json.Unmarshal(groupJSON, &details); err != nil {
			return nil, fmt.Errorf("unmarshal group details: %v", err)
		}
		b.GroupDetails = &details
	}

	if cancelledAt.Valid {
		b.Cancellation = &domain.Cancellation{
			CancelledBy:    cancelledBy.String,
			CancelledAt:    cancelledAt.Time,
			Reason:         cancelReason.String,
			RefundEligible: refundElig.Bool,
		}
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		b, err := scanBooking(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// marshalDetails сериализует контейнер данных в JSONB, nil остаётся NULL
func marshalDetails(v interface{}) (interface{}, error) {
	switch d := v.(type) {
	case *domain.RecurringDetails:
		if d == nil {
			return nil, nil
		}
	case *domain.GroupDetails:
		if d == nil {
			return nil, nil
		}
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return data, nil
}

func isExclusionViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == exclusionViolation
	}
	return false
}
