package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/psqlbuilder"
)

const tableBookings = "bookings"

// SQLSTATE коды PostgreSQL, которые разбираем отдельно
const (
	pqExclusionViolation  pq.ErrorCode = "23P01"
	pqForeignKeyViolation pq.ErrorCode = "23503"
	pqCheckViolation      pq.ErrorCode = "23514"
	pqNumericOutOfRange   pq.ErrorCode = "22003"
)

var bookingColumns = []string{
	"booking_id",
	"user_id",
	"vehicle_id",
	"slot_id",
	"start_time",
	"end_time",
	"cost",
	"created_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование и проставляет ему ID
// Если в контексте передана активная транзакция, использует её.
// Проверку пересечений выполняет вызывающий код под блокировкой места;
// ограничение bookings_no_overlap в БД возвращается как ErrOverlap
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableBookings).
		Columns(
			"user_id",
			"vehicle_id",
			"slot_id",
			"start_time",
			"end_time",
			"cost",
		).
		Values(
			booking.UserID,
			booking.VehicleID,
			booking.SlotID,
			booking.StartTime,
			booking.EndTime,
			booking.Cost,
		).
		Suffix("RETURNING booking_id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
	)

	if err != nil {
		return nil, classifyWriteError("Create", err)
	}

	booking.CreatedAt = createdAt.Time

	return booking, nil
}

// FindOverlapping возвращает бронирования места, пересекающиеся с [start, end)
// Условие пересечения: existing.start < end AND existing.end > start
func (r *Repository) FindOverlapping(ctx context.Context, slotID int64, start, end time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"slot_id": slotID}).
		Where(squirrel.Lt{"start_time": end}).
		Where(squirrel.Gt{"end_time": start}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"booking_id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var booking domain.Booking
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&booking.UserID,
		&booking.VehicleID,
		&booking.SlotID,
		&booking.StartTime,
		&booking.EndTime,
		&booking.Cost,
		&createdAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	booking.CreatedAt = createdAt.Time

	return &booking, nil
}

// scanBookings сканирует строки результата в список бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var booking domain.Booking
		var createdAt sql.NullTime

		err := rows.Scan(
			&booking.ID,
			&booking.UserID,
			&booking.VehicleID,
			&booking.SlotID,
			&booking.StartTime,
			&booking.EndTime,
			&booking.Cost,
			&createdAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}

		booking.CreatedAt = createdAt.Time

		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// classifyWriteError переводит ошибки PostgreSQL в ошибки репозитория
func classifyWriteError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqExclusionViolation:
			return fmt.Errorf("%w: %s - %s", ErrOverlap, op, pqErr.Constraint)
		case pqForeignKeyViolation:
			return fmt.Errorf("%w: %s - %s", ErrSlotReference, op, pqErr.Constraint)
		case pqCheckViolation:
			return fmt.Errorf("%w: %s - %s", ErrConstraint, op, pqErr.Constraint)
		case pqNumericOutOfRange:
			return fmt.Errorf("%w: %s - %s", ErrValueOutOfRange, op, pqErr.Message)
		}
	}
	return fmt.Errorf("%w: %s - execute insert: %v", ErrExecQuery, op, err)
}
