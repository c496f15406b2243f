package slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/psqlbuilder"
)

const tableSlots = "parking_slots"

var slotColumns = []string{
	"slot_id",
	"lot_name",
	"slot_number",
	"status",
	"hourly_rate",
}

// Repository репозиторий для работы с парковочными местами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория парковочных мест
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListLotNames возвращает уникальные названия парковок
func (r *Repository) ListLotNames(ctx context.Context) ([]string, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("DISTINCT lot_name").
		From(tableSlots).
		OrderBy("lot_name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListLotNames - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListLotNames - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("%w: ListLotNames - scan lot_name: %v", ErrScanRow, err)
		}
		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListLotNames - rows error: %v", ErrScanRow, err)
	}

	return names, nil
}

// ListByLot возвращает места парковки в порядке slot_id
// Для неизвестной парковки возвращает пустой список без ошибки
func (r *Repository) ListByLot(ctx context.Context, lotName string) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From(tableSlots).
		Where(squirrel.Eq{"lot_name": lotName}).
		OrderBy("slot_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByLot - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByLot - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.Slot, 0)
	for rows.Next() {
		var slot domain.Slot
		if err := rows.Scan(&slot.ID, &slot.LotName, &slot.SlotNumber, &slot.Status, &slot.HourlyRate); err != nil {
			return nil, fmt.Errorf("%w: ListByLot - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, &slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByLot - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// GetByID получает парковочное место по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	return r.getByID(ctx, id, false)
}

// LockByID получает место и блокирует строку до конца транзакции (SELECT ... FOR UPDATE)
// Конкурентные бронирования одного места выстраиваются в очередь на этой блокировке,
// бронирования других мест не блокируются.
// Вне транзакции блокировка снимается сразу после запроса
func (r *Repository) LockByID(ctx context.Context, id int64) (*domain.Slot, error) {
	return r.getByID(ctx, id, true)
}

func (r *Repository) getByID(ctx context.Context, id int64, forUpdate bool) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From(tableSlots).
		Where(squirrel.Eq{"slot_id": id})

	if forUpdate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var slot domain.Slot
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&slot.ID,
		&slot.LotName,
		&slot.SlotNumber,
		&slot.Status,
		&slot.HourlyRate,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %v", ErrScanRow, err)
	}

	return &slot, nil
}

// UpdateStatus обновляет статус парковочного места
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.SlotStatus) error {
	if !status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableSlots).
		Set("status", status).
		Where(squirrel.Eq{"slot_id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}
