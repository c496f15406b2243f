package create_booking

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	bookingStorage "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
	slotStorage "github.com/m04kA/SMC-ParkingService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-ParkingService/pkg/txmanager"
)

var (
	slotSQLColumns    = []string{"slot_id", "lot_name", "slot_number", "status", "hourly_rate"}
	bookingSQLColumns = []string{"booking_id", "user_id", "vehicle_id", "slot_id", "start_time", "end_time", "cost", "created_at"}

	selectSlot   = regexp.QuoteMeta("SELECT slot_id, lot_name, slot_number, status, hourly_rate FROM parking_slots WHERE slot_id = $1")
	lockSlot     = regexp.QuoteMeta("FROM parking_slots WHERE slot_id = $1 FOR UPDATE")
	findOverlap  = regexp.QuoteMeta("FROM bookings WHERE slot_id = $1 AND start_time < $2 AND end_time > $3")
	insertBook   = `INSERT INTO bookings (.+) RETURNING booking_id, created_at`
	updateStatus = regexp.QuoteMeta("UPDATE parking_slots SET status = $1 WHERE slot_id = $2")
)

// newSQLUseCase собирает usecase на настоящих репозиториях и менеджере транзакций поверх sqlmock
func newSQLUseCase(t *testing.T) (*UseCase, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	uc := NewUseCase(
		slotStorage.NewRepository(db),
		bookingStorage.NewRepository(db),
		txmanager.NewTransactionManager(txmanager.SQLBeginner{DB: db}),
		nil,
		nopLogger{},
	)
	return uc, mock
}

func slotRow(status string) *sqlmock.Rows {
	return sqlmock.NewRows(slotSQLColumns).AddRow(int64(5), "North", "A5", status, 10.0)
}

func TestExecuteSQL_CommitsInOrder(t *testing.T) {
	uc, mock := newSQLUseCase(t)
	createdAt := time.Date(2025, 10, 26, 18, 0, 0, 0, time.UTC)

	mock.ExpectQuery(selectSlot).WithArgs(int64(5)).WillReturnRows(slotRow("available"))
	mock.ExpectBegin()
	mock.ExpectQuery(lockSlot).WithArgs(int64(5)).WillReturnRows(slotRow("available"))
	mock.ExpectQuery(findOverlap).
		WithArgs(int64(5), at(11), at(9)).
		WillReturnRows(sqlmock.NewRows(bookingSQLColumns))
	mock.ExpectQuery(insertBook).
		WithArgs(int64(1), int64(1), int64(5), at(9), at(11), 20.0).
		WillReturnRows(sqlmock.NewRows([]string{"booking_id", "created_at"}).AddRow(int64(77), createdAt))
	mock.ExpectExec(updateStatus).
		WithArgs(string(domain.SlotOccupied), int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	resp, err := uc.Execute(context.Background(), request(5, 9, 11))

	require.NoError(t, err)
	assert.Equal(t, int64(77), resp.BookingID)
	assert.True(t, createdAt.Equal(resp.CreatedAt))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecuteSQL_ConflictRollsBack(t *testing.T) {
	uc, mock := newSQLUseCase(t)

	mock.ExpectQuery(selectSlot).WithArgs(int64(5)).WillReturnRows(slotRow("occupied"))
	mock.ExpectBegin()
	mock.ExpectQuery(lockSlot).WithArgs(int64(5)).WillReturnRows(slotRow("occupied"))
	mock.ExpectQuery(findOverlap).
		WithArgs(int64(5), at(12), at(10)).
		WillReturnRows(sqlmock.NewRows(bookingSQLColumns).
			AddRow(int64(3), int64(9), int64(9), int64(5), at(9), at(11), 20.0, at(8)))
	mock.ExpectRollback()

	_, err := uc.Execute(context.Background(), request(5, 10, 12))

	var conflict *ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, int64(3), conflict.ConflictingBookingID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecuteSQL_ExclusionViolationRollsBack(t *testing.T) {
	uc, mock := newSQLUseCase(t)

	mock.ExpectQuery(selectSlot).WithArgs(int64(5)).WillReturnRows(slotRow("available"))
	mock.ExpectBegin()
	mock.ExpectQuery(lockSlot).WithArgs(int64(5)).WillReturnRows(slotRow("available"))
	mock.ExpectQuery(findOverlap).WillReturnRows(sqlmock.NewRows(bookingSQLColumns))
	mock.ExpectQuery(insertBook).WillReturnError(&pq.Error{Code: "23P01", Constraint: "bookings_no_overlap"})
	mock.ExpectRollback()

	_, err := uc.Execute(context.Background(), request(5, 9, 11))

	assert.Equal(t, KindConflict, KindOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecuteSQL_NumericOverflowIsValidation(t *testing.T) {
	uc, mock := newSQLUseCase(t)

	mock.ExpectQuery(selectSlot).WithArgs(int64(5)).WillReturnRows(slotRow("available"))
	mock.ExpectBegin()
	mock.ExpectQuery(lockSlot).WithArgs(int64(5)).WillReturnRows(slotRow("available"))
	mock.ExpectQuery(findOverlap).WillReturnRows(sqlmock.NewRows(bookingSQLColumns))
	mock.ExpectQuery(insertBook).WillReturnError(&pq.Error{Code: "22003", Message: "numeric field overflow"})
	mock.ExpectRollback()

	_, err := uc.Execute(context.Background(), request(5, 9, 11))

	assert.Equal(t, KindValidation, KindOf(err))
	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, []string{"cost"}, vErr.FieldNames())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecuteSQL_StatusUpdateFailureRollsBack(t *testing.T) {
	uc, mock := newSQLUseCase(t)

	mock.ExpectQuery(selectSlot).WithArgs(int64(5)).WillReturnRows(slotRow("available"))
	mock.ExpectBegin()
	mock.ExpectQuery(lockSlot).WithArgs(int64(5)).WillReturnRows(slotRow("available"))
	mock.ExpectQuery(findOverlap).WillReturnRows(sqlmock.NewRows(bookingSQLColumns))
	mock.ExpectQuery(insertBook).
		WillReturnRows(sqlmock.NewRows([]string{"booking_id", "created_at"}).AddRow(int64(1), at(8)))
	mock.ExpectExec(updateStatus).WillReturnError(errors.New("driver: bad connection"))
	mock.ExpectRollback()

	_, err := uc.Execute(context.Background(), request(5, 9, 11))

	assert.ErrorIs(t, err, ErrInternal)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecuteSQL_UnknownSlotNeverBegins(t *testing.T) {
	uc, mock := newSQLUseCase(t)

	mock.ExpectQuery(selectSlot).WithArgs(int64(404)).WillReturnRows(sqlmock.NewRows(slotSQLColumns))

	_, err := uc.Execute(context.Background(), request(404, 9, 11))

	assert.ErrorIs(t, err, ErrSlotNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
