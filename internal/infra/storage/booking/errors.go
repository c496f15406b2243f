package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrOverlap возвращается, когда БД отклонила вставку ограничением bookings_no_overlap
	ErrOverlap = errors.New("booking.repository: booking overlaps an existing one")

	// ErrSlotReference возвращается, когда slot_id не ссылается на существующее место
	ErrSlotReference = errors.New("booking.repository: slot does not exist")

	// ErrValueOutOfRange возвращается, когда значение не помещается в тип колонки (cost NUMERIC(10,2))
	ErrValueOutOfRange = errors.New("booking.repository: value out of column range")

	// ErrConstraint возвращается при нарушении прочих ограничений таблицы
	ErrConstraint = errors.New("booking.repository: constraint violation")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
