package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// SlotRepository интерфейс репозитория парковочных мест
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Slot, error)
	LockByID(ctx context.Context, id int64) (*domain.Slot, error)
	UpdateStatus(ctx context.Context, id int64, status domain.SlotStatus) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	FindOverlapping(ctx context.Context, slotID int64, start, end time.Time) ([]*domain.Booking, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// MetricsRecorder учитывает исходы бронирований
type MetricsRecorder interface {
	RecordBooking(outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
