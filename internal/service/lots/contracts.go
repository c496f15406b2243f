package lots

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// SlotRepository интерфейс репозитория парковочных мест
type SlotRepository interface {
	ListLotNames(ctx context.Context) ([]string, error)
	ListByLot(ctx context.Context, lotName string) ([]*domain.Slot, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
