package get_lot_slots

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/service/lots/models"
)

type LotsService interface {
	GetLotSlots(ctx context.Context, lotName string) (*models.LotSlotsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
