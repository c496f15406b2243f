package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
	slotRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/slot"
)

// UseCase use case для создания бронирования парковочного места
type UseCase struct {
	slotRepo    SlotRepository
	bookingRepo BookingRepository
	txManager   TransactionManager
	metrics     MetricsRecorder
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	if metrics == nil {
		metrics = noopRecorder{}
	}

	return &UseCase{
		slotRepo:    slotRepo,
		bookingRepo: bookingRepo,
		txManager:   txManager,
		metrics:     metrics,
		logger:      logger,
	}
}

// Execute выполняет use case создания бронирования
//
// Проверка пересечений и вставка выполняются в одной транзакции под блокировкой
// строки места (SELECT ... FOR UPDATE). Параллельные запросы на одно место
// проходят проверку по очереди, запросы на разные места друг друга не ждут.
// Статус места меняется на occupied в той же транзакции, что и вставка брони
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	result, err := uc.execute(ctx, req)
	if err != nil {
		uc.metrics.RecordBooking(outcomeOf(err))
		return nil, err
	}

	uc.metrics.RecordBooking(domain.OutcomeBooked)
	return result, nil
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("CreateBooking: user=%d, vehicle=%d, slot=%d, start=%s, end=%s",
		req.UserID, req.VehicleID, req.SlotID, req.StartTime.Format(time.RFC3339), req.EndTime.Format(time.RFC3339))

	// 2. Проверяем существование места
	if _, err := uc.slotRepo.GetByID(ctx, req.SlotID); err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			uc.logger.Warn("CreateBooking: slot id=%d not found", req.SlotID)
			return nil, ErrSlotNotFound
		}
		uc.logger.Error("CreateBooking: failed to get slot id=%d: %v", req.SlotID, err)
		return nil, fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
	}

	var result *domain.Booking

	// 3. Проверка и резервирование в одной транзакции
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 3.1. Блокируем место до конца транзакции
		slot, err := uc.slotRepo.LockByID(txCtx, req.SlotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				uc.logger.Warn("CreateBooking: slot id=%d disappeared before lock", req.SlotID)
				return ErrSlotNotFound
			}
			uc.logger.Error("CreateBooking: failed to lock slot id=%d: %v", req.SlotID, err)
			return fmt.Errorf("%w: failed to lock slot: %v", ErrInternal, err)
		}

		// 3.2. Ищем пересекающиеся брони
		overlapping, err := uc.bookingRepo.FindOverlapping(txCtx, slot.ID, req.StartTime, req.EndTime)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to find overlapping bookings for slot id=%d: %v", slot.ID, err)
			return fmt.Errorf("%w: failed to find overlapping bookings: %v", ErrInternal, err)
		}

		if len(overlapping) > 0 {
			uc.logger.Warn("CreateBooking: slot id=%d conflicts with %d booking(s), first id=%d",
				slot.ID, len(overlapping), overlapping[0].ID)
			return &ConflictError{SlotID: slot.ID, ConflictingBookingID: overlapping[0].ID}
		}

		// Статус не источник конфликта: occupied-место можно бронировать на свободный интервал
		if slot.IsOccupied() {
			uc.logger.Info("CreateBooking: slot id=%d is marked occupied, window is free", slot.ID)
		}

		// 3.3. Сохраняем бронирование
		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			UserID:    req.UserID,
			VehicleID: req.VehicleID,
			SlotID:    slot.ID,
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
			Cost:      req.Cost,
		})
		if err != nil {
			switch {
			case errors.Is(err, bookingRepo.ErrOverlap):
				uc.logger.Warn("CreateBooking: slot id=%d overlap rejected by database", slot.ID)
				return &ConflictError{SlotID: slot.ID}
			case errors.Is(err, bookingRepo.ErrValueOutOfRange):
				uc.logger.Warn("CreateBooking: cost=%.2f rejected by database: %v", req.Cost, err)
				return &ValidationError{Fields: []FieldError{{Field: "cost", Message: "cost is out of range"}}}
			case errors.Is(err, bookingRepo.ErrSlotReference):
				uc.logger.Warn("CreateBooking: slot id=%d reference rejected by database", slot.ID)
				return ErrSlotNotFound
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		// 3.4. Синхронизируем статус места
		if err := uc.slotRepo.UpdateStatus(txCtx, slot.ID, domain.SlotOccupied); err != nil {
			uc.logger.Error("CreateBooking: failed to update status of slot id=%d: %v", slot.ID, err)
			return fmt.Errorf("%w: failed to update slot status: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// Ошибки begin/commit приходят из менеджера транзакций без нашей классификации
		if KindOf(err) == KindInfra && !errors.Is(err, ErrInternal) {
			uc.logger.Error("CreateBooking: transaction failed for slot id=%d: %v", req.SlotID, err)
			return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d for slot id=%d", result.ID, result.SlotID)

	return &Response{
		BookingID: result.ID,
		UserID:    result.UserID,
		VehicleID: result.VehicleID,
		SlotID:    result.SlotID,
		StartTime: result.StartTime,
		EndTime:   result.EndTime,
		Cost:      result.Cost,
		CreatedAt: result.CreatedAt,
	}, nil
}

type noopRecorder struct{}

func (noopRecorder) RecordBooking(string) {}
