package lots

import (
	"context"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/lots/models"
)

// Service сервис чтения парковок и мест
type Service struct {
	slotRepo SlotRepository
	tiers    []domain.PricingTier
	logger   Logger
}

// NewService создает новый экземпляр сервиса парковок
// При пустом списке тарифов используются domain.DefaultPricingTiers
func NewService(slotRepo SlotRepository, tiers []domain.PricingTier, logger Logger) *Service {
	if len(tiers) == 0 {
		tiers = domain.DefaultPricingTiers
	}

	return &Service{
		slotRepo: slotRepo,
		tiers:    tiers,
		logger:   logger,
	}
}

// ListLots возвращает отсортированный список названий парковок
func (s *Service) ListLots(ctx context.Context) (*models.LotListResponse, error) {
	names, err := s.slotRepo.ListLotNames(ctx)
	if err != nil {
		s.logger.Error("ListLots: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListLots - repository error: %v", ErrInternal, err)
	}

	if names == nil {
		names = []string{}
	}

	s.logger.Info("ListLots: found %d lot(s)", len(names))
	return &models.LotListResponse{Lots: names}, nil
}

// GetLotSlots возвращает места парковки и цены тарифов
// Базовая ставка берётся из первого места, для пустой парковки она равна 0.
// Неизвестная парковка не ошибка: возвращается пустой список мест
func (s *Service) GetLotSlots(ctx context.Context, lotName string) (*models.LotSlotsResponse, error) {
	if strings.TrimSpace(lotName) == "" {
		return nil, fmt.Errorf("%w: lot name is required", ErrInvalidInput)
	}

	slots, err := s.slotRepo.ListByLot(ctx, lotName)
	if err != nil {
		s.logger.Error("GetLotSlots: repository error for lot=%q: %v", lotName, err)
		return nil, fmt.Errorf("%w: GetLotSlots - repository error: %v", ErrInternal, err)
	}

	var baseRate float64
	if len(slots) > 0 {
		baseRate = slots[0].HourlyRate
	} else {
		s.logger.Warn("GetLotSlots: lot=%q has no slots", lotName)
	}

	s.logger.Info("GetLotSlots: lot=%q, slots=%d, base_rate=%.2f", lotName, len(slots), baseRate)

	return &models.LotSlotsResponse{
		Name:    lotName,
		Pricing: domain.Pricing(baseRate, s.tiers),
		Slots:   models.FromDomainSlots(slots),
	}, nil
}
