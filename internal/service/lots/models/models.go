package models

import "github.com/m04kA/SMC-ParkingService/internal/domain"

// LotListResponse список названий парковок
type LotListResponse struct {
	Lots []string `json:"lots"`
}

// SlotResponse парковочное место в ответе API
type SlotResponse struct {
	ID         int64  `json:"id"`
	SlotNumber string `json:"slot_number"`
	Status     string `json:"status"`
}

// LotSlotsResponse места парковки вместе с ценами тарифов
type LotSlotsResponse struct {
	Name    string             `json:"name"`
	Pricing map[string]float64 `json:"pricing"`
	Slots   []SlotResponse     `json:"slots"`
}

// FromDomainSlot конвертирует domain.Slot в SlotResponse
func FromDomainSlot(slot *domain.Slot) SlotResponse {
	return SlotResponse{
		ID:         slot.ID,
		SlotNumber: slot.SlotNumber,
		Status:     string(slot.Status),
	}
}

// FromDomainSlots конвертирует список мест, пустой список остаётся пустым массивом
func FromDomainSlots(slots []*domain.Slot) []SlotResponse {
	result := make([]SlotResponse, 0, len(slots))
	for _, slot := range slots {
		result = append(result, FromDomainSlot(slot))
	}
	return result
}
