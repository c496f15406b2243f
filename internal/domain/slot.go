package domain

// SlotStatus represents the occupancy status of a parking slot
type SlotStatus string

const (
	SlotAvailable SlotStatus = "available"
	SlotOccupied  SlotStatus = "occupied"
)

// IsValid returns true if the status is one of the known values
func (s SlotStatus) IsValid() bool {
	return s == SlotAvailable || s == SlotOccupied
}

// Slot represents a physical parking space in a lot
// Status кэшируется рядом с бронированиями и обновляется в той же транзакции.
// Возврат в available при окончании брони не реализован (нет отмены/истечения)
type Slot struct {
	ID         int64
	LotName    string
	SlotNumber string
	HourlyRate float64
	Status     SlotStatus
}

// IsOccupied returns true if the slot is marked as occupied
func (s *Slot) IsOccupied() bool {
	return s.Status == SlotOccupied
}
