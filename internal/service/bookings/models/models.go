package models

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// BookingResponse бронирование в ответе API
type BookingResponse struct {
	ID              int64   `json:"bookingId"`
	UserID          int64   `json:"userId"`
	VehicleID       int64   `json:"vehicleId"`
	SlotID          int64   `json:"slotId"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Cost            float64 `json:"cost"`
	CreatedAt       string  `json:"createdAt"`
}

// FromDomainBooking конвертирует domain.Booking в BookingResponse
func FromDomainBooking(booking *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:              booking.ID,
		UserID:          booking.UserID,
		VehicleID:       booking.VehicleID,
		SlotID:          booking.SlotID,
		StartTime:       booking.StartTime.Format(time.RFC3339),
		EndTime:         booking.EndTime.Format(time.RFC3339),
		DurationMinutes: int(booking.Duration() / time.Minute),
		Cost:            booking.Cost,
		CreatedAt:       booking.CreatedAt.Format(time.RFC3339),
	}
}
