package domain

import "time"

// Booking represents a reservation of a slot for a time interval
type Booking struct {
	ID        int64
	UserID    int64
	VehicleID int64
	SlotID    int64
	StartTime time.Time
	EndTime   time.Time
	Cost      float64
	CreatedAt time.Time
}

// Duration returns the length of the booked interval
func (b *Booking) Duration() time.Duration {
	return b.EndTime.Sub(b.StartTime)
}

// Overlaps returns true if the booking intersects the half-open interval [start, end)
func (b *Booking) Overlaps(start, end time.Time) bool {
	return Overlaps(b.StartTime, b.EndTime, start, end)
}

// Overlaps проверяет пересечение полуинтервалов [aStart, aEnd) и [bStart, bEnd)
// Соприкасающиеся интервалы (aEnd == bStart) не пересекаются
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}
