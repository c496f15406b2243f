package create_booking

import "time"

// Request модель запроса на создание бронирования
type Request struct {
	UserID    int64     `json:"userId" validate:"required,gt=0"`
	VehicleID int64     `json:"vehicleId" validate:"required,gt=0"`
	SlotID    int64     `json:"slotId" validate:"required,gt=0"`
	StartTime time.Time `json:"startTime" validate:"required"`
	EndTime   time.Time `json:"endTime" validate:"required,gtfield=StartTime"`
	Cost      float64   `json:"cost" validate:"gte=0,lte=99999999.99"` // NUMERIC(10,2)
}

// Response модель ответа с созданным бронированием
type Response struct {
	BookingID int64     // ID созданного бронирования
	UserID    int64     // ID пользователя
	VehicleID int64     // ID автомобиля
	SlotID    int64     // ID парковочного места
	StartTime time.Time // Начало брони
	EndTime   time.Time // Конец брони (не включительно)
	Cost      float64   // Стоимость
	CreatedAt time.Time // Время создания
}
