package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	createBooking "github.com/m04kA/SMC-ParkingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-ParkingService/pkg/types"
)

// CreateBookingRequest HTTP request model
// Указатели позволяют отличить отсутствующее поле от нулевого значения
type CreateBookingRequest struct {
	UserID    *int64   `json:"userId"`
	VehicleID *int64   `json:"vehicleId"`
	SlotID    *int64   `json:"slotId"`
	StartTime *string  `json:"startTime"` // "2025-10-27T09:00" или RFC 3339
	EndTime   *string  `json:"endTime"`
	Cost      *float64 `json:"cost"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	Success   bool   `json:"success"`
	BookingID int64  `json:"bookingId"`
	Message   string `json:"message"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// Возвращает список отсутствующих или нераспознанных полей
func (r *CreateBookingRequest) ToUseCaseRequest(loc *time.Location) (*createBooking.Request, []string) {
	var invalid []string
	req := &createBooking.Request{}

	if r.UserID == nil {
		invalid = append(invalid, "userId")
	} else {
		req.UserID = *r.UserID
	}

	if r.VehicleID == nil {
		invalid = append(invalid, "vehicleId")
	} else {
		req.VehicleID = *r.VehicleID
	}

	if r.SlotID == nil {
		invalid = append(invalid, "slotId")
	} else {
		req.SlotID = *r.SlotID
	}

	if start, ok := parseTime(r.StartTime, loc); ok {
		req.StartTime = start
	} else {
		invalid = append(invalid, "startTime")
	}

	if end, ok := parseTime(r.EndTime, loc); ok {
		req.EndTime = end
	} else {
		invalid = append(invalid, "endTime")
	}

	if r.Cost == nil {
		invalid = append(invalid, "cost")
	} else {
		req.Cost = *r.Cost
	}

	if len(invalid) > 0 {
		return nil, invalid
	}
	return req, nil
}

// missingFieldErrors формирует ошибки полей, которые отсутствуют или не распознаны
func missingFieldErrors(names []string) []handlers.FieldError {
	fields := make([]handlers.FieldError, 0, len(names))
	for _, name := range names {
		fields = append(fields, handlers.FieldError{
			Field:   name,
			Message: fmt.Sprintf("%s is missing or invalid", name),
		})
	}
	return fields
}

// fromValidationError переносит ошибки полей use case в ответ API
func fromValidationError(err *createBooking.ValidationError) []handlers.FieldError {
	fields := make([]handlers.FieldError, 0, len(err.Fields))
	for _, f := range err.Fields {
		fields = append(fields, handlers.FieldError{Field: f.Field, Message: f.Message})
	}
	return fields
}

func parseTime(s *string, loc *time.Location) (time.Time, bool) {
	if s == nil {
		return time.Time{}, false
	}
	t, err := types.ParseTimestamp(*s, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		Success:   true,
		BookingID: resp.BookingID,
		Message:   domain.MsgBookingSuccess,
	}
}
