package create_booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-ParkingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "Invalid request body"
	msgMissingFields      = "Missing required booking information."
	msgSlotNotFound       = "Parking slot not found"
	msgDatabaseError      = "Database error during booking."
)

type Handler struct {
	useCase  CreateBookingUseCase
	location *time.Location
	logger   Logger
}

// NewHandler создает handler; время без смещения интерпретируется в location
func NewHandler(useCase CreateBookingUseCase, location *time.Location, logger Logger) *Handler {
	if location == nil {
		location = time.UTC
	}

	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle POST /api/book
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		if errors.Is(err, handlers.ErrEmptyBody) {
			h.logger.Warn("POST /book - Empty request body")
			handlers.RespondValidationError(w, msgMissingFields, missingFieldErrors(allFields()))
			return
		}
		h.logger.Warn("POST /book - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом времени)
	useCaseReq, invalid := req.ToUseCaseRequest(h.location)
	if len(invalid) > 0 {
		h.logger.Warn("POST /book - Missing or invalid fields: %v", invalid)
		handlers.RespondValidationError(w, msgMissingFields, missingFieldErrors(invalid))
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var validationErr *createBooking.ValidationError
		var conflictErr *createBooking.ConflictError

		switch {
		case errors.As(err, &validationErr):
			h.logger.Warn("POST /book - Validation failed: %v", err)
			handlers.RespondValidationError(w, msgMissingFields, fromValidationError(validationErr))

		case errors.As(err, &conflictErr):
			h.logger.Warn("POST /book - Time slot conflict: slot_id=%d, conflicting_booking_id=%d",
				conflictErr.SlotID, conflictErr.ConflictingBookingID)
			handlers.RespondConflict(w, conflictErr.Message())

		case errors.Is(err, createBooking.ErrSlotNotFound):
			h.logger.Warn("POST /book - Slot not found: slot_id=%d", useCaseReq.SlotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		default:
			h.logger.Error("POST /book - Failed to create booking: slot_id=%d, kind=%s, error=%v",
				useCaseReq.SlotID, createBooking.KindOf(err), err)
			handlers.RespondInternalError(w, msgDatabaseError)
		}
		return
	}

	h.logger.Info("POST /book - Booking created successfully: booking_id=%d, slot_id=%d, user_id=%d",
		result.BookingID, result.SlotID, result.UserID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

func allFields() []string {
	return []string{"userId", "vehicleId", "slotId", "startTime", "endTime", "cost"}
}
