package get_lot_slots

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/service/lots"
)

const (
	msgMissingLot  = `Missing "lot" query parameter`
	msgFetchFailed = "Failed to fetch slot data"
)

type Handler struct {
	service LotsService
	logger  Logger
}

func NewHandler(service LotsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/slots?lot=<name>
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	lotName := strings.TrimSpace(r.URL.Query().Get("lot"))
	if lotName == "" {
		h.logger.Warn("GET /slots - Missing lot query parameter")
		handlers.RespondBadRequest(w, msgMissingLot)
		return
	}

	result, err := h.service.GetLotSlots(r.Context(), lotName)
	if err != nil {
		if errors.Is(err, lots.ErrInvalidInput) {
			h.logger.Warn("GET /slots - Invalid lot name: %q", lotName)
			handlers.RespondBadRequest(w, msgMissingLot)
			return
		}
		h.logger.Error("GET /slots - Failed to get slots: lot=%q, error=%v", lotName, err)
		handlers.RespondInternalError(w, msgFetchFailed)
		return
	}

	h.logger.Info("GET /slots - Slots retrieved successfully: lot=%q, count=%d", lotName, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, result)
}
