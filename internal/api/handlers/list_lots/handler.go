package list_lots

import (
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
)

const msgFetchFailed = "Failed to fetch parking lots"

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

// Handle GET /api/lots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListLots(r.Context())
	if err != nil {
		h.logger.Error("GET /lots - Failed to list lots: %v", err)
		handlers.RespondInternalError(w, msgFetchFailed)
		return
	}

	h.logger.Info("GET /lots - Lots retrieved successfully: count=%d", len(result.Lots))
	handlers.RespondJSON(w, http.StatusOK, result)
}
