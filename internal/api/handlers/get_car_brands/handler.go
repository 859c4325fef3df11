package get_car_brands

import (
	"net/http"

	"github.com/m04kA/SMC-DetailingService/internal/api/handlers"
	"github.com/m04kA/SMC-DetailingService/internal/api/models"
)

type Handler struct {
	service DictionaryService
	logger  Logger
}

func NewHandler(service DictionaryService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /car/car-brands
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	brands, err := h.service.CarBrands(r.Context())
	if err != nil {
		h.logger.Error("GET /car/car-brands - Failed to list car brands: %v", err)
		handlers.RespondInternalError(w, r)
		return
	}

	h.logger.Info("GET /car/car-brands - Car brands retrieved: count=%d", len(brands))
	handlers.RespondJSON(w, r, http.StatusOK, models.FromCarBrands(brands))
}
