package get_calendar

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DetailingService/internal/api/handlers"
	"github.com/m04kA/SMC-DetailingService/internal/api/middleware"
	"github.com/m04kA/SMC-DetailingService/internal/api/models"
	"github.com/m04kA/SMC-DetailingService/internal/service/orders"
)

const msgInvalidFilter = "некорректные параметры календаря: нужны start и end, masterId - число, status - статус заказа или all"

type Handler struct {
	service OrderService
	logger  Logger
}

func NewHandler(service OrderService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /orders/calendar?start=&end=&masterId=&status=&format=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		h.logger.Warn("GET /orders/calendar - Invalid filter: %v", err)
		handlers.RespondBadRequest(w, r, msgInvalidFilter)
		return
	}

	// Мастер без других ролей видит только свой календарь
	if principal, ok := middleware.GetPrincipal(r.Context()); ok && principal.IsMasterOnly() {
		filter.MasterID = &principal.UserID
	}

	result, err := h.service.Calendar(r.Context(), filter)
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrInvalidPeriod):
			h.logger.Warn("GET /orders/calendar - Invalid period")
			handlers.RespondBadRequest(w, r, handlers.MsgInvalidPeriod)

		default:
			h.logger.Error("GET /orders/calendar - Failed to get calendar: %v", err)
			handlers.RespondInternalError(w, r)
		}
		return
	}

	h.logger.Info("GET /orders/calendar - Calendar retrieved successfully: count=%d", len(result))

	if r.URL.Query().Get("format") == formatEvents {
		handlers.RespondJSON(w, r, http.StatusOK, models.FromCalendarEvents(orders.Events(result)))
		return
	}
	handlers.RespondJSON(w, r, http.StatusOK, models.FromOrders(result))
}
