package get_order

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DetailingService/internal/api/handlers"
	"github.com/m04kA/SMC-DetailingService/internal/api/middleware"
	"github.com/m04kA/SMC-DetailingService/internal/api/models"
	"github.com/m04kA/SMC-DetailingService/internal/service/orders"
)

const (
	msgInvalidOrderID = "некорректный ID заказа"
	msgNotFound       = "заказ не найден"
)

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

// Handle GET /orders/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	orderID, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("GET /orders/{id} - Invalid order ID: %v", err)
		handlers.RespondBadRequest(w, r, msgInvalidOrderID)
		return
	}

	order, err := h.service.GetByID(r.Context(), orderID)
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrOrderNotFound):
			h.logger.Warn("GET /orders/{id} - Order not found: order_id=%d", orderID)
			handlers.RespondNotFound(w, r, msgNotFound)

		default:
			h.logger.Error("GET /orders/{id} - Failed to get order: order_id=%d, error=%v", orderID, err)
			handlers.RespondInternalError(w, r)
		}
		return
	}

	// Мастер без других ролей видит только свои заказы
	if principal, ok := middleware.GetPrincipal(r.Context()); ok && principal.IsMasterOnly() && !order.HasMaster(principal.UserID) {
		h.logger.Warn("GET /orders/{id} - Access denied: order_id=%d, user_id=%d", orderID, principal.UserID)
		handlers.RespondForbidden(w, r, handlers.MsgForbidden)
		return
	}

	h.logger.Info("GET /orders/{id} - Order retrieved successfully: order_id=%d", orderID)
	handlers.RespondJSON(w, r, http.StatusOK, models.FromOrder(order))
}
