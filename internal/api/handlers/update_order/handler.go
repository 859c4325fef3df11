package update_order

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DetailingService/internal/api/handlers"
	"github.com/m04kA/SMC-DetailingService/internal/api/models"
	"github.com/m04kA/SMC-DetailingService/internal/orderform"
	saveOrder "github.com/m04kA/SMC-DetailingService/internal/usecase/save_order"
)

const (
	msgInvalidOrderID = "некорректный ID заказа"
	msgNotFound       = "заказ не найден"
)

type Handler struct {
	useCase SaveOrderUseCase
	logger  Logger
}

func NewHandler(useCase SaveOrderUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /orders/{id}
// Заказ перезаписывается целиком, статус меняется только через /orders/change/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	orderID, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("PUT /orders/{id} - Invalid order ID: %v", err)
		handlers.RespondBadRequest(w, r, msgInvalidOrderID)
		return
	}

	var req models.Order
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /orders/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, r, handlers.MsgInvalidBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &saveOrder.Request{ID: orderID, Draft: req.ToDraft()})
	if err != nil {
		var fields orderform.Errors
		switch {
		case errors.As(err, &fields):
			h.logger.Warn("PUT /orders/{id} - Validation failed: order_id=%d, %v", orderID, fields)
			handlers.RespondValidation(w, r, fields)

		case errors.Is(err, saveOrder.ErrOrderNotFound):
			h.logger.Warn("PUT /orders/{id} - Order not found: order_id=%d", orderID)
			handlers.RespondNotFound(w, r, msgNotFound)

		default:
			h.logger.Error("PUT /orders/{id} - Failed to update order: order_id=%d, error=%v", orderID, err)
			handlers.RespondInternalError(w, r)
		}
		return
	}

	h.logger.Info("PUT /orders/{id} - Order updated successfully: order_id=%d", orderID)
	handlers.RespondJSON(w, r, http.StatusOK, models.FromOrder(result.Order))
}
