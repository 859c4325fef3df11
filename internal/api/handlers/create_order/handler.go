package create_order

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DetailingService/internal/api/handlers"
	"github.com/m04kA/SMC-DetailingService/internal/api/models"
	"github.com/m04kA/SMC-DetailingService/internal/orderform"
	saveOrder "github.com/m04kA/SMC-DetailingService/internal/usecase/save_order"
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

// Handle POST /orders
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.Order
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /orders - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, r, handlers.MsgInvalidBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &saveOrder.Request{Draft: req.ToDraft()})
	if err != nil {
		var fields orderform.Errors
		switch {
		case errors.As(err, &fields):
			h.logger.Warn("POST /orders - Validation failed: %v", fields)
			handlers.RespondValidation(w, r, fields)

		default:
			h.logger.Error("POST /orders - Failed to create order: %v", err)
			handlers.RespondInternalError(w, r)
		}
		return
	}

	h.logger.Info("POST /orders - Order created successfully: order_id=%d", result.Order.ID)
	handlers.RespondJSON(w, r, http.StatusCreated, models.FromOrder(result.Order))
}
