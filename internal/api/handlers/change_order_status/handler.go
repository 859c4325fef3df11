package change_order_status

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DetailingService/internal/api/handlers"
	"github.com/m04kA/SMC-DetailingService/internal/api/middleware"
	"github.com/m04kA/SMC-DetailingService/internal/api/models"
	changeStatus "github.com/m04kA/SMC-DetailingService/internal/usecase/change_order_status"
)

const (
	msgInvalidOrderID   = "некорректный ID заказа"
	msgInvalidMaster    = "некорректный ID мастера"
	msgInvalidStatus    = "неизвестный статус заказа"
	msgNotFound         = "заказ не найден"
	msgMasterNotFound   = "мастер не найден"
	msgNotMaster        = "пользователь не является мастером"
	msgTransitionDenied = "переход в этот статус недоступен"
)

type Handler struct {
	useCase ChangeStatusUseCase
	logger  Logger
}

func NewHandler(useCase ChangeStatusUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /orders/change/{id}?code=&master=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	orderID, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("GET /orders/change/{id} - Invalid order ID: %v", err)
		handlers.RespondBadRequest(w, r, msgInvalidOrderID)
		return
	}

	masterID, err := handlers.QueryInt64(r, "master")
	if err != nil {
		h.logger.Warn("GET /orders/change/{id} - Invalid master: %v", err)
		handlers.RespondBadRequest(w, r, msgInvalidMaster)
		return
	}

	// Мастер без других ролей меняет статус только своих заказов и только от своего имени
	assignedOnly := false
	if principal, ok := middleware.GetPrincipal(r.Context()); ok && principal.IsMasterOnly() {
		if masterID != nil && *masterID != principal.UserID {
			h.logger.Warn("GET /orders/change/{id} - Master %d acts as %d", principal.UserID, *masterID)
			handlers.RespondForbidden(w, r, handlers.MsgForbidden)
			return
		}
		masterID = &principal.UserID
		assignedOnly = true
	}

	result, err := h.useCase.Execute(r.Context(), &changeStatus.Request{
		OrderID:      orderID,
		Code:         r.URL.Query().Get("code"),
		MasterID:     masterID,
		AssignedOnly: assignedOnly,
	})
	if err != nil {
		switch {
		case errors.Is(err, changeStatus.ErrInvalidStatus):
			h.logger.Warn("GET /orders/change/{id} - Invalid status: order_id=%d", orderID)
			handlers.RespondBadRequest(w, r, msgInvalidStatus)

		case errors.Is(err, changeStatus.ErrOrderNotFound):
			h.logger.Warn("GET /orders/change/{id} - Order not found: order_id=%d", orderID)
			handlers.RespondNotFound(w, r, msgNotFound)

		case errors.Is(err, changeStatus.ErrMasterNotFound):
			h.logger.Warn("GET /orders/change/{id} - Master not found: order_id=%d", orderID)
			handlers.RespondNotFound(w, r, msgMasterNotFound)

		case errors.Is(err, changeStatus.ErrNotMaster):
			h.logger.Warn("GET /orders/change/{id} - User is not a master: order_id=%d", orderID)
			handlers.RespondBadRequest(w, r, msgNotMaster)

		case errors.Is(err, changeStatus.ErrForbidden):
			h.logger.Warn("GET /orders/change/{id} - Master is not assigned: order_id=%d", orderID)
			handlers.RespondForbidden(w, r, handlers.MsgForbidden)

		case errors.Is(err, changeStatus.ErrTransitionNotAllowed):
			h.logger.Warn("GET /orders/change/{id} - Transition not allowed: order_id=%d", orderID)
			handlers.RespondConflict(w, r, msgTransitionDenied)

		default:
			h.logger.Error("GET /orders/change/{id} - Failed to change status: order_id=%d, error=%v", orderID, err)
			handlers.RespondInternalError(w, r)
		}
		return
	}

	available := make([]string, 0, 2)
	for _, s := range result.Status.AvailableTransitions() {
		available = append(available, string(s))
	}

	h.logger.Info("GET /orders/change/{id} - Status changed: order_id=%d, %s -> %s",
		orderID, result.Previous, result.Status)
	handlers.RespondJSON(w, r, http.StatusOK, models.StatusChange{
		OrderID:        result.OrderID,
		PreviousStatus: string(result.Previous),
		Status:         string(result.Status),
		Available:      available,
	})
}
