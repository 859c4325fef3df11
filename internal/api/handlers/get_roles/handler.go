package get_roles

import (
	"net/http"

	"github.com/m04kA/SMC-DetailingService/internal/api/handlers"
	"github.com/m04kA/SMC-DetailingService/internal/api/models"
)

type Handler struct {
	service UserService
	logger  Logger
}

func NewHandler(service UserService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /users/roles
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	roles, err := h.service.ListRoles(r.Context())
	if err != nil {
		h.logger.Error("GET /users/roles - Failed to list roles: %v", err)
		handlers.RespondInternalError(w, r)
		return
	}

	h.logger.Info("GET /users/roles - Roles retrieved: count=%d", len(roles))
	handlers.RespondJSON(w, r, http.StatusOK, models.FromRoles(roles))
}
