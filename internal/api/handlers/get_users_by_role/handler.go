package get_users_by_role

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DetailingService/internal/api/handlers"
	"github.com/m04kA/SMC-DetailingService/internal/api/models"
	"github.com/m04kA/SMC-DetailingService/internal/service/users"
)

const msgRoleNotFound = "роль не найдена"

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

// Handle GET /users/role/{code}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	result, err := h.service.ListByRole(r.Context(), code)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrRoleNotFound):
			h.logger.Warn("GET /users/role/{code} - Role not found: code=%s", code)
			handlers.RespondNotFound(w, r, msgRoleNotFound)

		default:
			h.logger.Error("GET /users/role/{code} - Failed to list users: code=%s, error=%v", code, err)
			handlers.RespondInternalError(w, r)
		}
		return
	}

	h.logger.Info("GET /users/role/{code} - Users retrieved: code=%s, count=%d", code, len(result))
	handlers.RespondJSON(w, r, http.StatusOK, models.FromUsers(result))
}
