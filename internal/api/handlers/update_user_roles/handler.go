package update_user_roles

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DetailingService/internal/api/handlers"
	"github.com/m04kA/SMC-DetailingService/internal/api/models"
	"github.com/m04kA/SMC-DetailingService/internal/service/users"
)

const (
	msgInvalidUserID = "некорректный ID пользователя"
	msgInvalidRoles  = "roleIds должен быть списком чисел через запятую"
	msgNotFound      = "пользователь не найден"
	msgRoleNotFound  = "выбрана несуществующая роль"
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

// Handle GET /users/updateRoles/{id}?roleIds=1,2
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("GET /users/updateRoles/{id} - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, r, msgInvalidUserID)
		return
	}

	roleIDs, err := handlers.QueryInt64List(r, "roleIds")
	if err != nil {
		h.logger.Warn("GET /users/updateRoles/{id} - Invalid role IDs: %v", err)
		handlers.RespondBadRequest(w, r, msgInvalidRoles)
		return
	}

	user, err := h.service.UpdateRoles(r.Context(), userID, roleIDs)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrInvalidInput):
			h.logger.Warn("GET /users/updateRoles/{id} - Invalid input: user_id=%d, %v", userID, err)
			handlers.RespondBadRequest(w, r, handlers.Detail(err, users.ErrInvalidInput))

		case errors.Is(err, users.ErrUserNotFound):
			h.logger.Warn("GET /users/updateRoles/{id} - User not found: user_id=%d", userID)
			handlers.RespondNotFound(w, r, msgNotFound)

		case errors.Is(err, users.ErrRoleNotFound):
			h.logger.Warn("GET /users/updateRoles/{id} - Role not found: %v", roleIDs)
			handlers.RespondBadRequest(w, r, msgRoleNotFound)

		default:
			h.logger.Error("GET /users/updateRoles/{id} - Failed to update roles: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w, r)
		}
		return
	}

	h.logger.Info("GET /users/updateRoles/{id} - Roles updated: user_id=%d, roles=%v", userID, roleIDs)
	handlers.RespondJSON(w, r, http.StatusOK, models.FromUser(user))
}
