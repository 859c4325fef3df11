package get_user

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DetailingService/internal/api/handlers"
	"github.com/m04kA/SMC-DetailingService/internal/api/middleware"
	"github.com/m04kA/SMC-DetailingService/internal/api/models"
	"github.com/m04kA/SMC-DetailingService/internal/domain"
	"github.com/m04kA/SMC-DetailingService/internal/service/users"
)

const (
	msgInvalidUserID = "некорректный ID пользователя"
	msgNotFound      = "пользователь не найден"
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

// Handle GET /users/{id}
// Свой профиль доступен всем, чужой - только ADMIN и MANAGER
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("GET /users/{id} - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, r, msgInvalidUserID)
		return
	}

	if principal, ok := middleware.GetPrincipal(r.Context()); ok &&
		principal.UserID != userID && !principal.HasAnyRole(domain.RoleAdmin, domain.RoleManager) {
		h.logger.Warn("GET /users/{id} - Access denied: user_id=%d, caller=%d", userID, principal.UserID)
		handlers.RespondForbidden(w, r, handlers.MsgForbidden)
		return
	}

	user, err := h.service.GetByID(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrUserNotFound):
			h.logger.Warn("GET /users/{id} - User not found: user_id=%d", userID)
			handlers.RespondNotFound(w, r, msgNotFound)

		default:
			h.logger.Error("GET /users/{id} - Failed to get user: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w, r)
		}
		return
	}

	h.logger.Info("GET /users/{id} - User retrieved: user_id=%d", userID)
	handlers.RespondJSON(w, r, http.StatusOK, models.FromUser(user))
}
