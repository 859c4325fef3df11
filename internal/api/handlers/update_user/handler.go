package update_user

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

// Handle PUT /users/{id}
// Свой профиль может менять любой пользователь, чужой - только ADMIN и MANAGER
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("PUT /users/{id} - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, r, msgInvalidUserID)
		return
	}

	if principal, ok := middleware.GetPrincipal(r.Context()); ok &&
		principal.UserID != userID && !principal.HasAnyRole(domain.RoleAdmin, domain.RoleManager) {
		h.logger.Warn("PUT /users/{id} - Access denied: user_id=%d, caller=%d", userID, principal.UserID)
		handlers.RespondForbidden(w, r, handlers.MsgForbidden)
		return
	}

	var req models.UpdateUserRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /users/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, r, handlers.MsgInvalidBody)
		return
	}

	user, err := h.service.UpdateProfile(r.Context(), &users.UpdateProfileRequest{
		ID:        userID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		switch {
		case errors.Is(err, users.ErrInvalidInput):
			h.logger.Warn("PUT /users/{id} - Invalid input: user_id=%d, %v", userID, err)
			handlers.RespondBadRequest(w, r, handlers.Detail(err, users.ErrInvalidInput))

		case errors.Is(err, users.ErrUserNotFound):
			h.logger.Warn("PUT /users/{id} - User not found: user_id=%d", userID)
			handlers.RespondNotFound(w, r, msgNotFound)

		default:
			h.logger.Error("PUT /users/{id} - Failed to update user: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w, r)
		}
		return
	}

	h.logger.Info("PUT /users/{id} - User updated: user_id=%d", userID)
	handlers.RespondJSON(w, r, http.StatusOK, models.FromUser(user))
}
