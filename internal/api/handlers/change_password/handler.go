package change_password

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DetailingService/internal/api/handlers"
	"github.com/m04kA/SMC-DetailingService/internal/api/middleware"
	"github.com/m04kA/SMC-DetailingService/internal/service/users"
)

const (
	msgWrongPassword = "старый пароль указан неверно"
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

// Handle GET /users/changePassword/{username}?oldPassword=&newPassword=
// Пароль меняется только у себя
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	if principal, ok := middleware.GetPrincipal(r.Context()); ok && principal.Username != username {
		h.logger.Warn("GET /users/changePassword/{username} - Access denied: caller=%d", principal.UserID)
		handlers.RespondForbidden(w, r, handlers.MsgForbidden)
		return
	}

	query := r.URL.Query()
	err := h.service.ChangePassword(r.Context(), username, query.Get("oldPassword"), query.Get("newPassword"))
	if err != nil {
		switch {
		case errors.Is(err, users.ErrInvalidInput):
			h.logger.Warn("GET /users/changePassword/{username} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, r, handlers.Detail(err, users.ErrInvalidInput))

		case errors.Is(err, users.ErrWrongPassword):
			h.logger.Warn("GET /users/changePassword/{username} - Wrong old password: username=%s", username)
			handlers.RespondBadRequest(w, r, msgWrongPassword)

		case errors.Is(err, users.ErrUserNotFound):
			h.logger.Warn("GET /users/changePassword/{username} - User not found: username=%s", username)
			handlers.RespondNotFound(w, r, msgNotFound)

		default:
			h.logger.Error("GET /users/changePassword/{username} - Failed to change password: %v", err)
			handlers.RespondInternalError(w, r)
		}
		return
	}

	h.logger.Info("GET /users/changePassword/{username} - Password changed: username=%s", username)
	handlers.RespondNoContent(w, r)
}
