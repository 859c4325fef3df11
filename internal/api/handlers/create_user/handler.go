package create_user

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DetailingService/internal/api/handlers"
	"github.com/m04kA/SMC-DetailingService/internal/api/models"
	"github.com/m04kA/SMC-DetailingService/internal/service/users"
)

const (
	msgUsernameTaken = "логин уже занят"
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

// Handle POST /users
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /users - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, r, handlers.MsgInvalidBody)
		return
	}

	user, err := h.service.Create(r.Context(), &users.CreateRequest{
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		RoleIDs:   req.RoleIDs(),
	})
	if err != nil {
		switch {
		case errors.Is(err, users.ErrInvalidInput):
			h.logger.Warn("POST /users - Invalid input: %v", err)
			handlers.RespondBadRequest(w, r, handlers.Detail(err, users.ErrInvalidInput))

		case errors.Is(err, users.ErrUsernameTaken):
			h.logger.Warn("POST /users - Username taken: %s", req.Username)
			handlers.RespondConflict(w, r, msgUsernameTaken)

		case errors.Is(err, users.ErrRoleNotFound):
			h.logger.Warn("POST /users - Role not found: %v", req.RoleIDs())
			handlers.RespondBadRequest(w, r, msgRoleNotFound)

		default:
			h.logger.Error("POST /users - Failed to create user: %v", err)
			handlers.RespondInternalError(w, r)
		}
		return
	}

	h.logger.Info("POST /users - User created: user_id=%d", user.ID)
	handlers.RespondJSON(w, r, http.StatusCreated, models.FromUser(user))
}
