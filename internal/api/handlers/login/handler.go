package login

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DetailingService/internal/api/handlers"
	"github.com/m04kA/SMC-DetailingService/internal/api/models"
	"github.com/m04kA/SMC-DetailingService/internal/service/auth"
)

const msgInvalidCredentials = "неверный логин или пароль"

type Handler struct {
	service AuthService
	logger  Logger
}

func NewHandler(service AuthService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /auth/login
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/login - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, r, handlers.MsgInvalidBody)
		return
	}

	result, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			h.logger.Warn("POST /auth/login - Invalid credentials: username=%s", req.Username)
			handlers.RespondUnauthorized(w, r, msgInvalidCredentials)

		default:
			h.logger.Error("POST /auth/login - Failed to login: username=%s, error=%v", req.Username, err)
			handlers.RespondInternalError(w, r)
		}
		return
	}

	h.logger.Info("POST /auth/login - User logged in: user_id=%d", result.User.ID)
	handlers.RespondJSON(w, r, http.StatusOK, models.LoginResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		User:      *models.FromUser(result.User),
	})
}
