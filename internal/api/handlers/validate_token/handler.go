package validate_token

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DetailingService/internal/api/handlers"
	"github.com/m04kA/SMC-DetailingService/internal/api/models"
	"github.com/m04kA/SMC-DetailingService/internal/service/auth"
)

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

// Handle POST /auth/validate-token
// Невалидный токен - это ответ isValid=false, а не ошибка
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.ValidateTokenRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/validate-token - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, r, handlers.MsgInvalidBody)
		return
	}

	user, err := h.service.ValidateToken(r.Context(), req.Token)
	if err != nil {
		if !errors.Is(err, auth.ErrInvalidToken) {
			h.logger.Error("POST /auth/validate-token - Failed to validate token: %v", err)
			handlers.RespondInternalError(w, r)
			return
		}
		h.logger.Info("POST /auth/validate-token - Token rejected")
		handlers.RespondJSON(w, r, http.StatusOK, models.ValidateTokenResponse{IsValid: false})
		return
	}

	h.logger.Info("POST /auth/validate-token - Token valid: user_id=%d", user.ID)
	handlers.RespondJSON(w, r, http.StatusOK, models.ValidateTokenResponse{IsValid: true, User: models.FromUser(user)})
}
