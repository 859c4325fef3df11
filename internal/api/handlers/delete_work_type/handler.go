package delete_work_type

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DetailingService/internal/api/handlers"
	"github.com/m04kA/SMC-DetailingService/internal/service/dictionary"
)

const (
	msgInvalidID = "некорректный ID типа работ"
	msgNotFound  = "тип работ не найден"
	msgInUse     = "тип работ используется в заказах, его можно только деактивировать"
)

type Handler struct {
	service DictionaryService
	logger  Logger
}

func NewHandler(service DictionaryService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /dictionary/work-types/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("DELETE /dictionary/work-types/{id} - Invalid ID: %v", err)
		handlers.RespondBadRequest(w, r, msgInvalidID)
		return
	}

	if err := h.service.DeleteWorkType(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, dictionary.ErrNotFound), errors.Is(err, dictionary.ErrNotWorkType):
			h.logger.Warn("DELETE /dictionary/work-types/{id} - Work type not found: id=%d", id)
			handlers.RespondNotFound(w, r, msgNotFound)

		case errors.Is(err, dictionary.ErrInUse):
			h.logger.Warn("DELETE /dictionary/work-types/{id} - Work type in use: id=%d", id)
			handlers.RespondConflict(w, r, msgInUse)

		default:
			h.logger.Error("DELETE /dictionary/work-types/{id} - Failed to delete work type: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w, r)
		}
		return
	}

	h.logger.Info("DELETE /dictionary/work-types/{id} - Work type deleted: id=%d", id)
	handlers.RespondNoContent(w, r)
}
