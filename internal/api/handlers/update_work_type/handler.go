package update_work_type

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DetailingService/internal/api/handlers"
	"github.com/m04kA/SMC-DetailingService/internal/api/models"
	"github.com/m04kA/SMC-DetailingService/internal/service/dictionary"
)

const (
	msgInvalidID     = "некорректный ID типа работ"
	msgInvalidInput  = "некорректные данные типа работ или его запчастей"
	msgNotFound      = "тип работ не найден"
	msgDuplicateCode = "код уже используется"
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

// Handle PUT /dictionary/work-types/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("PUT /dictionary/work-types/{id} - Invalid ID: %v", err)
		handlers.RespondBadRequest(w, r, msgInvalidID)
		return
	}

	var req models.WorkTypeWithParts
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /dictionary/work-types/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, r, handlers.MsgInvalidBody)
		return
	}
	req.ID = id

	updated, err := h.service.UpdateWorkType(r.Context(), req.ToDomain())
	if err != nil {
		switch {
		case errors.Is(err, dictionary.ErrNotFound), errors.Is(err, dictionary.ErrNotWorkType):
			h.logger.Warn("PUT /dictionary/work-types/{id} - Work type not found: id=%d", id)
			handlers.RespondNotFound(w, r, msgNotFound)

		case errors.Is(err, dictionary.ErrInvalidInput):
			h.logger.Warn("PUT /dictionary/work-types/{id} - Invalid input: id=%d, %v", id, err)
			handlers.RespondBadRequest(w, r, msgInvalidInput)

		case errors.Is(err, dictionary.ErrDuplicateCode):
			h.logger.Warn("PUT /dictionary/work-types/{id} - Duplicate code: id=%d", id)
			handlers.RespondConflict(w, r, msgDuplicateCode)

		default:
			h.logger.Error("PUT /dictionary/work-types/{id} - Failed to update work type: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w, r)
		}
		return
	}

	h.logger.Info("PUT /dictionary/work-types/{id} - Work type updated: id=%d, parts=%d", id, len(updated.Parts))
	handlers.RespondJSON(w, r, http.StatusOK, models.FromWorkTypeWithParts(updated))
}
