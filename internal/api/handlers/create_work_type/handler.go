package create_work_type

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DetailingService/internal/api/handlers"
	"github.com/m04kA/SMC-DetailingService/internal/api/models"
	"github.com/m04kA/SMC-DetailingService/internal/service/dictionary"
)

const (
	msgInvalidInput  = "нужны название и код типа работ, коды WORK_TYPE и INFO зарезервированы"
	msgDuplicateCode = "тип работ с таким кодом уже существует"
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

// Handle POST /dictionary/work-types
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateWorkTypeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /dictionary/work-types - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, r, handlers.MsgInvalidBody)
		return
	}

	created, err := h.service.CreateWorkType(r.Context(), req.Name, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, dictionary.ErrInvalidInput):
			h.logger.Warn("POST /dictionary/work-types - Invalid input: %v", err)
			handlers.RespondBadRequest(w, r, msgInvalidInput)

		case errors.Is(err, dictionary.ErrDuplicateCode):
			h.logger.Warn("POST /dictionary/work-types - Duplicate code: %s", req.Code)
			handlers.RespondConflict(w, r, msgDuplicateCode)

		default:
			h.logger.Error("POST /dictionary/work-types - Failed to create work type: %v", err)
			handlers.RespondInternalError(w, r)
		}
		return
	}

	h.logger.Info("POST /dictionary/work-types - Work type created: id=%d, code=%s", created.ID, created.Code)
	handlers.RespondJSON(w, r, http.StatusCreated, models.FromWorkTypeWithParts(created))
}
