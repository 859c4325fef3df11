package get_dictionary_by_type

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DetailingService/internal/api/handlers"
	"github.com/m04kA/SMC-DetailingService/internal/api/models"
	"github.com/m04kA/SMC-DetailingService/internal/service/dictionary"
)

const msgMissingCode = "не указан тип справочника"

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

// Handle GET /dictionary/type/{code}
// WORK_TYPE и INFO возвращают типы работ и источники, код типа работ - его запчасти
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	code := strings.TrimSpace(mux.Vars(r)["code"])
	if code == "" {
		h.logger.Warn("GET /dictionary/type/{code} - Missing code")
		handlers.RespondBadRequest(w, r, msgMissingCode)
		return
	}

	entries, err := h.service.ByType(r.Context(), code)
	if err != nil {
		switch {
		case errors.Is(err, dictionary.ErrInvalidInput):
			h.logger.Warn("GET /dictionary/type/{code} - Invalid code: %s", code)
			handlers.RespondBadRequest(w, r, msgMissingCode)

		default:
			h.logger.Error("GET /dictionary/type/{code} - Failed to list entries: code=%s, error=%v", code, err)
			handlers.RespondInternalError(w, r)
		}
		return
	}

	h.logger.Info("GET /dictionary/type/{code} - Entries retrieved: code=%s, count=%d", code, len(entries))
	handlers.RespondJSON(w, r, http.StatusOK, models.FromEntries(entries))
}
