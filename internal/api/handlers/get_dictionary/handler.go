package get_dictionary

import (
	"net/http"

	"github.com/m04kA/SMC-DetailingService/internal/api/handlers"
	"github.com/m04kA/SMC-DetailingService/internal/api/models"
	"github.com/m04kA/SMC-DetailingService/internal/service/dictionary"
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

// Handle GET /dictionary?view=tree
// По умолчанию плоский список, view=tree - типы работ с запчастями
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.All(r.Context())
	if err != nil {
		h.logger.Error("GET /dictionary - Failed to list dictionary: %v", err)
		handlers.RespondInternalError(w, r)
		return
	}

	if r.URL.Query().Get("view") == "tree" {
		tree := dictionary.Tree(entries)
		result := make([]models.WorkTypeWithParts, 0, len(tree))
		for i := range tree {
			result = append(result, *models.FromWorkTypeWithParts(&tree[i]))
		}
		h.logger.Info("GET /dictionary - Work type tree retrieved: count=%d", len(result))
		handlers.RespondJSON(w, r, http.StatusOK, result)
		return
	}

	h.logger.Info("GET /dictionary - Dictionary retrieved: count=%d", len(entries))
	handlers.RespondJSON(w, r, http.StatusOK, models.FromEntries(entries))
}
