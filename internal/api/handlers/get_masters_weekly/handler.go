package get_masters_weekly

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DetailingService/internal/api/handlers"
	"github.com/m04kA/SMC-DetailingService/internal/api/models"
	"github.com/m04kA/SMC-DetailingService/internal/service/reports"
)

type Handler struct {
	service ReportService
	logger  Logger
}

func NewHandler(service ReportService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /reports/masters-weekly?start=&end=
// Без start/end отчет строится за текущую неделю
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	period, err := handlers.QueryReportPeriod(r)
	if err != nil {
		h.logger.Warn("GET /reports/masters-weekly - Invalid period: %v", err)
		handlers.RespondBadRequest(w, r, handlers.MsgInvalidPeriod)
		return
	}

	result, resolved, err := h.service.Weekly(r.Context(), period)
	if err != nil {
		switch {
		case errors.Is(err, reports.ErrInvalidPeriod):
			h.logger.Warn("GET /reports/masters-weekly - Invalid period")
			handlers.RespondBadRequest(w, r, handlers.MsgInvalidPeriod)

		default:
			h.logger.Error("GET /reports/masters-weekly - Failed to build report: %v", err)
			handlers.RespondInternalError(w, r)
		}
		return
	}

	h.logger.Info("GET /reports/masters-weekly - Report built: masters=%d, start=%s, end=%s",
		len(result), resolved.Start.Format("2006-01-02"), resolved.End.Format("2006-01-02"))
	handlers.RespondJSON(w, r, http.StatusOK, models.FromWeeklyReports(result))
}
