package export_masters_weekly

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-DetailingService/internal/api/handlers"
	"github.com/m04kA/SMC-DetailingService/internal/service/reports"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	fileName        = "masters-weekly.xlsx"
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

// Handle GET /reports/masters-weekly.xlsx?start=&end=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	period, err := handlers.QueryReportPeriod(r)
	if err != nil {
		h.logger.Warn("GET /reports/masters-weekly.xlsx - Invalid period: %v", err)
		handlers.RespondBadRequest(w, r, handlers.MsgInvalidPeriod)
		return
	}

	data, err := h.service.WeeklyXLSX(r.Context(), period)
	if err != nil {
		switch {
		case errors.Is(err, reports.ErrInvalidPeriod):
			h.logger.Warn("GET /reports/masters-weekly.xlsx - Invalid period")
			handlers.RespondBadRequest(w, r, handlers.MsgInvalidPeriod)

		default:
			h.logger.Error("GET /reports/masters-weekly.xlsx - Failed to export report: %v", err)
			handlers.RespondInternalError(w, r)
		}
		return
	}

	h.logger.Info("GET /reports/masters-weekly.xlsx - Report exported: bytes=%d", len(data))

	w.Header().Set("Content-Type", contentTypeXLSX)
	w.Header().Set("Content-Disposition", `attachment; filename="`+fileName+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.Warn("GET /reports/masters-weekly.xlsx - Failed to write response: %v", err)
	}
}
