package get_master_detail

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DetailingService/internal/api/handlers"
	"github.com/m04kA/SMC-DetailingService/internal/api/middleware"
	"github.com/m04kA/SMC-DetailingService/internal/api/models"
	"github.com/m04kA/SMC-DetailingService/internal/domain"
	"github.com/m04kA/SMC-DetailingService/internal/service/reports"
)

const (
	msgInvalidMasterID = "некорректный ID мастера"
	msgMasterNotFound  = "мастер не найден"
	msgNotMaster       = "пользователь не является мастером"
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

// Handle GET /reports/master-detail/{id}?start=&end=
// Мастер видит только свой отчет, ADMIN и MANAGER - любой
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	masterID, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("GET /reports/master-detail/{id} - Invalid master ID: %v", err)
		handlers.RespondBadRequest(w, r, msgInvalidMasterID)
		return
	}

	if principal, ok := middleware.GetPrincipal(r.Context()); ok &&
		principal.UserID != masterID && !principal.HasAnyRole(domain.RoleAdmin, domain.RoleManager) {
		h.logger.Warn("GET /reports/master-detail/{id} - Access denied: master_id=%d, caller=%d", masterID, principal.UserID)
		handlers.RespondForbidden(w, r, handlers.MsgForbidden)
		return
	}

	period, err := handlers.QueryReportPeriod(r)
	if err != nil {
		h.logger.Warn("GET /reports/master-detail/{id} - Invalid period: %v", err)
		handlers.RespondBadRequest(w, r, handlers.MsgInvalidPeriod)
		return
	}

	report, _, err := h.service.Detail(r.Context(), masterID, period)
	if err != nil {
		switch {
		case errors.Is(err, reports.ErrInvalidPeriod):
			h.logger.Warn("GET /reports/master-detail/{id} - Invalid period: master_id=%d", masterID)
			handlers.RespondBadRequest(w, r, handlers.MsgInvalidPeriod)

		case errors.Is(err, reports.ErrMasterNotFound):
			h.logger.Warn("GET /reports/master-detail/{id} - Master not found: master_id=%d", masterID)
			handlers.RespondNotFound(w, r, msgMasterNotFound)

		case errors.Is(err, reports.ErrNotMaster):
			h.logger.Warn("GET /reports/master-detail/{id} - User is not a master: master_id=%d", masterID)
			handlers.RespondBadRequest(w, r, msgNotMaster)

		default:
			h.logger.Error("GET /reports/master-detail/{id} - Failed to build report: master_id=%d, error=%v", masterID, err)
			handlers.RespondInternalError(w, r)
		}
		return
	}

	h.logger.Info("GET /reports/master-detail/{id} - Report built: master_id=%d, work_types=%d",
		masterID, len(report.ReportDetails))
	handlers.RespondJSON(w, r, http.StatusOK, models.FromDetailReport(report))
}
