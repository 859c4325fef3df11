package get_masters_weekly

import (
	"context"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
)

type ReportService interface {
	Weekly(ctx context.Context, period *domain.DateRange) ([]domain.MasterWeeklyReport, domain.DateRange, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
