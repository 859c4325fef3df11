package get_master_detail

import (
	"context"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
)

type ReportService interface {
	Detail(ctx context.Context, masterID int64, period *domain.DateRange) (*domain.MasterDetailReport, domain.DateRange, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
