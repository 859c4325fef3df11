package get_calendar

import (
	"context"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
)

type OrderService interface {
	Calendar(ctx context.Context, filter domain.CalendarFilter) ([]*domain.Order, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
