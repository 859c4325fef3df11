package calendar

import (
	"context"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
	"github.com/m04kA/SMC-DetailingService/internal/orderform"
)

// Gateway REST-вызовы календаря
type Gateway interface {
	Calendar(ctx context.Context, filter domain.CalendarFilter) ([]*domain.Order, error)
	UpdateOrder(ctx context.Context, id int64, draft orderform.Draft) (*domain.Order, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
