package orders

import (
	"context"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
)

// OrderRepository интерфейс репозитория заказов (только чтение)
type OrderRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	ListByPeriod(ctx context.Context, filter domain.CalendarFilter) ([]*domain.Order, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
