package change_order_status

import (
	"context"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
)

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	GetStatusForUpdate(ctx context.Context, id int64) (domain.OrderStatus, error)
	UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus, changedBy *int64) error
	IsAssigned(ctx context.Context, orderID, masterID int64) (bool, error)
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
