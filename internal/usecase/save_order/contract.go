package save_order

import (
	"context"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
)

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) (*domain.Order, error)
	Update(ctx context.Context, o *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
}

// DictionaryRepository интерфейс репозитория справочников
type DictionaryRepository interface {
	ListByType(ctx context.Context, entryType string) ([]domain.DictionaryEntry, error)
	ListCarBrands(ctx context.Context) ([]domain.CarBrand, error)
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	ListByRole(ctx context.Context, role domain.RoleName) ([]*domain.User, error)
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
