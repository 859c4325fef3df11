package dictionary

import (
	"context"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
)

// DictionaryRepository интерфейс репозитория справочников
type DictionaryRepository interface {
	ListAll(ctx context.Context) ([]domain.DictionaryEntry, error)
	ListByType(ctx context.Context, entryType string) ([]domain.DictionaryEntry, error)
	GetByID(ctx context.Context, id int64) (*domain.DictionaryEntry, error)
	Create(ctx context.Context, e *domain.DictionaryEntry) (*domain.DictionaryEntry, error)
	Update(ctx context.Context, e *domain.DictionaryEntry) error
	Delete(ctx context.Context, id int64) error
	DeleteByType(ctx context.Context, entryType string) error
	RenameType(ctx context.Context, oldType, newType string) error
	ListCarBrands(ctx context.Context) ([]domain.CarBrand, error)
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
