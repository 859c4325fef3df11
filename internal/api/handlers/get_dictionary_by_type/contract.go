package get_dictionary_by_type

import (
	"context"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
)

type DictionaryService interface {
	ByType(ctx context.Context, code string) ([]domain.DictionaryEntry, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
