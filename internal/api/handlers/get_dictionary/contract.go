package get_dictionary

import (
	"context"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
)

type DictionaryService interface {
	All(ctx context.Context) ([]domain.DictionaryEntry, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
