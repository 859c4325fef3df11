package create_work_type

import (
	"context"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
)

type DictionaryService interface {
	CreateWorkType(ctx context.Context, name, code string) (*domain.WorkTypeWithParts, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
