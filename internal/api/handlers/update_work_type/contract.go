package update_work_type

import (
	"context"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
)

type DictionaryService interface {
	UpdateWorkType(ctx context.Context, req *domain.WorkTypeWithParts) (*domain.WorkTypeWithParts, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
