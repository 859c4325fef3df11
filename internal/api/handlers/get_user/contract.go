package get_user

import (
	"context"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
)

type UserService interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
