package get_users

import (
	"context"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
)

type UserService interface {
	List(ctx context.Context) ([]*domain.User, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
