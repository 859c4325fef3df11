package get_roles

import (
	"context"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
)

type UserService interface {
	ListRoles(ctx context.Context) ([]domain.Role, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
