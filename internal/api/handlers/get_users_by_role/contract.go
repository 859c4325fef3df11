package get_users_by_role

import (
	"context"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
)

type UserService interface {
	ListByRole(ctx context.Context, code string) ([]*domain.User, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
