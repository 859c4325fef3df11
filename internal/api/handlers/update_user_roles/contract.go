package update_user_roles

import (
	"context"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
)

type UserService interface {
	UpdateRoles(ctx context.Context, userID int64, roleIDs []int64) (*domain.User, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
