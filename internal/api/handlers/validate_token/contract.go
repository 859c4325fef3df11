package validate_token

import (
	"context"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
)

type AuthService interface {
	ValidateToken(ctx context.Context, token string) (*domain.User, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
