package session

import (
	"context"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
)

// Storage долговременное хранилище сессии
type Storage interface {
	Load() (*State, error)
	Save(state *State) error
	Clear() error
}

// TokenValidator проверка токена на сервере (POST /auth/validate-token)
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*domain.User, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
