package users

import (
	"context"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
)

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	List(ctx context.Context) ([]*domain.User, error)
	ListByRole(ctx context.Context, role domain.RoleName) ([]*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetCredentials(ctx context.Context, username string) (*domain.User, string, error)
	GetPasswordHash(ctx context.Context, id int64) (string, error)
	Create(ctx context.Context, u *domain.User, passwordHash string) (*domain.User, error)
	UpdateProfile(ctx context.Context, u *domain.User) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	ListRoles(ctx context.Context) ([]domain.Role, error)
	GetRolesByIDs(ctx context.Context, ids []int64) ([]domain.Role, error)
	GetRolesByNames(ctx context.Context, names []domain.RoleName) ([]domain.Role, error)
	SetRoles(ctx context.Context, userID int64, roleIDs []int64) error
	CountByRole(ctx context.Context, role domain.RoleName) (int, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
