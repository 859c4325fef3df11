package form

import (
	"context"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
	"github.com/m04kA/SMC-DetailingService/internal/orderform"
)

// Gateway REST-вызовы, которые нужны форме заказа
type Gateway interface {
	CarBrands(ctx context.Context) ([]domain.CarBrand, error)
	DictionaryByType(ctx context.Context, code string) ([]domain.DictionaryEntry, error)
	UsersByRole(ctx context.Context, code domain.RoleName) ([]*domain.User, error)
	GetOrder(ctx context.Context, id int64) (*domain.Order, error)
	CreateOrder(ctx context.Context, draft orderform.Draft) (*domain.Order, error)
	UpdateOrder(ctx context.Context, id int64, draft orderform.Draft) (*domain.Order, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
