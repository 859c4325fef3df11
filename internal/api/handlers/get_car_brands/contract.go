package get_car_brands

import (
	"context"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
)

type DictionaryService interface {
	CarBrands(ctx context.Context) ([]domain.CarBrand, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
