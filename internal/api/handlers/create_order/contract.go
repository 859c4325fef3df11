package create_order

import (
	"context"

	saveOrder "github.com/m04kA/SMC-DetailingService/internal/usecase/save_order"
)

type SaveOrderUseCase interface {
	Execute(ctx context.Context, req *saveOrder.Request) (*saveOrder.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
