package change_order_status

import (
	"context"

	changeStatus "github.com/m04kA/SMC-DetailingService/internal/usecase/change_order_status"
)

type ChangeStatusUseCase interface {
	Execute(ctx context.Context, req *changeStatus.Request) (*changeStatus.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
