package change_order_status

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
	orderRepo "github.com/m04kA/SMC-DetailingService/internal/infra/storage/order"
	userRepo "github.com/m04kA/SMC-DetailingService/internal/infra/storage/user"
)

// UseCase use case для смены статуса заказа
type UseCase struct {
	orderRepo OrderRepository
	userRepo  UserRepository
	txManager TransactionManager
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(orderRepo OrderRepository, userRepo UserRepository, txManager TransactionManager, logger Logger) *UseCase {
	return &UseCase{
		orderRepo: orderRepo,
		userRepo:  userRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// Execute переводит заказ в новый статус по таблице допустимых переходов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ChangeOrderStatus: order=%d, code=%s", req.OrderID, req.Code)

	// 1. Разбираем статус
	next, err := domain.ParseOrderStatus(strings.ToUpper(strings.TrimSpace(req.Code)))
	if err != nil {
		uc.logger.Warn("ChangeOrderStatus: invalid status code=%s", req.Code)
		return nil, ErrInvalidStatus
	}

	if req.AssignedOnly && req.MasterID == nil {
		uc.logger.Warn("ChangeOrderStatus: assigned-only change without master, order=%d", req.OrderID)
		return nil, ErrForbidden
	}

	// 2. Проверяем мастера, если он указан
	if req.MasterID != nil {
		master, err := uc.userRepo.GetByID(ctx, *req.MasterID)
		if err != nil {
			if errors.Is(err, userRepo.ErrUserNotFound) {
				uc.logger.Warn("ChangeOrderStatus: master id=%d not found", *req.MasterID)
				return nil, ErrMasterNotFound
			}
			uc.logger.Error("ChangeOrderStatus: failed to get master id=%d: %v", *req.MasterID, err)
			return nil, fmt.Errorf("%w: failed to get master: %v", ErrInternal, err)
		}
		if !master.HasRole(domain.RoleMaster) {
			uc.logger.Warn("ChangeOrderStatus: user id=%d is not a master", *req.MasterID)
			return nil, ErrNotMaster
		}
	}

	resp := &Response{OrderID: req.OrderID, Status: next}

	// 3. Проверяем переход и меняем статус под блокировкой строки
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		current, err := uc.orderRepo.GetStatusForUpdate(txCtx, req.OrderID)
		if err != nil {
			return err
		}
		resp.Previous = current

		if req.AssignedOnly {
			assigned, err := uc.orderRepo.IsAssigned(txCtx, req.OrderID, *req.MasterID)
			if err != nil {
				return err
			}
			if !assigned {
				uc.logger.Warn("ChangeOrderStatus: master id=%d is not assigned to order=%d", *req.MasterID, req.OrderID)
				return ErrForbidden
			}
		}

		if !current.CanTransitionTo(next) {
			uc.logger.Warn("ChangeOrderStatus: transition %s -> %s not allowed for order=%d", current, next, req.OrderID)
			return ErrTransitionNotAllowed
		}

		return uc.orderRepo.UpdateStatus(txCtx, req.OrderID, next, req.MasterID)
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrTransitionNotAllowed), errors.Is(err, ErrForbidden):
			return nil, err
		case errors.Is(err, orderRepo.ErrOrderNotFound):
			uc.logger.Warn("ChangeOrderStatus: order id=%d not found", req.OrderID)
			return nil, ErrOrderNotFound
		default:
			uc.logger.Error("ChangeOrderStatus: failed to change status of order=%d: %v", req.OrderID, err)
			return nil, fmt.Errorf("%w: failed to change status: %v", ErrInternal, err)
		}
	}

	uc.logger.Info("ChangeOrderStatus: order=%d %s -> %s", req.OrderID, resp.Previous, resp.Status)

	return resp, nil
}
