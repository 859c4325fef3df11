package save_order

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
	orderRepo "github.com/m04kA/SMC-DetailingService/internal/infra/storage/order"
	"github.com/m04kA/SMC-DetailingService/internal/orderform"
)

// UseCase use case для создания и перезаписи заказа
type UseCase struct {
	orderRepo OrderRepository
	dictRepo  DictionaryRepository
	userRepo  UserRepository
	txManager TransactionManager
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	orderRepo OrderRepository,
	dictRepo DictionaryRepository,
	userRepo UserRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		orderRepo: orderRepo,
		dictRepo:  dictRepo,
		userRepo:  userRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// Execute проверяет форму по справочникам из БД и сохраняет заказ.
// Обновление перезаписывает заказ целиком, статус при этом не меняется.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SaveOrder: id=%d, client=%s, works=%d", req.ID, req.Draft.ClientName, len(req.Draft.Works))

	// 1. Загружаем справочники
	dicts, err := uc.loadDictionaries(ctx, req.Draft.WorkTypeCodes())
	if err != nil {
		uc.logger.Error("SaveOrder: failed to load dictionaries: %v", err)
		return nil, fmt.Errorf("%w: failed to load dictionaries: %v", ErrInternal, err)
	}

	// 2. Валидация формы
	if errs := orderform.Validate(req.Draft, dicts); !errs.Valid() {
		uc.logger.Warn("SaveOrder: validation failed: %v", errs)
		return nil, fmt.Errorf("%w: %w", ErrValidation, errs)
	}

	// 3. Собираем заказ
	order := req.Draft.ToOrder()
	order.ID = req.ID
	if !order.IsPersisted() {
		order.Status = domain.StatusNew
	}

	// 4. Сохраняем и перечитываем в одной транзакции
	var saved *domain.Order
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		if order.IsPersisted() {
			_, err = uc.orderRepo.Update(txCtx, order)
		} else {
			_, err = uc.orderRepo.Create(txCtx, order)
		}
		if err != nil {
			return err
		}

		saved, err = uc.orderRepo.GetByID(txCtx, order.ID)
		return err
	})
	if err != nil {
		if errors.Is(err, orderRepo.ErrOrderNotFound) {
			uc.logger.Warn("SaveOrder: order id=%d not found", req.ID)
			return nil, ErrOrderNotFound
		}
		uc.logger.Error("SaveOrder: failed to save order id=%d: %v", req.ID, err)
		return nil, fmt.Errorf("%w: failed to save order: %v", ErrInternal, err)
	}

	uc.logger.Info("SaveOrder: saved order id=%d, status=%s", saved.ID, saved.Status)

	return &Response{Order: saved, Created: req.ID == 0}, nil
}
