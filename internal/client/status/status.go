// Package status действия со статусом заказа на стороне клиента
package status

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DetailingService/internal/client/api"
	"github.com/m04kA/SMC-DetailingService/internal/domain"
)

var (
	// ErrTransitionNotAllowed переход недоступен из текущего статуса заказа
	ErrTransitionNotAllowed = errors.New("status: transition not allowed")

	// ErrForeignMaster мастер не может менять статус от имени другого мастера
	ErrForeignMaster = errors.New("status: cannot act as another master")
)

// Gateway REST-вызов смены статуса
type Gateway interface {
	ChangeStatus(ctx context.Context, id int64, status domain.OrderStatus, masterID *int64) (*api.StatusChange, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Action кнопка смены статуса
type Action struct {
	Status domain.OrderStatus
	Label  string
}

var labels = map[domain.OrderStatus]string{
	domain.StatusInProgress: "Взять в работу",
	domain.StatusCompleted:  "Завершить",
	domain.StatusCancelled:  "Отменить",
}

// Actions доступные действия для заказа в статусе current
func Actions(current domain.OrderStatus) []Action {
	next := current.AvailableTransitions()
	result := make([]Action, 0, len(next))
	for _, s := range next {
		result = append(result, Action{Status: s, Label: labels[s]})
	}
	return result
}

// Changer выполняет смену статуса от имени текущего пользователя
type Changer struct {
	gw   Gateway
	user *domain.User
	log  Logger
}

func NewChanger(gw Gateway, user *domain.User, log Logger) *Changer {
	return &Changer{gw: gw, user: user, log: log}
}

// Change переводит заказ в next. Недопустимый по локальному статусу переход
// отклоняется без запроса к серверу. Пользователю с единственной ролью MASTER
// мастер по умолчанию он сам.
func (c *Changer) Change(ctx context.Context, order *domain.Order, next domain.OrderStatus, masterID *int64) (*domain.Order, error) {
	if !order.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrTransitionNotAllowed, order.Status, next)
	}

	actor := masterID
	if c.user != nil && c.user.IsMasterOnly() {
		if actor != nil && *actor != c.user.ID {
			return nil, ErrForeignMaster
		}
		id := c.user.ID
		actor = &id
	}

	res, err := c.gw.ChangeStatus(ctx, order.ID, next, actor)
	if err != nil {
		c.log.Warn("Change: order id=%d, %s -> %s: %v", order.ID, order.Status, next, err)
		return nil, fmt.Errorf("Change: %w", err)
	}

	updated := *order
	updated.Status = res.Status
	c.log.Info("Change: order id=%d, %s -> %s", order.ID, res.Previous, res.Status)
	return &updated, nil
}
