// Package calendar календарь заказов: фильтры, события и перенос заказа
package calendar

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
	"github.com/m04kA/SMC-DetailingService/internal/orderform"
)

// View состояние календаря одного пользователя
type View struct {
	gw  Gateway
	log Logger

	mu           sync.Mutex
	filter       domain.CalendarFilter
	masterLocked bool
	orders       map[int64]*domain.Order
}

// NewView календарь текущей недели (понедельник 00:00 - следующий понедельник).
// Пользователю с единственной ролью MASTER фильтр мастера фиксируется на нем самом.
func NewView(gw Gateway, user *domain.User, now time.Time, log Logger) *View {
	start := domain.StartOfWeek(now)
	v := &View{
		gw:  gw,
		log: log,
		filter: domain.CalendarFilter{
			Start: start,
			End:   start.AddDate(0, 0, 7),
		},
		orders: map[int64]*domain.Order{},
	}

	if user != nil && user.IsMasterOnly() {
		id := user.ID
		v.filter.MasterID = &id
		v.masterLocked = true
	}
	return v
}

// Filter копия текущего фильтра
func (v *View) Filter() domain.CalendarFilter {
	v.mu.Lock()
	defer v.mu.Unlock()
	return copyFilter(v.filter)
}

// MasterLocked true, если фильтр мастера нельзя менять
func (v *View) MasterLocked() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.masterLocked
}

// SetMaster фильтр по мастеру; nil - все мастера
func (v *View) SetMaster(masterID *int64) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.masterLocked {
		return ErrMasterLocked
	}
	if masterID == nil {
		v.filter.MasterID = nil
		return nil
	}
	id := *masterID
	v.filter.MasterID = &id
	return nil
}

// SetStatus фильтр по статусу; nil - все статусы
func (v *View) SetStatus(status *domain.OrderStatus) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if status == nil {
		v.filter.Status = nil
		return nil
	}
	if !status.IsValid() {
		return domain.ErrInvalidStatus
	}
	s := *status
	v.filter.Status = &s
	return nil
}

// SetRange период [start, end)
func (v *View) SetRange(start, end time.Time) error {
	if !end.After(start) {
		return ErrInvalidRange
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.filter.Start = start
	v.filter.End = end
	return nil
}

// Shift сдвигает период на weeks недель (отрицательное значение - назад)
func (v *View) Shift(weeks int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.filter.Start = v.filter.Start.AddDate(0, 0, 7*weeks)
	v.filter.End = v.filter.End.AddDate(0, 0, 7*weeks)
}

// Refresh загружает заказы по текущему фильтру и возвращает события
func (v *View) Refresh(ctx context.Context) ([]domain.CalendarEvent, error) {
	filter := v.Filter()

	orders, err := v.gw.Calendar(ctx, filter)
	if err != nil {
		v.log.Error("Refresh: start=%s, end=%s: %v",
			filter.Start.Format(domain.DateTimeFormat), filter.End.Format(domain.DateTimeFormat), err)
		return nil, fmt.Errorf("Refresh: %w", err)
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	v.orders = make(map[int64]*domain.Order, len(orders))
	for _, o := range orders {
		v.orders[o.ID] = o
	}
	return v.eventsLocked(), nil
}

// Events события уже загруженных заказов по времени начала
func (v *View) Events() []domain.CalendarEvent {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.eventsLocked()
}

func (v *View) eventsLocked() []domain.CalendarEvent {
	events := make([]domain.CalendarEvent, 0, len(v.orders))
	for _, o := range v.orders {
		events = append(events, domain.EventFromOrder(o))
	}
	sort.Slice(events, func(i, j int) bool {
		if events[i].Start.Equal(events[j].Start) {
			return events[i].ID < events[j].ID
		}
		return events[i].Start.Before(events[j].Start)
	})
	return events
}

// Move переносит заказ на newStart и сохраняет его целиком.
// При ошибке сервера событие возвращается на прежнее место.
func (v *View) Move(ctx context.Context, orderID int64, newStart time.Time) (*domain.CalendarEvent, error) {
	v.mu.Lock()
	if v.masterLocked {
		v.mu.Unlock()
		return nil, ErrReadOnly
	}
	order, ok := v.orders[orderID]
	if !ok {
		v.mu.Unlock()
		return nil, fmt.Errorf("%w: id=%d", ErrEventNotFound, orderID)
	}
	previous := order.ExecutionDate
	order.ExecutionDate = newStart
	draft := orderform.FromOrder(order)
	v.mu.Unlock()

	saved, err := v.gw.UpdateOrder(ctx, orderID, draft)

	v.mu.Lock()
	defer v.mu.Unlock()

	if err != nil {
		if current, ok := v.orders[orderID]; ok && current.ExecutionDate.Equal(newStart) {
			current.ExecutionDate = previous
		}
		v.log.Error("Move: order id=%d to %s failed, reverted: %v",
			orderID, newStart.Format(domain.DateTimeFormat), err)
		return nil, fmt.Errorf("Move: %w", err)
	}

	v.orders[orderID] = saved
	event := domain.EventFromOrder(saved)
	v.log.Info("Move: order id=%d moved to %s", orderID, newStart.Format(domain.DateTimeFormat))
	return &event, nil
}

func copyFilter(f domain.CalendarFilter) domain.CalendarFilter {
	if f.MasterID != nil {
		id := *f.MasterID
		f.MasterID = &id
	}
	if f.Status != nil {
		s := *f.Status
		f.Status = &s
	}
	return f
}
