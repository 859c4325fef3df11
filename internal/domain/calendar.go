package domain

import (
	"fmt"
	"time"
)

// CalendarFilter фильтр заказов для календаря: executionDate в [Start, End)
type CalendarFilter struct {
	Start    time.Time
	End      time.Time
	MasterID *int64       // только заказы, где назначен мастер
	Status   *OrderStatus // nil = все статусы
}

// CalendarEvent событие календаря, построенное из заказа
type CalendarEvent struct {
	ID          int64
	Title       string
	Start       time.Time
	End         time.Time
	Status      OrderStatus
	ClientName  string
	ClientPhone string
	CarBrand    string
}

// EventFromOrder строит событие календаря по заказу
func EventFromOrder(o *Order) CalendarEvent {
	brand := ""
	if o.CarBrand != nil {
		brand = o.CarBrand.Name
	}

	title := o.ClientName
	if brand != "" {
		title = fmt.Sprintf("%s - %s", brand, o.ClientName)
	}

	return CalendarEvent{
		ID:          o.ID,
		Title:       title,
		Start:       o.ExecutionDate,
		End:         o.EndTime(),
		Status:      o.Status,
		ClientName:  o.ClientName,
		ClientPhone: o.ClientPhone,
		CarBrand:    brand,
	}
}
