package models

import (
	"time"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
	"github.com/m04kA/SMC-DetailingService/internal/orderform"
)

// Order заказ в том виде, в каком он передается по REST
type Order struct {
	ID                    int64       `json:"id,omitempty"`
	ClientName            string      `json:"clientName"`
	ClientPhone           string      `json:"clientPhone"`
	CarBrand              *CarBrand   `json:"carBrand"`
	VIN                   string      `json:"vin"`
	Works                 []Work      `json:"works"`
	InfoSource            *InfoSource `json:"infoSource"`
	ExecutionDate         *time.Time  `json:"executionDate"`
	OrderCost             *float64    `json:"orderCost"`
	ExecutionTimeByMaster *string     `json:"executionTimeByMaster"`
	Status                string      `json:"status,omitempty"`
}

// Work позиция заказа
type Work struct {
	ID          int64        `json:"id,omitempty"`
	WorkType    *WorkType    `json:"workType"`
	Parts       []Part       `json:"parts"`
	Comment     string       `json:"comment"`
	Cost        *float64     `json:"cost"`
	Assignments []Assignment `json:"assignments"`
}

// Assignment назначение мастера на работу
type Assignment struct {
	Master        *User    `json:"master"`
	SalaryPercent *float64 `json:"salaryPercent"`
}

// FromDraft сериализует форму заказа
func FromDraft(d orderform.Draft) Order {
	o := Order{
		ID:                    d.ID,
		ClientName:            d.ClientName,
		ClientPhone:           d.ClientPhone,
		VIN:                   d.VIN,
		ExecutionDate:         d.ExecutionDate,
		OrderCost:             d.OrderCost,
		ExecutionTimeByMaster: d.ExecutionTimeByMaster,
		Status:                string(d.Status),
		Works:                 make([]Work, 0, len(d.Works)),
	}
	if brand, ok := d.CarBrand.Get(); ok {
		o.CarBrand = FromCarBrand(brand)
	}
	if src, ok := d.InfoSource.Get(); ok {
		o.InfoSource = FromInfoSource(src)
	}

	for _, wd := range d.Works {
		w := Work{
			ID:          wd.ID,
			Comment:     wd.Comment,
			Cost:        wd.Cost,
			Parts:       make([]Part, 0, len(wd.Parts)),
			Assignments: make([]Assignment, 0, len(wd.Assignments)),
		}
		if wt, ok := wd.WorkType.Get(); ok {
			w.WorkType = FromWorkType(wt)
		}
		for _, p := range wd.Parts {
			w.Parts = append(w.Parts, *FromPart(p))
		}
		for _, ad := range wd.Assignments {
			a := Assignment{SalaryPercent: ad.SalaryPercent}
			if master, ok := ad.Master.Get(); ok {
				a.Master = FromUser(&master)
			}
			w.Assignments = append(w.Assignments, a)
		}
		o.Works = append(o.Works, w)
	}

	return o
}

// FromOrder сериализует сохраненный заказ
func FromOrder(o *domain.Order) Order {
	return FromDraft(orderform.FromOrder(o))
}

// FromOrders сериализует список заказов
func FromOrders(orders []*domain.Order) []Order {
	result := make([]Order, 0, len(orders))
	for _, o := range orders {
		result = append(result, FromOrder(o))
	}
	return result
}

// ToDraft восстанавливает форму из тела запроса.
// Отсутствующие ссылки становятся невыбранными, код типа работ проставляется запчастям.
func (o *Order) ToDraft() orderform.Draft {
	d := orderform.Draft{
		ID:                    o.ID,
		ClientName:            o.ClientName,
		ClientPhone:           o.ClientPhone,
		VIN:                   o.VIN,
		ExecutionDate:         o.ExecutionDate,
		OrderCost:             o.OrderCost,
		ExecutionTimeByMaster: o.ExecutionTimeByMaster,
		Status:                domain.OrderStatus(o.Status),
		Works:                 make([]orderform.WorkDraft, 0, len(o.Works)),
	}
	if o.CarBrand != nil {
		d.CarBrand = domain.Selected(o.CarBrand.ToDomain())
	}
	if o.InfoSource != nil {
		d.InfoSource = domain.Selected(o.InfoSource.ToDomain())
	}

	for _, w := range o.Works {
		wd := orderform.WorkDraft{
			ID:          w.ID,
			Comment:     w.Comment,
			Cost:        w.Cost,
			Assignments: make([]orderform.AssignmentDraft, 0, len(w.Assignments)),
		}

		code := ""
		if w.WorkType != nil {
			wt := w.WorkType.ToDomain()
			wd.WorkType = domain.Selected(wt)
			code = wt.Code
		}
		if len(w.Parts) > 0 {
			wd.Parts = make([]domain.Part, 0, len(w.Parts))
			for _, p := range w.Parts {
				wd.Parts = append(wd.Parts, p.ToDomain(code))
			}
		}
		for _, a := range w.Assignments {
			ad := orderform.AssignmentDraft{SalaryPercent: a.SalaryPercent}
			if a.Master != nil {
				ad.Master = domain.Selected(*a.Master.ToDomain())
			}
			wd.Assignments = append(wd.Assignments, ad)
		}
		d.Works = append(d.Works, wd)
	}

	return d
}

// ToDomain восстанавливает заказ из ответа сервера
func (o *Order) ToDomain() *domain.Order {
	d := o.ToDraft()
	return d.ToOrder()
}

// CalendarEvent событие календаря
type CalendarEvent struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Status      string    `json:"status"`
	ClientName  string    `json:"clientName"`
	ClientPhone string    `json:"clientPhone"`
	CarBrand    string    `json:"carBrand"`
}

// FromCalendarEvents сериализует события календаря
func FromCalendarEvents(events []domain.CalendarEvent) []CalendarEvent {
	result := make([]CalendarEvent, 0, len(events))
	for _, e := range events {
		result = append(result, CalendarEvent{
			ID:          e.ID,
			Title:       e.Title,
			Start:       e.Start,
			End:         e.End,
			Status:      string(e.Status),
			ClientName:  e.ClientName,
			ClientPhone: e.ClientPhone,
			CarBrand:    e.CarBrand,
		})
	}
	return result
}

// StatusChange ответ на смену статуса заказа
type StatusChange struct {
	OrderID        int64    `json:"orderId"`
	PreviousStatus string   `json:"previousStatus"`
	Status         string   `json:"status"`
	Available      []string `json:"availableTransitions"`
}
