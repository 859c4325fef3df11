package domain

import (
	"math"
	"time"
)

// OrderStatus статус заказа
type OrderStatus string

const (
	StatusNew        OrderStatus = "NEW"
	StatusInProgress OrderStatus = "IN_PROGRESS"
	StatusCompleted  OrderStatus = "COMPLETED"
	StatusCancelled  OrderStatus = "CANCELLED"
)

// AllStatuses все статусы в порядке жизненного цикла
var AllStatuses = []OrderStatus{
	StatusNew,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
}

// statusTransitions допустимые переходы статусов
var statusTransitions = map[OrderStatus][]OrderStatus{
	StatusNew:        {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted},
}

// ParseOrderStatus разбирает статус из строки
func ParseOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// IsValid проверяет, что статус входит в словарь статусов
func (s OrderStatus) IsValid() bool {
	switch s {
	case StatusNew, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// IsFinal true для завершенного или отмененного заказа
func (s OrderStatus) IsFinal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanBeCancelled отмена доступна только для статусов, отличных от
// COMPLETED, CANCELLED и IN_PROGRESS
func (s OrderStatus) CanBeCancelled() bool {
	return s != StatusCompleted && s != StatusCancelled && s != StatusInProgress
}

// CanTransitionTo проверяет допустимость перехода s -> next
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if next == StatusCancelled {
		return s.IsValid() && s.CanBeCancelled()
	}
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// AvailableTransitions статусы, в которые можно перевести заказ из s
func (s OrderStatus) AvailableTransitions() []OrderStatus {
	result := make([]OrderStatus, 0, 2)
	for _, next := range AllStatuses {
		if s.CanTransitionTo(next) {
			result = append(result, next)
		}
	}
	return result
}

// Order заказ на детейлинг
type Order struct {
	ID                    int64
	ClientName            string
	ClientPhone           string
	CarBrand              *CarBrand
	VIN                   string
	Works                 []Work
	InfoSource            *InfoSource
	ExecutionDate         time.Time
	OrderCost             float64
	ExecutionTimeByMaster *string
	Status                OrderStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPersisted true, если заказ уже сохранен на сервере
func (o *Order) IsPersisted() bool {
	return o.ID > 0
}

// EndTime окончание слота заказа (длительность фиксированная)
func (o *Order) EndTime() time.Time {
	return o.ExecutionDate.Add(DefaultOrderDuration)
}

// HasMaster проверяет, назначен ли мастер хотя бы на одну работу заказа
func (o *Order) HasMaster(masterID int64) bool {
	for _, w := range o.Works {
		for _, a := range w.Assignments {
			if a.Master.ID == masterID {
				return true
			}
		}
	}
	return false
}

// Work позиция заказа (один тип работ)
type Work struct {
	ID          int64
	WorkType    WorkType
	Parts       []Part
	Comment     string
	Cost        float64
	Assignments []MasterAssignment
}

// TotalEarnings сумма заработка всех мастеров по работе
func (w *Work) TotalEarnings() float64 {
	var total float64
	for _, a := range w.Assignments {
		total += a.Earning(w.Cost)
	}
	return RoundMoney(total)
}

// MasterAssignment доля мастера в оплате работы
type MasterAssignment struct {
	Master        User
	SalaryPercent float64
}

// Earning заработок мастера: cost * percent / 100, округленный до копеек
func (a MasterAssignment) Earning(cost float64) float64 {
	return Earning(cost, a.SalaryPercent)
}

// Earning заработок с суммы cost при проценте percent
func Earning(cost, percent float64) float64 {
	return RoundMoney(cost * percent / 100)
}

// RoundMoney округляет сумму до 2 знаков после запятой
func RoundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
