package domain

import "time"

// MasterWorkTypeEarning заработок мастера по одному типу работ
type MasterWorkTypeEarning struct {
	WorkTypeID    int64
	WorkTypeName  string
	TotalEarnings float64
}

// MasterWeeklyReport сводный отчет по мастеру за период
type MasterWeeklyReport struct {
	MasterID            int64
	MasterFirstName     string
	MasterLastName      string
	Earnings            []MasterWorkTypeEarning
	TotalMasterEarnings float64
}

// OrderEarning заработок мастера по одному заказу
type OrderEarning struct {
	OrderID       int64
	ClientName    string
	ExecutionDate time.Time
	Earning       float64
}

// MasterDetailEarning заработок по типу работ с разбивкой по заказам
type MasterDetailEarning struct {
	WorkTypeID      int64
	WorkTypeName    string
	EarningsByOrder []OrderEarning
}

// MasterDetailReport детальный отчет по одному мастеру
type MasterDetailReport struct {
	MasterID        int64
	MasterFirstName string
	MasterLastName  string
	ReportDetails   []MasterDetailEarning
}

// EarningRecord плоская запись заработка (мастер, тип работ, заказ)
// из которой собираются оба отчета
type EarningRecord struct {
	MasterID        int64
	MasterFirstName string
	MasterLastName  string
	WorkTypeID      int64
	WorkTypeName    string
	OrderID         int64
	ClientName      string
	ExecutionDate   time.Time
	Earning         float64
}

// DateRange период [Start, End]
type DateRange struct {
	Start time.Time
	End   time.Time
}

// IsValid начало не позже конца
func (r DateRange) IsValid() bool {
	return !r.Start.IsZero() && !r.End.IsZero() && !r.End.Before(r.Start)
}

// Contains проверяет попадание t в [Start, End]
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// StartOfWeek понедельник 00:00 недели, содержащей t (в часовом поясе t)
func StartOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7 // понедельник = 0
	y, m, d := t.Date()
	return time.Date(y, m, d-offset, 0, 0, 0, 0, t.Location())
}

// WeekRange неделя понедельник-воскресенье, содержащая t, с включительным концом
func WeekRange(t time.Time) DateRange {
	start := StartOfWeek(t)
	return DateRange{
		Start: start,
		End:   start.AddDate(0, 0, 7).Add(-time.Nanosecond),
	}
}
