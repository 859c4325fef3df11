package orderform

import (
	"time"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
	"github.com/m04kA/SMC-DetailingService/pkg/ptr"
)

// Draft состояние формы заказа до отправки
type Draft struct {
	ID                    int64
	ClientName            string
	ClientPhone           string
	CarBrand              domain.Ref[domain.CarBrand]
	VIN                   string
	Works                 []WorkDraft
	InfoSource            domain.Ref[domain.InfoSource]
	ExecutionDate         *time.Time
	OrderCost             *float64
	ExecutionTimeByMaster *string
	Status                domain.OrderStatus
}

// WorkDraft позиция заказа в форме
type WorkDraft struct {
	ID          int64
	WorkType    domain.Ref[domain.WorkType]
	Parts       []domain.Part
	Comment     string
	Cost        *float64
	Assignments []AssignmentDraft
}

// AssignmentDraft строка назначения мастера в форме
type AssignmentDraft struct {
	Master        domain.Ref[domain.User]
	SalaryPercent *float64
}

// Dictionaries справочники, загруженные для формы.
// nil-срез означает, что справочник не загружен и проверка принадлежности пропускается.
type Dictionaries struct {
	CarBrands   []domain.CarBrand
	WorkTypes   []domain.WorkType
	Masters     []domain.User
	InfoSources []domain.InfoSource
	// PartsByCode запчасти, полученные для кода типа работ.
	// Отсутствующий ключ равнозначен пустому списку.
	PartsByCode map[string][]domain.Part
}

// NewDraft пустая форма нового заказа
func NewDraft() Draft {
	return Draft{Status: domain.StatusNew}
}

// FromOrder заполняет форму данными заказа (режим редактирования)
func FromOrder(o *domain.Order) Draft {
	d := Draft{
		ID:                    o.ID,
		ClientName:            o.ClientName,
		ClientPhone:           o.ClientPhone,
		CarBrand:              domain.RefFromPtr(o.CarBrand),
		VIN:                   o.VIN,
		InfoSource:            domain.RefFromPtr(o.InfoSource),
		OrderCost:             ptr.Ptr(o.OrderCost),
		ExecutionTimeByMaster: o.ExecutionTimeByMaster,
		Status:                o.Status,
		Works:                 make([]WorkDraft, 0, len(o.Works)),
	}
	if !o.ExecutionDate.IsZero() {
		d.ExecutionDate = ptr.Ptr(o.ExecutionDate)
	}

	for _, w := range o.Works {
		wd := WorkDraft{
			ID:          w.ID,
			WorkType:    domain.Selected(w.WorkType),
			Parts:       copyParts(w.Parts),
			Comment:     w.Comment,
			Cost:        ptr.Ptr(w.Cost),
			Assignments: make([]AssignmentDraft, 0, len(w.Assignments)),
		}
		for _, a := range w.Assignments {
			wd.Assignments = append(wd.Assignments, AssignmentDraft{
				Master:        domain.Selected(a.Master),
				SalaryPercent: ptr.Ptr(a.SalaryPercent),
			})
		}
		d.Works = append(d.Works, wd)
	}

	return d
}

// ToOrder собирает заказ из формы. Вызывать только для валидной формы:
// незаполненные поля превращаются в нулевые значения.
func (d *Draft) ToOrder() *domain.Order {
	o := &domain.Order{
		ID:                    d.ID,
		ClientName:            d.ClientName,
		ClientPhone:           d.ClientPhone,
		CarBrand:              d.CarBrand.Ptr(),
		VIN:                   d.VIN,
		InfoSource:            d.InfoSource.Ptr(),
		ExecutionDate:         ptr.Value(d.ExecutionDate),
		OrderCost:             ptr.Value(d.OrderCost),
		ExecutionTimeByMaster: d.ExecutionTimeByMaster,
		Status:                d.Status,
		Works:                 make([]domain.Work, 0, len(d.Works)),
	}

	for _, wd := range d.Works {
		wt, _ := wd.WorkType.Get()
		w := domain.Work{
			ID:          wd.ID,
			WorkType:    wt,
			Parts:       copyParts(wd.Parts),
			Comment:     wd.Comment,
			Cost:        ptr.Value(wd.Cost),
			Assignments: make([]domain.MasterAssignment, 0, len(wd.Assignments)),
		}
		for _, ad := range wd.Assignments {
			master, _ := ad.Master.Get()
			w.Assignments = append(w.Assignments, domain.MasterAssignment{
				Master:        master,
				SalaryPercent: ptr.Value(ad.SalaryPercent),
			})
		}
		o.Works = append(o.Works, w)
	}

	return o
}

// WorkTypeCodes коды выбранных типов работ (для ленивой загрузки запчастей)
func (d *Draft) WorkTypeCodes() []string {
	seen := make(map[string]struct{}, len(d.Works))
	codes := make([]string, 0, len(d.Works))
	for _, w := range d.Works {
		wt, ok := w.WorkType.Get()
		if !ok || wt.Code == "" {
			continue
		}
		if _, dup := seen[wt.Code]; dup {
			continue
		}
		seen[wt.Code] = struct{}{}
		codes = append(codes, wt.Code)
	}
	return codes
}

// AssignmentEarning заработок мастера в строке назначения (0, если данных не хватает)
func (w *WorkDraft) AssignmentEarning(i int) float64 {
	if i < 0 || i >= len(w.Assignments) || w.Cost == nil || w.Assignments[i].SalaryPercent == nil {
		return 0
	}
	return domain.Earning(*w.Cost, *w.Assignments[i].SalaryPercent)
}

// TotalEarnings сумма заработка мастеров по работе
func (w *WorkDraft) TotalEarnings() float64 {
	var total float64
	for i := range w.Assignments {
		total += w.AssignmentEarning(i)
	}
	return domain.RoundMoney(total)
}

// copyParts копия среза с сохранением nil
func copyParts(src []domain.Part) []domain.Part {
	if src == nil {
		return nil
	}
	dst := make([]domain.Part, len(src))
	copy(dst, src)
	return dst
}
