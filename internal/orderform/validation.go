package orderform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
)

// Сообщения об ошибках полей формы
const (
	MsgClientNameRequired    = "Введите имя клиента"
	MsgClientPhoneRequired   = "Введите телефон"
	MsgCarBrandRequired      = "Выберите марку автомобиля"
	MsgExecutionDateRequired = "Укажите дату выполнения"
	MsgOrderCostRequired     = "Введите стоимость заказа"
	MsgNegativeCost          = "Стоимость не может быть отрицательной"
	MsgNoWorks               = "Выберите хотя бы один тип работ"
	MsgWorkTypeRequired      = "Выберите тип работ"
	MsgWorkCostRequired      = "Укажите стоимость работы"
	MsgPartNotAllowed        = "Запчасть не относится к выбранному типу работ"
	MsgMasterRequired        = "Выберите мастера"
	MsgPercentRequired       = "Укажите процент"
	MsgPercentNegative       = "Процент не может быть отрицательным"
	MsgPercentTooLarge       = "Процент не может быть больше 100"
	MsgUnknownReference      = "Значение отсутствует в справочнике"
	MsgCommentTooLong        = "Комментарий слишком длинный"
)

// Errors ошибки полей: путь поля -> сообщение.
// Путь адресует вложенные элементы по индексам: works[2].assignments[0].salaryPercent.
type Errors map[string]string

// Valid true, если ошибок нет
func (e Errors) Valid() bool {
	return len(e) == 0
}

// Error реализует error: поля в стабильном порядке
func (e Errors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e[k])
	}
	return "orderform: " + strings.Join(parts, "; ")
}

// Validate проверяет форму заказа против загруженных справочников.
// Чистая функция: не изменяет ни форму, ни справочники.
func Validate(d Draft, dicts Dictionaries) Errors {
	errs := Errors{}

	if strings.TrimSpace(d.ClientName) == "" {
		errs["clientName"] = MsgClientNameRequired
	}
	if strings.TrimSpace(d.ClientPhone) == "" {
		errs["clientPhone"] = MsgClientPhoneRequired
	}

	if brand, ok := d.CarBrand.Get(); !ok {
		errs["carBrand"] = MsgCarBrandRequired
	} else if dicts.CarBrands != nil && !containsBrand(dicts.CarBrands, brand.ID) {
		errs["carBrand"] = MsgUnknownReference
	}

	if d.ExecutionDate == nil || d.ExecutionDate.IsZero() {
		errs["executionDate"] = MsgExecutionDateRequired
	}

	switch {
	case d.OrderCost == nil:
		errs["orderCost"] = MsgOrderCostRequired
	case *d.OrderCost < 0:
		errs["orderCost"] = MsgNegativeCost
	}

	if src, ok := d.InfoSource.Get(); ok && dicts.InfoSources != nil && !containsInfoSource(dicts.InfoSources, src.ID) {
		errs["infoSource"] = MsgUnknownReference
	}

	if len(d.Works) == 0 {
		errs["works"] = MsgNoWorks
	}
	for i, w := range d.Works {
		validateWork(errs, fmt.Sprintf("works[%d]", i), w, dicts)
	}

	return errs
}

func validateWork(errs Errors, path string, w WorkDraft, dicts Dictionaries) {
	wt, ok := w.WorkType.Get()
	if !ok {
		errs[path+".workType"] = MsgWorkTypeRequired
	} else if dicts.WorkTypes != nil && !containsWorkType(dicts.WorkTypes, wt.ID) {
		errs[path+".workType"] = MsgUnknownReference
	}

	switch {
	case w.Cost == nil:
		errs[path+".cost"] = MsgWorkCostRequired
	case *w.Cost < 0:
		errs[path+".cost"] = MsgNegativeCost
	}

	if len([]rune(w.Comment)) > domain.MaxCommentLength {
		errs[path+".comment"] = MsgCommentTooLong
	}

	// Запчасти должны входить в список, полученный для кода типа работ.
	// Пустой или не загруженный список допустим только при пустом выборе.
	if len(w.Parts) > 0 {
		var allowed []domain.Part
		if ok {
			allowed = dicts.PartsByCode[wt.Code]
		}
		for j, p := range w.Parts {
			if !containsPart(allowed, p.ID) {
				errs[fmt.Sprintf("%s.parts[%d]", path, j)] = MsgPartNotAllowed
			}
		}
	}

	for j, a := range w.Assignments {
		validateAssignment(errs, fmt.Sprintf("%s.assignments[%d]", path, j), a, dicts)
	}
}

func validateAssignment(errs Errors, path string, a AssignmentDraft, dicts Dictionaries) {
	if master, ok := a.Master.Get(); !ok {
		errs[path+".master"] = MsgMasterRequired
	} else if dicts.Masters != nil && !containsUser(dicts.Masters, master.ID) {
		errs[path+".master"] = MsgUnknownReference
	}

	switch {
	case a.SalaryPercent == nil:
		errs[path+".salaryPercent"] = MsgPercentRequired
	case *a.SalaryPercent < domain.MinSalaryPercent:
		errs[path+".salaryPercent"] = MsgPercentNegative
	case *a.SalaryPercent > domain.MaxSalaryPercent:
		errs[path+".salaryPercent"] = MsgPercentTooLarge
	}
}

func containsBrand(list []domain.CarBrand, id int64) bool {
	for _, b := range list {
		if b.ID == id {
			return true
		}
	}
	return false
}

func containsWorkType(list []domain.WorkType, id int64) bool {
	for _, wt := range list {
		if wt.ID == id {
			return true
		}
	}
	return false
}

func containsInfoSource(list []domain.InfoSource, id int64) bool {
	for _, s := range list {
		if s.ID == id {
			return true
		}
	}
	return false
}

func containsUser(list []domain.User, id int64) bool {
	for _, u := range list {
		if u.ID == id {
			return true
		}
	}
	return false
}

func containsPart(list []domain.Part, id int64) bool {
	for _, p := range list {
		if p.ID == id {
			return true
		}
	}
	return false
}
