package pivot

import (
	"fmt"
	"sort"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
)

const (
	weeklyTitle  = "Сводный отчет по мастерам"
	weeklyCorner = "Мастер"
)

// BuildWeekly строит сводную таблицу мастер x тип работ.
// Колонки: типы работ в лексикографическом порядке и итоговая колонка.
// Строки идут в порядке источника.
func BuildWeekly(reports []domain.MasterWeeklyReport, period domain.DateRange) *Table {
	names := workTypeNames(reports)

	columns := make([]Column, 0, len(names)+1)
	index := make(map[string]int, len(names))
	for i, name := range names {
		columns = append(columns, Column{Label: name})
		index[name] = i
	}
	columns = append(columns, Column{Label: TotalLabel})

	rows := make([]Row, 0, len(reports))
	for _, rep := range reports {
		cells := make([]Cell, len(columns))
		for _, e := range rep.Earnings {
			i := index[e.WorkTypeName]
			cells[i] = Amount(roundMoney(cells[i].Value + e.TotalEarnings))
		}
		cells[len(cells)-1] = Amount(roundMoney(rep.TotalMasterEarnings))

		rows = append(rows, Row{
			ID:    rep.MasterID,
			Label: masterName(rep.MasterFirstName, rep.MasterLastName),
			Cells: cells,
		})
	}

	return &Table{
		Title:   periodTitle(weeklyTitle, period),
		Corner:  weeklyCorner,
		Columns: columns,
		Rows:    rows,
		Footer:  computeFooter(rows, len(columns)),
	}
}

// workTypeNames объединение названий типов работ всех мастеров, отсортированное
func workTypeNames(reports []domain.MasterWeeklyReport) []string {
	seen := make(map[string]struct{})
	names := make([]string, 0)
	for _, rep := range reports {
		for _, e := range rep.Earnings {
			if _, ok := seen[e.WorkTypeName]; ok {
				continue
			}
			seen[e.WorkTypeName] = struct{}{}
			names = append(names, e.WorkTypeName)
		}
	}
	sort.Strings(names)
	return names
}

func masterName(first, last string) string {
	u := domain.User{FirstName: first, LastName: last}
	return u.FullName()
}

func periodTitle(title string, period domain.DateRange) string {
	if !period.IsValid() {
		return title
	}
	return fmt.Sprintf("%s за %s - %s", title,
		period.Start.Format("02.01.2006"), period.End.Format("02.01.2006"))
}

func roundMoney(v float64) float64 {
	return domain.RoundMoney(v)
}
