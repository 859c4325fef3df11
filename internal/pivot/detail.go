package pivot

import (
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
)

const detailCorner = "Тип работы"

// BuildDetail строит таблицу тип работ x заказ для одного мастера.
// Колонки-заказы упорядочены по дате выполнения, при равных датах
// сохраняется порядок первого появления. Последняя колонка итоговая.
func BuildDetail(report *domain.MasterDetailReport, period domain.DateRange) *Table {
	orders := distinctOrders(report.ReportDetails)
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].ExecutionDate.Before(orders[j].ExecutionDate)
	})

	columns := make([]Column, 0, len(orders)+1)
	index := make(map[int64]int, len(orders))
	for i, o := range orders {
		columns = append(columns, Column{ID: o.OrderID, Label: orderLabel(o)})
		index[o.OrderID] = i
	}
	columns = append(columns, Column{Label: TotalLabel})
	totalIdx := len(columns) - 1

	rows := make([]Row, 0, len(report.ReportDetails))
	for _, d := range report.ReportDetails {
		cells := make([]Cell, len(columns))
		var total float64
		for _, e := range d.EarningsByOrder {
			i := index[e.OrderID]
			cells[i] = Amount(roundMoney(cells[i].Value + e.Earning))
			total += e.Earning
		}
		cells[totalIdx] = Amount(roundMoney(total))

		rows = append(rows, Row{ID: d.WorkTypeID, Label: d.WorkTypeName, Cells: cells})
	}

	title := "Детальный отчет: " + masterName(report.MasterFirstName, report.MasterLastName)
	return &Table{
		Title:   periodTitle(title, period),
		Corner:  detailCorner,
		Columns: columns,
		Rows:    rows,
		Footer:  computeFooter(rows, len(columns)),
	}
}

// distinctOrders заказы в порядке первого появления
func distinctOrders(details []domain.MasterDetailEarning) []domain.OrderEarning {
	seen := make(map[int64]struct{})
	orders := make([]domain.OrderEarning, 0)
	for _, d := range details {
		for _, e := range d.EarningsByOrder {
			if _, ok := seen[e.OrderID]; ok {
				continue
			}
			seen[e.OrderID] = struct{}{}
			orders = append(orders, e)
		}
	}
	return orders
}

func orderLabel(o domain.OrderEarning) string {
	return fmt.Sprintf("Заказ №%d (%s, %s)", o.OrderID, o.ClientName, dayMonth(o.ExecutionDate))
}

// dayMonth подпись даты заказа в заголовке колонки
func dayMonth(t time.Time) string {
	return t.Format("02.01")
}

// GrandTotal общий итог таблицы (правая нижняя ячейка)
func (t *Table) GrandTotal() Cell {
	if len(t.Footer) == 0 {
		return Cell{}
	}
	return t.Footer[len(t.Footer)-1]
}
