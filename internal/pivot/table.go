package pivot

import (
	"strconv"
)

const (
	// TotalLabel заголовок итоговой колонки и строки
	TotalLabel = "Итого"

	// NoData отметка "нет данных" в ячейке (отличается от нуля)
	NoData = "–"
)

// Cell ячейка сводной таблицы: значение либо отсутствие данных
type Cell struct {
	Value   float64
	Present bool
}

// Amount ячейка с суммой
func Amount(v float64) Cell {
	return Cell{Value: v, Present: true}
}

// String сумма с двумя знаками после запятой или NoData
func (c Cell) String() string {
	if !c.Present {
		return NoData
	}
	return strconv.FormatFloat(c.Value, 'f', 2, 64)
}

// Column колонка таблицы. ID заполняется для колонок-заказов детального отчета.
type Column struct {
	ID    int64
	Label string
}

// Row строка таблицы: Cells выровнены по Table.Columns, последняя ячейка итоговая
type Row struct {
	ID    int64
	Label string
	Cells []Cell
}

// Table сводная таблица
type Table struct {
	Title   string
	Corner  string // заголовок колонки с подписями строк
	Columns []Column
	Rows    []Row
	Footer  []Cell
}

// IsEmpty true, если в таблице нет строк
func (t *Table) IsEmpty() bool {
	return len(t.Rows) == 0
}

// Header заголовки колонок, включая колонку подписей строк
func (t *Table) Header() []string {
	header := make([]string, 0, len(t.Columns)+1)
	header = append(header, t.Corner)
	for _, c := range t.Columns {
		header = append(header, c.Label)
	}
	return header
}

// computeFooter суммирует по колонкам только присутствующие значения
func computeFooter(rows []Row, width int) []Cell {
	footer := make([]Cell, width)
	for i := range footer {
		footer[i] = Amount(0)
	}
	for _, r := range rows {
		for i, c := range r.Cells {
			if c.Present {
				footer[i].Value += c.Value
			}
		}
	}
	for i := range footer {
		footer[i].Value = roundMoney(footer[i].Value)
	}
	return footer
}
