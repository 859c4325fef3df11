package pivot

import (
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ErrExport ошибка формирования файла Excel
var ErrExport = errors.New("pivot: failed to build xlsx")

const (
	defaultSheet = "Sheet1"
	sheetName    = "Отчет"
	titleRow     = 1
	headerRow    = 2
	firstDataRow = 3
)

// ExportXLSX сохраняет таблицу в книгу Excel: заголовок, шапка, строки
// мастеров и итоговая строка. Ячейки без данных заполняются NoData.
func ExportXLSX(t *Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("%w: rename sheet: %v", ErrExport, err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: header style: %v", ErrExport, err)
	}
	totalStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Border: []excelize.Border{{Type: "top", Color: "000000", Style: 1}},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: total style: %v", ErrExport, err)
	}

	// 1. Заголовок отчета
	if err := f.SetCellValue(sheetName, cellName(1, titleRow), t.Title); err != nil {
		return nil, fmt.Errorf("%w: title: %v", ErrExport, err)
	}

	// 2. Шапка
	header := t.Header()
	for i, name := range header {
		if err := f.SetCellValue(sheetName, cellName(i+1, headerRow), name); err != nil {
			return nil, fmt.Errorf("%w: header: %v", ErrExport, err)
		}
	}
	if err := f.SetCellStyle(sheetName, cellName(1, headerRow), cellName(len(header), headerRow), headerStyle); err != nil {
		return nil, fmt.Errorf("%w: header style: %v", ErrExport, err)
	}

	// 3. Строки
	for i, r := range t.Rows {
		if err := writeRow(f, firstDataRow+i, r.Label, r.Cells); err != nil {
			return nil, err
		}
	}

	// 4. Итоговая строка
	footerRow := firstDataRow + len(t.Rows)
	if err := writeRow(f, footerRow, TotalLabel, t.Footer); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheetName, cellName(1, footerRow), cellName(len(header), footerRow), totalStyle); err != nil {
		return nil, fmt.Errorf("%w: total style: %v", ErrExport, err)
	}

	// 5. Закрепляем шапку и первую колонку
	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		XSplit:      1,
		YSplit:      headerRow,
		TopLeftCell: cellName(2, firstDataRow),
	}); err != nil {
		return nil, fmt.Errorf("%w: panes: %v", ErrExport, err)
	}

	lastCol, _ := excelize.ColumnNumberToName(len(header))
	if err := f.SetColWidth(sheetName, "A", lastCol, 18); err != nil {
		return nil, fmt.Errorf("%w: column width: %v", ErrExport, err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: write: %v", ErrExport, err)
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, row int, label string, cells []Cell) error {
	if err := f.SetCellValue(sheetName, cellName(1, row), label); err != nil {
		return fmt.Errorf("%w: row %d: %v", ErrExport, row, err)
	}
	for i, c := range cells {
		var v interface{} = NoData
		if c.Present {
			v = c.Value
		}
		if err := f.SetCellValue(sheetName, cellName(i+2, row), v); err != nil {
			return fmt.Errorf("%w: row %d: %v", ErrExport, row, err)
		}
	}
	return nil
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
